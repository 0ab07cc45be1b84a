package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ericfisherdev/codereviewer/internal/adapter/driven/htmldoc"
	"github.com/ericfisherdev/codereviewer/internal/adapter/driven/statusapi"
	"github.com/ericfisherdev/codereviewer/internal/application"
	"github.com/ericfisherdev/codereviewer/internal/requestid"
)

// NewRootCommand builds the statuswatch command. Flags can also be set
// through CODEREVIEWER_-prefixed environment variables.
func NewRootCommand(ui *UI) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "statuswatch <page-url>",
		Short: "Watch the review status badges on a code review page",
		Long: `statuswatch fetches a rendered code review page and keeps its status
badges fresh by polling the front end's status endpoint, printing the badge
table after every check. It exits once no review is in flight.`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Verbose = v.GetBool("verbose")
			return watchRun(cmd.Context(), ui, args[0], watchOptions{
				interval: v.GetDuration("interval"),
				timeout:  v.GetDuration("timeout"),
				once:     v.GetBool("once"),
			})
		},
	}

	cmd.Flags().Duration("interval", application.DefaultStatusPollInterval, "Delay between status checks")
	cmd.Flags().Duration("timeout", 10*time.Second, "Per-request HTTP timeout")
	cmd.Flags().Bool("once", false, "Run a single status check and exit")
	cmd.Flags().BoolP("verbose", "v", false, "Log poller diagnostics to stderr")

	v.SetEnvPrefix("CODEREVIEWER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

// Execute runs the statuswatch command and exits non-zero on failure.
func Execute() {
	ui := NewUI()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand(ui).ExecuteContext(ctx); err != nil {
		ui.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

type watchOptions struct {
	interval time.Duration
	timeout  time.Duration
	once     bool
}

func watchRun(ctx context.Context, ui *UI, pageURL string, opts watchOptions) error {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("page URL must be an absolute http or https URL, got %q", pageURL)
	}

	httpClient := &http.Client{Timeout: opts.timeout}
	ctx = requestid.NewContext(ctx, requestid.New())

	doc, err := fetchDocument(ctx, httpClient, pageURL)
	if err != nil {
		return err
	}

	badges := doc.Badges()
	if len(badges) == 0 {
		ui.Info("No review status badges found on %s", pageURL)
		return nil
	}
	ui.Info("Watching %d review(s) on %s", len(badges), pageURL)

	fetcher, err := statusapi.NewFetcher(httpClient, pageURL)
	if err != nil {
		return err
	}

	poller := application.NewStatusPoller(doc, fetcher,
		application.WithPollInterval(opts.interval),
		application.WithPollLogger(newLogger(ui)),
		application.WithCycleHook(func(r application.CycleResult) {
			ui.Cycle(r)
			if err := ui.Badges(doc.Badges()); err != nil {
				ui.Warning("Rendering badge table: %v", err)
			}
		}),
	)

	if opts.once {
		result := poller.Check(ctx)
		ui.Cycle(result)
		return ui.Badges(doc.Badges())
	}

	poller.Start(ctx)
	<-poller.Done()

	if ctx.Err() != nil {
		ui.Warning("Interrupted, reviews may still be in flight")
		return nil
	}
	ui.Success("No reviews in flight")
	return nil
}

func fetchDocument(ctx context.Context, httpClient *http.Client, pageURL string) (*htmldoc.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch page: %s returned %d", pageURL, resp.StatusCode)
	}

	doc, err := htmldoc.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

func newLogger(ui *UI) *slog.Logger {
	level := slog.LevelWarn
	if ui.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(ui.ErrOut, &slog.HandlerOptions{Level: level}))
}
