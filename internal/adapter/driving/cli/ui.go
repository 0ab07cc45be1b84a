// Package cli implements the statuswatch command line front end.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/ericfisherdev/codereviewer/internal/application"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// UI writes colored progress messages and badge tables.
type UI struct {
	Verbose bool
	Out     io.Writer
	ErrOut  io.Writer
}

// NewUI creates a UI with default stdout/stderr writers.
func NewUI() *UI {
	return &UI{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	successPrefix = color.New(color.FgHiGreen).Sprint("✓")
	warningPrefix = color.New(color.FgHiYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgHiRed).Sprint("✗")
	green         = color.New(color.FgHiGreen).SprintFunc()
	blue          = color.New(color.FgHiBlue).SprintFunc()
	red           = color.New(color.FgHiRed).SprintFunc()
)

// StatusColor colors a displayed status the way the page's tag would.
func StatusColor(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed":
		return green(status)
	case "failed":
		return red(status)
	case "":
		return status
	default:
		return blue(status)
	}
}

func (u *UI) Info(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Success(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", successPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Warning(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", warningPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Error(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

// Table creates a new tablewriter configured with consistent styling.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// Badges prints one row per badge with its current text.
func (u *UI) Badges(badges []driven.StatusBadge) error {
	table := u.Table([]string{"Review", "Status"})
	for _, b := range badges {
		if err := table.Append([]string{b.ReviewID(), StatusColor(b.Text())}); err != nil {
			return err
		}
	}
	return table.Render()
}

// Cycle prints a one-line summary of a status check cycle.
func (u *UI) Cycle(r application.CycleResult) {
	switch {
	case r.Skipped:
		u.Warning("Status check skipped, previous check still running")
	case r.Failed > 0:
		u.Warning("Checked %d, updated %d, %d failed and will be retried", r.Checked, r.Updated, r.Failed)
	default:
		u.Info("Checked %d, updated %d", r.Checked, r.Updated)
	}
}
