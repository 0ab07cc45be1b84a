package sqlite

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB creates a named shared in-memory SQLite database for testing.
// Both pools share one database via cache=shared; the name derived from
// t.Name() keeps parallel tests isolated.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// WAL does not apply to in-memory databases.
	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)",
		url.PathEscape(t.Name()),
	)

	writer, err := openPool(dsn, 1)
	require.NoError(t, err, "open test writer")

	reader, err := openPool(dsn, 4)
	if err != nil {
		_ = writer.Close()
		t.Fatalf("open test reader: %v", err)
	}

	db := &DB{Writer: writer, Reader: reader, path: dsn}

	if err := RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	return db
}
