package sqlite

import (
	"context"
	"net/url"
	"testing"
)

// setupTestDB opens a migrated in-memory database private to the calling test.
// Both pools share it through cache=shared under a name derived from t.Name().
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := "file:" + url.PathEscape(t.Name()) + "?mode=memory&cache=shared&" + commonPragmas

	db, err := open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := RunMigrations(db.Writer); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return db
}

// testKey is a fixed 32-byte AES-256 key for vault tests.
var testKey = []byte("0123456789abcdef0123456789abcdef")
