package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/shopinsight/sqlite"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		for _, table := range []string{"brands", "products", "hero_products", "faqs", "social_handles", "contact_info"} {
			var count int
			err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
			require.NoError(t, err, table)
		}
	})

	t.Run("enables foreign keys", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		var enabled int
		err := db.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&enabled)
		require.NoError(t, err)
		require.Equal(t, 1, enabled)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}
