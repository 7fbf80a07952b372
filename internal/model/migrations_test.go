package model

import (
	"bulletin/internal/config"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBType:         DBTypeSQLite,
		DBPath:         filepath.Join(t.TempDir(), "bulletin.db"),
		DBMaxOpenConns: 2,
	}
	db, err := OpenDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	applied, err := Migrate(ctx, db)
	require.NoError(t, err)
	require.Len(t, applied, len(schemaMigrations))

	again, err := Migrate(ctx, db)
	require.NoError(t, err)
	require.Empty(t, again)

	rows, err := AppliedMigrations(ctx, db)
	require.NoError(t, err)
	require.Len(t, rows, len(schemaMigrations))
	for i, row := range rows {
		require.Equal(t, schemaMigrations[i].Name, row.Name)
	}

	for _, table := range []string{"users", "announcements", "events", "posters"} {
		require.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestMigrateResumesAfterFailure(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	boom := errors.New("boom")
	failing := []Migration{
		schemaMigrations[0],
		{Name: "0002_broken", Up: func(tx *gorm.DB) error { return boom }},
	}
	applied, err := runMigrations(ctx, db, failing)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"0001_create_users"}, applied)

	fixed := []Migration{
		schemaMigrations[0],
		{Name: "0002_broken", Up: func(tx *gorm.DB) error { return nil }},
	}
	applied, err = runMigrations(ctx, db, fixed)
	require.NoError(t, err)
	require.Equal(t, []string{"0002_broken"}, applied)

	rows, err := AppliedMigrations(ctx, db)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}
