package model

import (
	"bulletin/internal/entity"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration is a named schema step. Names are recorded in the
// schema_migrations ledger once applied and must never be reused.
type Migration struct {
	Name string
	Up   func(tx *gorm.DB) error
}

var schemaMigrations = []Migration{
	{Name: "0001_create_users", Up: func(tx *gorm.DB) error {
		return tx.AutoMigrate(&entity.DbUser{})
	}},
	{Name: "0002_create_announcements", Up: func(tx *gorm.DB) error {
		return tx.AutoMigrate(&entity.DbAnnouncement{})
	}},
	{Name: "0003_create_events", Up: func(tx *gorm.DB) error {
		return tx.AutoMigrate(&entity.DbEvent{})
	}},
	{Name: "0004_create_posters", Up: func(tx *gorm.DB) error {
		return tx.AutoMigrate(&entity.DbPoster{})
	}},
}

// Migrate applies every pending schema migration and returns the names it
// applied, in order.
func Migrate(ctx context.Context, db *gorm.DB) ([]string, error) {
	return runMigrations(ctx, db, schemaMigrations)
}

// AppliedMigrations lists ledger entries in apply order.
func AppliedMigrations(ctx context.Context, db *gorm.DB) ([]entity.DbSchemaMigration, error) {
	var rows []entity.DbSchemaMigration
	if err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// runMigrations applies each migration and its ledger row in one
// transaction, so a failed step leaves earlier steps recorded and the run
// can be resumed.
func runMigrations(ctx context.Context, db *gorm.DB, migrations []Migration) ([]string, error) {
	if err := db.WithContext(ctx).AutoMigrate(&entity.DbSchemaMigration{}); err != nil {
		return nil, fmt.Errorf("create migration ledger: %w", err)
	}

	existing, err := AppliedMigrations(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("read migration ledger: %w", err)
	}
	done := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		done[row.Name] = struct{}{}
	}

	var applied []string
	for _, m := range migrations {
		if _, ok := done[m.Name]; ok {
			continue
		}
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&entity.DbSchemaMigration{Name: m.Name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return applied, fmt.Errorf("migration %s: %w", m.Name, err)
		}
		logrus.WithField("migration", m.Name).Info("applied migration")
		applied = append(applied, m.Name)
	}
	return applied, nil
}
