package sql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrDuplicateEmail is returned when an email is already taken, ignoring case.
var ErrDuplicateEmail = errors.New("email already registered")

// GormRepository implements the persistence interfaces using GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// DB exposes the underlying handle for maintenance commands.
func (r *GormRepository) DB() *gorm.DB {
	return r.db
}

// Ping checks that a pooled connection can reach the database.
func (r *GormRepository) Ping(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (r *GormRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// deleteByID hard-deletes a content row and reports whether it existed.
func (r *GormRepository) deleteByID(ctx context.Context, model interface{}, id string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if id == "" {
		return false, nil
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// updateByID applies a coalescing update and refreshes updated_at even when
// the patch is empty. Callers reload the row, which surfaces missing ids.
func (r *GormRepository) updateByID(ctx context.Context, model interface{}, id string, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == "" {
		return gorm.ErrRecordNotFound
	}
	updates["updated_at"] = r.db.NowFunc()
	return r.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates).Error
}
