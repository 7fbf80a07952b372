package sql

import (
	"bulletin/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ListAnnouncements returns announcements newest date first.
func (r *GormRepository) ListAnnouncements(ctx context.Context, activeOnly bool) ([]entity.DbAnnouncement, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Model(&entity.DbAnnouncement{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var items []entity.DbAnnouncement
	if err := query.Order("date DESC").Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepository) GetAnnouncement(ctx context.Context, id string) (*entity.DbAnnouncement, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var item entity.DbAnnouncement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateAnnouncement inserts the row, generating an id when none is set.
func (r *GormRepository) CreateAnnouncement(ctx context.Context, item *entity.DbAnnouncement) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if item == nil {
		return fmt.Errorf("announcement is nil")
	}
	if item.ID == "" {
		item.ID = entity.NewContentID(entity.KindAnnouncement)
	}
	if item.BadgeVariant == "" {
		item.BadgeVariant = entity.BadgeVariantDefault
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormRepository) UpdateAnnouncement(ctx context.Context, id string, patch entity.AnnouncementPatch) (*entity.DbAnnouncement, error) {
	if err := r.updateByID(ctx, &entity.DbAnnouncement{}, id, patch.ToMap()); err != nil {
		return nil, err
	}
	return r.GetAnnouncement(ctx, id)
}

func (r *GormRepository) DeleteAnnouncement(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, &entity.DbAnnouncement{}, id)
}
