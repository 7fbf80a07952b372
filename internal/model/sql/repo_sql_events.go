package sql

import (
	"bulletin/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ListEvents returns events soonest first.
func (r *GormRepository) ListEvents(ctx context.Context, activeOnly bool) ([]entity.DbEvent, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Model(&entity.DbEvent{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var items []entity.DbEvent
	if err := query.Order("date ASC").Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepository) GetEvent(ctx context.Context, id string) (*entity.DbEvent, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var item entity.DbEvent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepository) CreateEvent(ctx context.Context, item *entity.DbEvent) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if item == nil {
		return fmt.Errorf("event is nil")
	}
	if item.ID == "" {
		item.ID = entity.NewContentID(entity.KindEvent)
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormRepository) UpdateEvent(ctx context.Context, id string, patch entity.EventPatch) (*entity.DbEvent, error) {
	if err := r.updateByID(ctx, &entity.DbEvent{}, id, patch.ToMap()); err != nil {
		return nil, err
	}
	return r.GetEvent(ctx, id)
}

func (r *GormRepository) DeleteEvent(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, &entity.DbEvent{}, id)
}
