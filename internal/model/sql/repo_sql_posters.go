package sql

import (
	"bulletin/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ListPosters returns posters by display order, newest first within a slot.
func (r *GormRepository) ListPosters(ctx context.Context, activeOnly bool) ([]entity.DbPoster, error) {
	return r.listPosters(ctx, "", activeOnly)
}

func (r *GormRepository) ListPostersByCategory(ctx context.Context, category string, activeOnly bool) ([]entity.DbPoster, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	return r.listPosters(ctx, category, activeOnly)
}

func (r *GormRepository) listPosters(ctx context.Context, category string, activeOnly bool) ([]entity.DbPoster, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Model(&entity.DbPoster{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var items []entity.DbPoster
	if err := query.Order("display_order ASC").Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// LatestPosterByCategory returns the most recently created active poster in
// the category.
func (r *GormRepository) LatestPosterByCategory(ctx context.Context, category string) (*entity.DbPoster, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var item entity.DbPoster
	err := r.db.WithContext(ctx).
		Where("category = ? AND is_active = ?", category, true).
		Order("created_at DESC").
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepository) GetPoster(ctx context.Context, id string) (*entity.DbPoster, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var item entity.DbPoster
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepository) CreatePoster(ctx context.Context, item *entity.DbPoster) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if item == nil {
		return fmt.Errorf("poster is nil")
	}
	if item.ID == "" {
		item.ID = entity.NewContentID(entity.KindPoster)
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormRepository) UpdatePoster(ctx context.Context, id string, patch entity.PosterPatch) (*entity.DbPoster, error) {
	if err := r.updateByID(ctx, &entity.DbPoster{}, id, patch.ToMap()); err != nil {
		return nil, err
	}
	return r.GetPoster(ctx, id)
}

func (r *GormRepository) DeletePoster(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, &entity.DbPoster{}, id)
}
