package entity

import (
	"time"

	"github.com/google/uuid"
)

// Content kinds. Generated ids are prefixed with the kind.
const (
	KindAnnouncement = "announcement"
	KindEvent        = "event"
	KindPoster       = "poster"
)

const (
	BadgeVariantDefault   = "default"
	BadgeVariantSecondary = "secondary"
	BadgeVariantOutline   = "outline"
)

const (
	PosterCategoryService = "service"
	PosterCategoryEvent   = "event"
	PosterCategoryTheme   = "theme"
)

// NewContentID returns "{kind}-{uuid}".
func NewContentID(kind string) string {
	return kind + "-" + uuid.NewString()
}

// DbAnnouncement is a dated notice shown on the public site.
type DbAnnouncement struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	Title        string    `gorm:"column:title;type:varchar(255);not null"`
	Date         string    `gorm:"column:date;type:varchar(10);index;not null"`
	Description  string    `gorm:"column:description;type:text;not null"`
	Icon         string    `gorm:"column:icon;type:varchar(100)"`
	Badge        string    `gorm:"column:badge;type:varchar(100)"`
	BadgeVariant string    `gorm:"column:badge_variant;type:varchar(20);not null"`
	IsActive     bool      `gorm:"column:is_active;index;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (DbAnnouncement) TableName() string {
	return "announcements"
}

// DbEvent is a scheduled event with an optional image.
type DbEvent struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	Title       string    `gorm:"column:title;type:varchar(255);not null"`
	Date        string    `gorm:"column:date;type:varchar(10);index;not null"`
	Time        string    `gorm:"column:time;type:varchar(100);not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	ImageURL    string    `gorm:"column:image_url;type:varchar(512)"`
	IsActive    bool      `gorm:"column:is_active;index;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (DbEvent) TableName() string {
	return "events"
}

// DbPoster is an image-backed poster grouped by category.
type DbPoster struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	Title        string    `gorm:"column:title;type:varchar(255);not null"`
	Category     string    `gorm:"column:category;type:varchar(20);index;not null"`
	ImageURL     string    `gorm:"column:image_url;type:varchar(512);not null"`
	Description  string    `gorm:"column:description;type:text"`
	DisplayOrder int       `gorm:"column:display_order;not null"`
	IsActive     bool      `gorm:"column:is_active;index;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (DbPoster) TableName() string {
	return "posters"
}

// DbSchemaMigration is one row of the applied-migrations ledger.
type DbSchemaMigration struct {
	ID        uint      `gorm:"primarykey"`
	Name      string    `gorm:"column:name;type:varchar(191);uniqueIndex;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (DbSchemaMigration) TableName() string {
	return "schema_migrations"
}

// ContentBundle groups rows written together by seeding.
type ContentBundle struct {
	Announcements []DbAnnouncement
	Events        []DbEvent
	Posters       []DbPoster
}
