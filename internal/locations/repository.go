package locations

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrLocationNotFound = errors.New("location not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Location, error)
	GetBySlug(ctx context.Context, slug string) (*Location, error)
	Create(ctx context.Context, location *Location) error
	Seed(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := r.db.WithContext(ctx).
		Order("active DESC, name ASC").
		Find(&locations).Error
	return locations, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Location, error) {
	var location Location
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}

func (r *repository) Create(ctx context.Context, location *Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// Seed inserts the default site if the table is empty, so a fresh install
// can take bookings immediately.
func (r *repository) Seed(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Location{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&Location{
		Slug:       DefaultSlug,
		Name:       "Atmos Hyperbaric",
		City:       "Austin",
		State:      "TX",
		ChamberCap: 4,
		Active:     true,
	}).Error
}
