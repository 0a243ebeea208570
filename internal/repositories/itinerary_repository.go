package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripwise/internal/models/db_models"
)

// ItineraryRepository archives generated itineraries. GetByID returns nil and
// no error when the id is unknown.
type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *dbm.Itinerary) error
	GetByID(ctx context.Context, id string) (*dbm.Itinerary, error)
	Enabled() bool
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Enabled() bool { return true }

func (r *itineraryRepository) Create(ctx context.Context, itinerary *dbm.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) GetByID(ctx context.Context, id string) (*dbm.Itinerary, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var itinerary dbm.Itinerary
	err = r.db.WithContext(ctx).Where("id = ?", parsed).First(&itinerary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// disabledItineraryRepository is used when no database is configured.
type disabledItineraryRepository struct{}

func NewDisabledItineraryRepository() ItineraryRepository {
	return disabledItineraryRepository{}
}

func (disabledItineraryRepository) Enabled() bool { return false }

func (disabledItineraryRepository) Create(context.Context, *dbm.Itinerary) error { return nil }

func (disabledItineraryRepository) GetByID(context.Context, string) (*dbm.Itinerary, error) {
	return nil, nil
}
