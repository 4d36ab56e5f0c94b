package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PalcoPro/band-agenda/internal/models"
)

type EventGormRepository struct {
	db *gorm.DB
}

func NewEventGormRepository(db *gorm.DB) *EventGormRepository {
	return &EventGormRepository{db: db}
}

// --------------------------------------------------
// Event
// --------------------------------------------------

func (r *EventGormRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Order("date ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventGormRepository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var ev models.Event
	err := r.db.WithContext(ctx).First(&ev, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *EventGormRepository) SaveEvent(ctx context.Context, ev *models.Event) error {
	// Upsert por ID, substituindo o registro inteiro (last write wins).
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(ev).Error
}

func (r *EventGormRepository) DeleteEvent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id).Error
}

// --------------------------------------------------
// Band
// --------------------------------------------------

func (r *EventGormRepository) ListBands(ctx context.Context) ([]models.Band, error) {
	var bands []models.Band
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&bands).Error; err != nil {
		return nil, err
	}
	return bands, nil
}

func (r *EventGormRepository) GetBand(ctx context.Context, id string) (*models.Band, error) {
	var b models.Band
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Contractor
// --------------------------------------------------

func (r *EventGormRepository) FindContractorByName(ctx context.Context, name string) (*models.Contractor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	// Nomes duplicados são ambíguos; vale o registro mais antigo.
	var ct models.Contractor
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("created_at ASC").
		First(&ct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *EventGormRepository) SaveContractor(ctx context.Context, ct *models.Contractor) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(ct).Error
}
