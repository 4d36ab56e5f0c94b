package event

import (
	"context"

	"github.com/PalcoPro/band-agenda/internal/models"
)

// Repository é a porta de persistência dos fluxos de evento.
// Leituras por ID devolvem (nil, nil) quando o registro não existe;
// erro fica reservado para falha do armazenamento em si.
type Repository interface {
	// -------- Event --------
	ListEvents(ctx context.Context) ([]models.Event, error)

	GetEvent(ctx context.Context, id string) (*models.Event, error)

	// SaveEvent faz upsert por ID, substituindo o registro inteiro.
	SaveEvent(ctx context.Context, ev *models.Event) error

	DeleteEvent(ctx context.Context, id string) error

	// -------- Band --------
	ListBands(ctx context.Context) ([]models.Band, error)

	GetBand(ctx context.Context, id string) (*models.Band, error)

	// -------- Contractor --------

	// FindContractorByName resolve o vínculo fraco por nome, sem
	// diferenciar maiúsculas; nomes duplicados devolvem o primeiro.
	FindContractorByName(ctx context.Context, name string) (*models.Contractor, error)

	SaveContractor(ctx context.Context, ct *models.Contractor) error
}
