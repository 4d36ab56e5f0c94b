package event

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/PalcoPro/band-agenda/internal/audit"
	"github.com/PalcoPro/band-agenda/internal/csvimport"
	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
)

type ImportEvents struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewImportEvents(repo domain.Repository, audit *audit.Dispatcher) *ImportEvents {
	return &ImportEvents{repo: repo, audit: audit}
}

// Execute grava as linhas válidas em sequência, sem atomicidade entre
// linhas: falha no meio deixa as anteriores gravadas. Devolve quantas
// de fato entraram.
func (uc *ImportEvents) Execute(ctx context.Context, rows []csvimport.ParsedRow, createdBy string) int {

	committed := 0
	for _, row := range rows {
		if !row.Valid() || row.Event == nil {
			continue
		}

		ev := *row.Event
		ev.CreatedBy = createdBy
		ev.CreatedAt = time.Now()
		ev = sanitize.Event(ev, uuid.NewString())

		if err := uc.repo.SaveEvent(ctx, &ev); err != nil {
			log.Printf("importação: falha ao gravar linha %d: %v", row.LineNumber, err)
			continue
		}

		committed++

		uc.audit.Dispatch(audit.Event{
			Actor:    createdBy,
			Action:   "event_imported",
			Entity:   "event",
			EntityID: ev.ID,
		})
	}

	return committed
}
