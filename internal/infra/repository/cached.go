package repository

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/models"
)

// CachedRepository decora o repositório primário com um cache local de
// último estado conhecido. Leitura com o primário fora do ar devolve o
// cache; gravação que falha no primário é registrada no log mas não
// impede a escrita local — o chamador nunca vê o erro de
// indisponibilidade. Não há detecção de conflito além de last write
// wins, igual ao resto do sistema.
type CachedRepository struct {
	primary domain.Repository

	mu          sync.RWMutex
	events      map[string]models.Event
	bands       map[string]models.Band
	contractors map[string]models.Contractor
}

func NewCachedRepository(primary domain.Repository) *CachedRepository {
	return &CachedRepository{
		primary:     primary,
		events:      make(map[string]models.Event),
		bands:       make(map[string]models.Band),
		contractors: make(map[string]models.Contractor),
	}
}

// --------------------------------------------------
// Event
// --------------------------------------------------

func (r *CachedRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := r.primary.ListEvents(ctx)
	if err != nil {
		log.Printf("event store indisponível, servindo cache: %v", err)
		return r.cachedEvents(), nil
	}

	r.mu.Lock()
	r.events = make(map[string]models.Event, len(events))
	for _, ev := range events {
		r.events[ev.ID] = ev
	}
	r.mu.Unlock()

	return events, nil
}

func (r *CachedRepository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	ev, err := r.primary.GetEvent(ctx, id)
	if err != nil {
		log.Printf("event store indisponível, servindo cache: %v", err)
		r.mu.RLock()
		defer r.mu.RUnlock()
		if cached, ok := r.events[id]; ok {
			return &cached, nil
		}
		return nil, nil
	}
	if ev != nil {
		r.mu.Lock()
		r.events[ev.ID] = *ev
		r.mu.Unlock()
	}
	return ev, nil
}

func (r *CachedRepository) SaveEvent(ctx context.Context, ev *models.Event) error {
	if err := r.primary.SaveEvent(ctx, ev); err != nil {
		log.Printf("falha ao gravar evento no store primário: %v", err)
	}

	r.mu.Lock()
	r.events[ev.ID] = *ev
	r.mu.Unlock()
	return nil
}

func (r *CachedRepository) DeleteEvent(ctx context.Context, id string) error {
	if err := r.primary.DeleteEvent(ctx, id); err != nil {
		log.Printf("falha ao excluir evento no store primário: %v", err)
	}

	r.mu.Lock()
	delete(r.events, id)
	r.mu.Unlock()
	return nil
}

func (r *CachedRepository) cachedEvents() []models.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Event, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// --------------------------------------------------
// Band
// --------------------------------------------------

func (r *CachedRepository) ListBands(ctx context.Context) ([]models.Band, error) {
	bands, err := r.primary.ListBands(ctx)
	if err != nil {
		log.Printf("band store indisponível, servindo cache: %v", err)
		return r.cachedBands(), nil
	}

	r.mu.Lock()
	r.bands = make(map[string]models.Band, len(bands))
	for _, b := range bands {
		r.bands[b.ID] = b
	}
	r.mu.Unlock()

	return bands, nil
}

func (r *CachedRepository) GetBand(ctx context.Context, id string) (*models.Band, error) {
	b, err := r.primary.GetBand(ctx, id)
	if err != nil {
		log.Printf("band store indisponível, servindo cache: %v", err)
		r.mu.RLock()
		defer r.mu.RUnlock()
		if cached, ok := r.bands[id]; ok {
			return &cached, nil
		}
		return nil, nil
	}
	if b != nil {
		r.mu.Lock()
		r.bands[b.ID] = *b
		r.mu.Unlock()
	}
	return b, nil
}

func (r *CachedRepository) cachedBands() []models.Band {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Band, 0, len(r.bands))
	for _, b := range r.bands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// --------------------------------------------------
// Contractor
// --------------------------------------------------

func (r *CachedRepository) FindContractorByName(ctx context.Context, name string) (*models.Contractor, error) {
	ct, err := r.primary.FindContractorByName(ctx, name)
	if err != nil {
		log.Printf("contractor store indisponível, servindo cache: %v", err)
		return r.cachedContractorByName(name), nil
	}
	if ct != nil {
		r.mu.Lock()
		r.contractors[ct.ID] = *ct
		r.mu.Unlock()
	}
	return ct, nil
}

func (r *CachedRepository) SaveContractor(ctx context.Context, ct *models.Contractor) error {
	if err := r.primary.SaveContractor(ctx, ct); err != nil {
		log.Printf("falha ao gravar contratante no store primário: %v", err)
	}

	r.mu.Lock()
	r.contractors[ct.ID] = *ct
	r.mu.Unlock()
	return nil
}

func (r *CachedRepository) cachedContractorByName(name string) *models.Contractor {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var match *models.Contractor
	for id := range r.contractors {
		ct := r.contractors[id]
		if !strings.EqualFold(ct.Name, name) {
			continue
		}
		if match == nil || ct.CreatedAt.Before(match.CreatedAt) {
			match = &ct
		}
	}
	return match
}
