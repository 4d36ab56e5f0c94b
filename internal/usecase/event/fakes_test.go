package event

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/PalcoPro/band-agenda/internal/audit"
	"github.com/PalcoPro/band-agenda/internal/models"
)

// fakeRepository é o repositório em memória dos testes de caso de uso.
type fakeRepository struct {
	mu          sync.Mutex
	events      map[string]models.Event
	bands       map[string]models.Band
	contractors map[string]models.Contractor

	saveEventErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		events:      make(map[string]models.Event),
		bands:       make(map[string]models.Band),
		contractors: make(map[string]models.Contractor),
	}
}

func (r *fakeRepository) ListEvents(context.Context) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Event, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepository) GetEvent(_ context.Context, id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ev, ok := r.events[id]; ok {
		return &ev, nil
	}
	return nil, nil
}

func (r *fakeRepository) SaveEvent(_ context.Context, ev *models.Event) error {
	if r.saveEventErr != nil {
		return r.saveEventErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[ev.ID] = *ev
	return nil
}

func (r *fakeRepository) DeleteEvent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, id)
	return nil
}

func (r *fakeRepository) ListBands(context.Context) ([]models.Band, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Band, 0, len(r.bands))
	for _, b := range r.bands {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepository) GetBand(_ context.Context, id string) (*models.Band, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.bands[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *fakeRepository) FindContractorByName(_ context.Context, name string) (*models.Contractor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

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
	return match, nil
}

func (r *fakeRepository) SaveContractor(_ context.Context, ct *models.Contractor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contractors[ct.ID] = *ct
	return nil
}

// discardSink descarta as entradas de auditoria.
type discardSink struct{}

func (discardSink) Log(string, string, string, string, any) error { return nil }

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(discardSink{})
}
