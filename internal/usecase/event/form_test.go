package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/kv"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/tokens"
)

func setupFormTest(t *testing.T) (*fakeRepository, *tokens.Manager, models.Event) {
	t.Helper()

	repo := newFakeRepository()
	repo.bands["band-1"] = models.Band{ID: "band-1", Name: "Banda Principal"}

	ev := models.Event{
		ID:         "ev-1",
		Name:       "Show",
		BandID:     "band-1",
		Contractor: "Produtora XYZ",
		Status:     string(domain.StatusReserved),
	}
	repo.events[ev.ID] = ev

	return repo, tokens.NewManager(kv.NewMemory()), ev
}

func TestShareContractorForm(t *testing.T) {
	ctx := context.Background()
	repo, tm, ev := setupFormTest(t)

	share := NewShareContractorForm(repo, tm, testDispatcher())
	token, err := share.Execute(ctx, ev.ID, "ana@exemplo.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	saved, err := repo.GetEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, token, saved.ContractorFormToken)
	assert.Equal(t, string(domain.FormSent), saved.ContractorFormStatus)
}

func TestShareContractorFormReemissaoInvalidaLinkAnterior(t *testing.T) {
	ctx := context.Background()
	repo, tm, ev := setupFormTest(t)

	share := NewShareContractorForm(repo, tm, testDispatcher())
	first, err := share.Execute(ctx, ev.ID, "ana")
	require.NoError(t, err)

	second, err := share.Execute(ctx, ev.ID, "ana")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// O link antigo deixa de resolver; só o último compartilhado vale.
	resolve := NewResolveContractorForm(repo, tm)
	_, err = resolve.Execute(ctx, first)
	assert.True(t, httperr.IsBusiness(err, "invalid_token"))

	formCtx, err := resolve.Execute(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, formCtx.Event.ID)
}

func TestShareContractorFormEventoInexistente(t *testing.T) {
	repo, tm, _ := setupFormTest(t)

	share := NewShareContractorForm(repo, tm, testDispatcher())
	_, err := share.Execute(context.Background(), "fantasma", "ana")
	assert.True(t, httperr.IsBusiness(err, "event_not_found"))
}

func TestResolveContractorForm(t *testing.T) {
	ctx := context.Background()
	repo, tm, ev := setupFormTest(t)

	share := NewShareContractorForm(repo, tm, testDispatcher())
	token, err := share.Execute(ctx, ev.ID, "ana")
	require.NoError(t, err)

	resolve := NewResolveContractorForm(repo, tm)
	formCtx, err := resolve.Execute(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, ev.ID, formCtx.Event.ID)
	require.NotNil(t, formCtx.Band)
	assert.Equal(t, "Banda Principal", formCtx.Band.Name)

	// Sem contratante cadastrado com o nome, o vínculo resolve em nada.
	assert.Nil(t, formCtx.Contractor)
}

func TestResolveContractorFormVinculaPorNome(t *testing.T) {
	ctx := context.Background()
	repo, tm, ev := setupFormTest(t)

	repo.contractors["ct-1"] = models.Contractor{
		ID:        "ct-1",
		Name:      "produtora xyz", // caixa diferente do evento
		CreatedAt: time.Now(),
	}

	share := NewShareContractorForm(repo, tm, testDispatcher())
	token, err := share.Execute(ctx, ev.ID, "ana")
	require.NoError(t, err)

	resolve := NewResolveContractorForm(repo, tm)
	formCtx, err := resolve.Execute(ctx, token)
	require.NoError(t, err)

	require.NotNil(t, formCtx.Contractor)
	assert.Equal(t, "ct-1", formCtx.Contractor.ID)
}

func TestResolveContractorFormTokenInvalido(t *testing.T) {
	repo, tm, _ := setupFormTest(t)

	resolve := NewResolveContractorForm(repo, tm)
	_, err := resolve.Execute(context.Background(), "token-inventado")
	assert.True(t, httperr.IsBusiness(err, "invalid_token"))
}

func TestCompleteContractorFormCriaContratante(t *testing.T) {
	ctx := context.Background()
	repo, tm, ev := setupFormTest(t)

	share := NewShareContractorForm(repo, tm, testDispatcher())
	token, err := share.Execute(ctx, ev.ID, "ana")
	require.NoError(t, err)

	complete := NewCompleteContractorForm(repo, tm, testDispatcher())
	updated, err := complete.Execute(ctx, CompleteFormInput{
		Token: token,
		Type:  models.ContractorTypeJuridica,
		CNPJ:  "12.345.678/0001-95",
		Email: "contato@xyz.com.br",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.FormCompleted), updated.ContractorFormStatus)
	assert.Empty(t, updated.ContractorFormToken)

	// Contratante criado com o nome herdado do evento.
	ct, err := repo.FindContractorByName(ctx, "Produtora XYZ")
	require.NoError(t, err)
	require.NotNil(t, ct)
	assert.Equal(t, models.ContractorTypeJuridica, ct.Type)
	assert.Equal(t, "contato@xyz.com.br", ct.Email)

	// Uso único: segunda submissão com o mesmo link é recusada.
	_, err = complete.Execute(ctx, CompleteFormInput{Token: token})
	assert.True(t, httperr.IsBusiness(err, "invalid_token"))
}

func TestCompleteContractorFormAtualizaExistente(t *testing.T) {
	ctx := context.Background()
	repo, tm, ev := setupFormTest(t)

	repo.contractors["ct-1"] = models.Contractor{
		ID:   "ct-1",
		Name: "Produtora XYZ",
	}

	share := NewShareContractorForm(repo, tm, testDispatcher())
	token, err := share.Execute(ctx, ev.ID, "ana")
	require.NoError(t, err)

	complete := NewCompleteContractorForm(repo, tm, testDispatcher())
	_, err = complete.Execute(ctx, CompleteFormInput{
		Token: token,
		Phone: "(41) 99999-0000",
	})
	require.NoError(t, err)

	// Atualiza o registro existente em vez de criar um segundo.
	assert.Len(t, repo.contractors, 1)
	assert.Equal(t, "(41) 99999-0000", repo.contractors["ct-1"].Phone)
}

func TestCreateProspect(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	tm := tokens.NewManager(kv.NewMemory())

	token, err := tm.IssueProspectingToken(ctx)
	require.NoError(t, err)

	uc := NewCreateProspect(repo, tm, testDispatcher())
	ev, err := uc.Execute(ctx, CreateProspectInput{
		Token:          token,
		ContractorName: "João da Silva",
		Email:          "joao@exemplo.com",
		City:           "Curitiba",
	})
	require.NoError(t, err)

	assert.Equal(t, "Evento de João da Silva", ev.Name)
	assert.Empty(t, ev.BandID)
	assert.Equal(t, string(domain.StageLead), ev.PipelineStage)
	assert.Equal(t, "prospecção", ev.CreatedBy)

	ct, err := repo.FindContractorByName(ctx, "João da Silva")
	require.NoError(t, err)
	require.NotNil(t, ct)

	// Token invalidado após o sucesso: segunda submissão é recusada.
	_, err = uc.Execute(ctx, CreateProspectInput{
		Token:          token,
		ContractorName: "Outro Nome",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_token"))
}

func TestCreateProspectSemNome(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	tm := tokens.NewManager(kv.NewMemory())

	token, err := tm.IssueProspectingToken(ctx)
	require.NoError(t, err)

	uc := NewCreateProspect(repo, tm, testDispatcher())
	_, err = uc.Execute(ctx, CreateProspectInput{Token: token})
	assert.True(t, httperr.IsBusiness(err, "contractor_name_required"))

	// Submissão que falhou não queima o token.
	assert.True(t, tm.ValidateProspectingToken(ctx, token))
}

func TestCreateProspectTokenInvalido(t *testing.T) {
	uc := NewCreateProspect(newFakeRepository(), tokens.NewManager(kv.NewMemory()), testDispatcher())

	_, err := uc.Execute(context.Background(), CreateProspectInput{
		Token:          "inventado",
		ContractorName: "João",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_token"))
}
