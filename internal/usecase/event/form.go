package event

import (
	"context"

	"github.com/PalcoPro/band-agenda/internal/audit"
	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
	"github.com/PalcoPro/band-agenda/internal/tokens"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ======================================================
// SHARE (gera o link do formulário do contratante)
// ======================================================

type ShareContractorForm struct {
	repo   domain.Repository
	tokens *tokens.Manager
	audit  *audit.Dispatcher
}

func NewShareContractorForm(
	repo domain.Repository,
	tokens *tokens.Manager,
	audit *audit.Dispatcher,
) *ShareContractorForm {
	return &ShareContractorForm{repo: repo, tokens: tokens, audit: audit}
}

func (uc *ShareContractorForm) Execute(ctx context.Context, eventID, actor string) (string, error) {
	ev, err := uc.repo.GetEvent(ctx, eventID)
	if err != nil {
		return "", err
	}
	if ev == nil {
		return "", httperr.ErrBusiness("event_not_found")
	}

	// Reemissão invalida o link anterior: só o último compartilhado resolve.
	if ev.ContractorFormToken != "" {
		if err := uc.tokens.ConsumeFormToken(ctx, ev.ContractorFormToken); err != nil {
			return "", err
		}
	}

	token, err := uc.tokens.IssueFormToken(ctx, ev.ID)
	if err != nil {
		return "", err
	}

	updated := sanitize.Event(*ev, "")
	updated.ContractorFormToken = token
	updated.ContractorFormStatus = string(domain.FormSent)

	if err := uc.repo.SaveEvent(ctx, &updated); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "form_token_issued",
		Entity:   "event",
		EntityID: ev.ID,
	})

	return token, nil
}

// ======================================================
// RESOLVE (abre o formulário público)
// ======================================================

// FormContext é tudo que o formulário público pré-preenche.
// Contractor e Band podem ser nil: o vínculo por nome pode não
// resolver e a banda pode ter sido apagada.
type FormContext struct {
	Event      models.Event
	Contractor *models.Contractor
	Band       *models.Band
}

type ResolveContractorForm struct {
	repo   domain.Repository
	tokens *tokens.Manager
}

func NewResolveContractorForm(repo domain.Repository, tokens *tokens.Manager) *ResolveContractorForm {
	return &ResolveContractorForm{repo: repo, tokens: tokens}
}

func (uc *ResolveContractorForm) Execute(ctx context.Context, token string) (*FormContext, error) {
	eventID, found, err := uc.tokens.ResolveFormToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, httperr.ErrBusiness("invalid_token")
	}

	ev, err := uc.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, httperr.ErrBusiness("invalid_token")
	}

	contractor, err := uc.repo.FindContractorByName(ctx, ev.Contractor)
	if err != nil {
		return nil, err
	}

	band, err := uc.repo.GetBand(ctx, ev.BandID)
	if err != nil {
		return nil, err
	}

	return &FormContext{
		Event:      sanitize.Event(*ev, ""),
		Contractor: contractor,
		Band:       band,
	}, nil
}

// ======================================================
// COMPLETE (submissão pública do contratante)
// ======================================================

type CompleteFormInput struct {
	Token string

	Name               string
	Type               string
	ResponsibleName    string
	ResponsibleContact string
	Email              string
	Phone              string

	CPF       string
	RG        string
	BirthDate string
	CNPJ      string

	Address        models.ContractorAddress
	AdditionalInfo models.ContractorAdditionalInfo
}

type CompleteContractorForm struct {
	repo   domain.Repository
	tokens *tokens.Manager
	audit  *audit.Dispatcher
}

func NewCompleteContractorForm(
	repo domain.Repository,
	tokens *tokens.Manager,
	audit *audit.Dispatcher,
) *CompleteContractorForm {
	return &CompleteContractorForm{repo: repo, tokens: tokens, audit: audit}
}

func (uc *CompleteContractorForm) Execute(ctx context.Context, in CompleteFormInput) (*models.Event, error) {
	eventID, found, err := uc.tokens.ResolveFormToken(ctx, in.Token)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, httperr.ErrBusiness("invalid_token")
	}

	ev, err := uc.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, httperr.ErrBusiness("invalid_token")
	}

	// Atualiza o contratante vinculado por nome, ou cria um novo.
	contractor, err := uc.repo.FindContractorByName(ctx, ev.Contractor)
	if err != nil {
		return nil, err
	}

	id := ""
	var base models.Contractor
	if contractor != nil {
		base = *contractor
	} else {
		id = uuid.NewString()
	}

	base.Type = in.Type
	base.ResponsibleName = in.ResponsibleName
	base.ResponsibleContact = in.ResponsibleContact
	base.Email = in.Email
	base.Phone = in.Phone
	base.CPF = in.CPF
	base.RG = in.RG
	base.BirthDate = in.BirthDate
	base.CNPJ = in.CNPJ
	base.Address = datatypes.NewJSONType(in.Address)
	base.AdditionalInfo = datatypes.NewJSONType(in.AdditionalInfo)

	if name := in.Name; name != "" {
		base.Name = name
	} else if base.Name == "" {
		base.Name = ev.Contractor
	}

	saved := sanitize.Contractor(base, id)
	if err := uc.repo.SaveContractor(ctx, &saved); err != nil {
		return nil, err
	}

	updated := sanitize.Event(*ev, "")
	updated.Contractor = saved.Name
	updated.ContractorFormStatus = string(domain.FormCompleted)
	updated.ContractorFormToken = ""

	if err := uc.repo.SaveEvent(ctx, &updated); err != nil {
		return nil, err
	}

	// Link de uso único: consumido depois da submissão dar certo.
	if err := uc.tokens.ConsumeFormToken(ctx, in.Token); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    saved.Name,
		Action:   "contractor_form_completed",
		Entity:   "event",
		EntityID: updated.ID,
	})

	return &updated, nil
}
