package event

import "strings"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
)

func Statuses() []Status {
	return []Status{
		StatusReserved,
		StatusConfirmed,
		StatusCanceled,
		StatusCompleted,
	}
}

// StatusNames lista os valores aceitos, para mensagens de validação.
func StatusNames() []string {
	all := Statuses()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return names
}

// ParseStatus aceita qualquer caixa e espaços nas pontas.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusReserved:
		return StatusReserved, true
	case StatusConfirmed:
		return StatusConfirmed, true
	case StatusCanceled:
		return StatusCanceled, true
	case StatusCompleted:
		return StatusCompleted, true
	}
	return "", false
}

// ===============================
// Pipeline (CRM)
// ===============================

// PipelineStage é a posição no funil comercial, independente do status
// da reserva. A inferência a partir do status acontece uma única vez,
// para registros legados sem etapa gravada.

type PipelineStage string

const (
	StageLead          PipelineStage = "LEAD"
	StageQualification PipelineStage = "QUALIFICATION"
	StageProposal      PipelineStage = "PROPOSAL"
	StageNegotiation   PipelineStage = "NEGOTIATION"
	StageContract      PipelineStage = "CONTRACT"
	StageWon           PipelineStage = "WON"
	StageLost          PipelineStage = "LOST"
)

func IsValidStage(raw string) bool {
	switch PipelineStage(strings.ToUpper(strings.TrimSpace(raw))) {
	case StageLead, StageQualification, StageProposal,
		StageNegotiation, StageContract, StageWon, StageLost:
		return true
	}
	return false
}

// InferStage dá a etapa inicial de um registro legado sem pipeline.
func InferStage(s Status) PipelineStage {
	switch s {
	case StatusConfirmed:
		return StageWon
	case StatusCanceled:
		return StageLost
	default:
		return StageLead
	}
}

// ===============================
// Formulário público do contratante
// ===============================

type FormStatus string

const (
	FormPending   FormStatus = "PENDING"
	FormSent      FormStatus = "SENT"
	FormCompleted FormStatus = "COMPLETED"
)

func IsValidFormStatus(raw string) bool {
	switch FormStatus(raw) {
	case FormPending, FormSent, FormCompleted:
		return true
	}
	return false
}
