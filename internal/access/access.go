package access

import "github.com/PalcoPro/band-agenda/internal/models"

// Avaliador de permissões por papel. Nunca retorna erro: papel
// desconhecido é tratado como o mais restritivo (equivalente a VIEWER).
//
// A matriz é assimétrica de propósito: CONTRACTS vê todas as bandas
// (precisa do elenco completo para vincular eventos) mas não ganha o
// bypass de eventos de ADMIN/MANAGER.

func seesAllBands(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleContracts:
		return true
	}
	return false
}

func seesAllEvents(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleManager:
		return true
	}
	return false
}

// FilterBands limita a lista às bandas do usuário, salvo papéis com
// visão total do elenco.
func FilterBands(bands []models.Band, u models.User) []models.Band {
	if seesAllBands(u.Role) {
		return bands
	}

	allowed := make(map[string]bool, len(u.BandIDs))
	for _, id := range u.BandIDs {
		allowed[id] = true
	}

	out := make([]models.Band, 0, len(bands))
	for _, b := range bands {
		if allowed[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

// FilterEvents devolve só os eventos de bandas acessíveis ao usuário.
// Eventos com bandId pendurado (banda apagada) só aparecem para os
// papéis com bypass total.
func FilterEvents(events []models.Event, bands []models.Band, u models.User) []models.Event {
	if seesAllEvents(u.Role) {
		return events
	}

	accessible := make(map[string]bool)
	for _, b := range FilterBands(bands, u) {
		accessible[b.ID] = true
	}

	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if accessible[ev.BandID] {
			out = append(out, ev)
		}
	}
	return out
}

// CanSeeFinancials: para quem retorna false os valores são ocultados
// por completo, não apenas bloqueados para edição.
func CanSeeFinancials(u models.User) bool {
	switch u.Role {
	case models.RoleAdmin, models.RoleManager, models.RoleContracts, models.RoleSales:
		return true
	}
	return false
}

// CanEditContracts cobre upload de arquivo, geração de link de
// formulário e o toggle de contrato recebido.
func CanEditContracts(u models.User) bool {
	switch u.Role {
	case models.RoleAdmin, models.RoleContracts:
		return true
	}
	return false
}

// CanManageBands gateia a tela administrativa de bandas.
func CanManageBands(u models.User) bool {
	return u.Role == models.RoleAdmin
}

// CanManageUsers gateia a listagem e edição de usuários.
func CanManageUsers(u models.User) bool {
	return u.Role == models.RoleAdmin
}

// CanDeleteEvents: exclusão é sempre explícita, sem soft-delete.
func CanDeleteEvents(u models.User) bool {
	switch u.Role {
	case models.RoleAdmin, models.RoleManager:
		return true
	}
	return false
}

// CanIssueProspectingLinks cobre a geração de links públicos de
// prospecção, usados pelo time comercial.
func CanIssueProspectingLinks(u models.User) bool {
	switch u.Role {
	case models.RoleAdmin, models.RoleManager, models.RoleSales:
		return true
	}
	return false
}

// CanImportEvents gateia a importação em massa por CSV.
func CanImportEvents(u models.User) bool {
	switch u.Role {
	case models.RoleAdmin, models.RoleManager:
		return true
	}
	return false
}
