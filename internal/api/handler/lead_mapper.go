package handler

import (
	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createLeadRequest) ports.CreateLeadInput {
	return ports.CreateLeadInput{
		PracticeName:   req.PracticeName,
		OwnerName:      req.OwnerName,
		PracticePhone:  req.PracticePhone,
		Email:          req.Email,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		Specialty:      req.Specialty,
		Score:          req.Score,
		Priority:       req.Priority,
		Status:         req.Status,
		AssignedUserID: req.AssignedUserID,
		NPI:            req.NPI,
		PTAN:           req.PTAN,
		EINTIN:         req.EINTIN,
	}
}

// --- Domain → HTTP response ---

func toLeadResponse(l *domain.Lead) leadResponse {
	return leadResponse{
		ID:             l.ID,
		PracticeName:   l.PracticeName,
		OwnerName:      l.OwnerName,
		PracticePhone:  l.PracticePhone,
		Email:          l.Email,
		Address:        l.Address,
		City:           l.City,
		State:          l.State,
		ZipCode:        l.ZipCode,
		Specialty:      l.Specialty,
		Score:          l.Score,
		Priority:       string(l.Priority),
		Status:         string(l.Status),
		AssignedUserID: l.AssignedUserID,
		DocsSent:       l.DocsSent,
		NPI:            l.NPI,
		PTAN:           l.PTAN,
		EINTIN:         l.EINTIN,
		CreatedAt:      l.CreatedAt.UTC(),
		UpdatedAt:      l.UpdatedAt.UTC(),
		CreatedBy:      l.CreatedBy,
	}
}

func toListResponse(leads []*domain.Lead) listLeadsResponse {
	items := make([]leadResponse, len(leads))
	for i, l := range leads {
		items[i] = toLeadResponse(l)
	}
	return listLeadsResponse{Leads: items, Total: len(items)}
}
