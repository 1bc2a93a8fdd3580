package memory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
)

// Demo credentials for the in-memory store. Fixture data only; production
// deployments run against the mongo store and provision real users.
const seedPassword = "admin123"

func ptrInt64(v int64) *int64 { return &v }

// SeedUsers returns the demo user set: one admin, one manager, one agent
// reporting to the manager. Password hashes are generated at startup so no
// precomputed hash lives in the source.
func SeedUsers() []*domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		panic("memory: seed password hash: " + err.Error())
	}
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	return []*domain.User{
		{
			ID:           1,
			Username:     "admin",
			Email:        "admin@vantagepointcrm.com",
			FullName:     "System Administrator",
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			IsActive:     true,
			CreatedAt:    created,
		},
		{
			ID:           2,
			Username:     "manager1",
			Email:        "manager1@vantagepointcrm.com",
			FullName:     "Sales Manager",
			PasswordHash: string(hash),
			Role:         domain.RoleManager,
			IsActive:     true,
			CreatedAt:    created,
		},
		{
			ID:           3,
			Username:     "agent1",
			Email:        "agent1@vantagepointcrm.com",
			FullName:     "Sales Agent",
			PasswordHash: string(hash),
			Role:         domain.RoleAgent,
			IsActive:     true,
			ManagerID:    ptrInt64(2),
			CreatedAt:    created,
		},
	}
}

// SeedLeads returns a representative lead fixture: assigned leads across all
// pipeline states plus an unassigned tail for bulk assignment.
func SeedLeads() []*domain.Lead {
	created := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	lead := func(id int64, practice, owner, phone, city, state, specialty string, score int, priority domain.LeadPriority, status domain.LeadStatus, assignee *int64) *domain.Lead {
		return &domain.Lead{
			ID:             id,
			PracticeName:   practice,
			OwnerName:      owner,
			PracticePhone:  phone,
			City:           city,
			State:          state,
			Specialty:      specialty,
			Score:          score,
			Priority:       priority,
			Status:         status,
			AssignedUserID: assignee,
			CreatedAt:      created,
			UpdatedAt:      created,
			CreatedBy:      "admin",
		}
	}

	return []*domain.Lead{
		lead(1, "RANCHO MIRAGE PODIATRY", "Dr. Matthew Diltz", "(760) 568-2684", "Rancho Mirage", "CA", "Podiatrist", 100, domain.PriorityHigh, domain.StatusNew, ptrInt64(3)),
		lead(2, "DESERT ORTHOPEDIC CENTER", "Dr. Sarah Johnson", "(760) 346-8058", "Palm Springs", "CA", "Orthopedic Surgery", 95, domain.PriorityHigh, domain.StatusContacted, ptrInt64(3)),
		lead(3, "VEGAS FOOT & ANKLE", "Dr. Michael Rodriguez", "(702) 990-0635", "Las Vegas", "NV", "Podiatrist", 98, domain.PriorityHigh, domain.StatusQualified, ptrInt64(3)),
		lead(4, "TEXAS PODIATRY GROUP", "Dr. Robert Chen", "(214) 555-0198", "Dallas", "TX", "Podiatrist", 92, domain.PriorityHigh, domain.StatusSold, ptrInt64(3)),
		lead(5, "MOUNTAIN VIEW WOUND CARE", "Dr. Lisa Thompson", "(406) 555-0167", "Missoula", "MT", "Wound Care", 89, domain.PriorityMedium, domain.StatusDisposed, ptrInt64(3)),
		lead(6, "CAROLINA FOOT SPECIALISTS", "Dr. James Wilson", "(704) 555-0234", "Charlotte", "NC", "Podiatrist", 94, domain.PriorityHigh, domain.StatusNew, nil),
		lead(7, "MIDWEST WOUND HEALING", "Dr. Patricia Brown", "(314) 555-0567", "St. Louis", "MO", "Wound Care", 83, domain.PriorityMedium, domain.StatusNew, nil),
		lead(8, "NORTHWEST FOOT CLINIC", "Dr. Kevin Lee", "(503) 555-0678", "Portland", "OR", "Podiatrist", 86, domain.PriorityMedium, domain.StatusNew, nil),
	}
}
