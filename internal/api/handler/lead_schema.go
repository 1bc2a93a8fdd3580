package handler

import "time"

// errorDetail is the standard error envelope returned on all 4xx/5xx responses.
type errorDetail struct {
	Detail string `json:"detail"`
}

// --- Request types ---

// createLeadRequest validates shape and enums; the service re-checks the
// required trio so the rule holds for every transport.
type createLeadRequest struct {
	PracticeName   string `json:"practice_name"    validate:"required"`
	OwnerName      string `json:"owner_name"       validate:"required"`
	PracticePhone  string `json:"practice_phone"   validate:"required"`
	Email          string `json:"email"            validate:"omitempty,email"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zip_code"`
	Specialty      string `json:"specialty"`
	Score          *int   `json:"score"            validate:"omitempty,gte=0,lte=100"`
	Priority       string `json:"priority"         validate:"omitempty,oneof=high medium low"`
	Status         string `json:"status"           validate:"omitempty,oneof=new contacted qualified sold disposed"`
	AssignedUserID *int64 `json:"assigned_user_id"`
	NPI            string `json:"npi"`
	PTAN           string `json:"ptan"`
	EINTIN         string `json:"ein_tin"`
}

type bulkAssignRequest struct {
	AgentID  int64 `json:"agent_id"  validate:"required"`
	MaxCount int   `json:"max_count" validate:"required,gte=1"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.

type leadResponse struct {
	ID             int64     `json:"id"`
	PracticeName   string    `json:"practice_name"`
	OwnerName      string    `json:"owner_name"`
	PracticePhone  string    `json:"practice_phone"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	ZipCode        string    `json:"zip_code,omitempty"`
	Specialty      string    `json:"specialty,omitempty"`
	Score          int       `json:"score"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	AssignedUserID *int64    `json:"assigned_user_id,omitempty"`
	DocsSent       bool      `json:"docs_sent"`
	NPI            string    `json:"npi,omitempty"`
	PTAN           string    `json:"ptan,omitempty"`
	EINTIN         string    `json:"ein_tin,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

type listLeadsResponse struct {
	Leads []leadResponse `json:"leads"`
	Total int            `json:"total"`
}

type createLeadResponse struct {
	Message    string       `json:"message"`
	Lead       leadResponse `json:"lead"`
	AssignedTo string       `json:"assigned_to"`
}

type bulkAssignResponse struct {
	AssignedCount int `json:"assigned_count"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}
