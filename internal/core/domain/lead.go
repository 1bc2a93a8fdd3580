package domain

import (
	"errors"
	"fmt"
	"time"
)

// LeadStatus represents the pipeline state of a lead.
type LeadStatus string

const (
	StatusNew       LeadStatus = "new"
	StatusContacted LeadStatus = "contacted"
	StatusQualified LeadStatus = "qualified"
	StatusSold      LeadStatus = "sold"
	StatusDisposed  LeadStatus = "disposed"
)

// LeadPriority classifies how urgently a lead should be worked.
type LeadPriority string

const (
	PriorityHigh   LeadPriority = "high"
	PriorityMedium LeadPriority = "medium"
	PriorityLow    LeadPriority = "low"
)

var ErrLeadNotFound = errors.New("lead not found")
var ErrForbidden = errors.New("access forbidden")
var ErrDocsAlreadySent = errors.New("documents already sent for this lead")
var ErrInvalidAssignee = errors.New("assignee must be an existing active user")

// ValidationError marks user-correctable input problems. The Field name is
// surfaced verbatim in the response detail so callers can fix the payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	}
	return e.Field + " is required"
}

// FieldRequired builds the ValidationError for a missing required field.
func FieldRequired(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// SignedUp reports whether the lead counts as a signed-up practice.
func (s LeadStatus) SignedUp() bool {
	return s == StatusSold || s == StatusDisposed
}

// Active reports whether the lead is in an in-progress pipeline state.
func (s LeadStatus) Active() bool {
	return s == StatusContacted || s == StatusQualified
}

// Lead is the core aggregate root: a prospective customer practice tracked
// through the sales pipeline. AssignedUserID is nil while unassigned.
type Lead struct {
	ID             int64        `json:"id" bson:"_id"`
	PracticeName   string       `json:"practice_name" bson:"practice_name"`
	OwnerName      string       `json:"owner_name" bson:"owner_name"`
	PracticePhone  string       `json:"practice_phone" bson:"practice_phone"`
	Email          string       `json:"email,omitempty" bson:"email,omitempty"`
	Address        string       `json:"address,omitempty" bson:"address,omitempty"`
	City           string       `json:"city,omitempty" bson:"city,omitempty"`
	State          string       `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode        string       `json:"zip_code,omitempty" bson:"zip_code,omitempty"`
	Specialty      string       `json:"specialty,omitempty" bson:"specialty,omitempty"`
	Score          int          `json:"score" bson:"score"`
	Priority       LeadPriority `json:"priority" bson:"priority"`
	Status         LeadStatus   `json:"status" bson:"status"`
	AssignedUserID *int64       `json:"assigned_user_id,omitempty" bson:"assigned_user_id,omitempty"`
	DocsSent       bool         `json:"docs_sent" bson:"docs_sent"`
	NPI            string       `json:"npi,omitempty" bson:"npi,omitempty"`
	PTAN           string       `json:"ptan,omitempty" bson:"ptan,omitempty"`
	EINTIN         string       `json:"ein_tin,omitempty" bson:"ein_tin,omitempty"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
	CreatedBy      string       `json:"created_by,omitempty" bson:"created_by,omitempty"`
}
