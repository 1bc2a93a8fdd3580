package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

type stubPartner struct {
	calls []*ports.PartnerPayload
	errs  []error
}

func (p *stubPartner) SendDocs(_ context.Context, payload *ports.PartnerPayload) error {
	p.calls = append(p.calls, payload)
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		return err
	}
	return nil
}

type stubDedup struct {
	seen map[int64]bool
}

func newStubDedup() *stubDedup { return &stubDedup{seen: make(map[int64]bool)} }

func (d *stubDedup) IsDuplicate(_ context.Context, leadID int64) (bool, error) {
	return d.seen[leadID], nil
}

func (d *stubDedup) Mark(_ context.Context, leadID int64) error {
	d.seen[leadID] = true
	return nil
}

func (d *stubDedup) Unmark(_ context.Context, leadID int64) error {
	delete(d.seen, leadID)
	return nil
}

func TestDocsService_Process_Success(t *testing.T) {
	repo := newStubLeadRepo(testLead(1, 90, ptrInt64(3), domain.StatusQualified))
	partner := &stubPartner{}
	svc := NewDocsService(repo, partner, newStubDedup(), "rep", zerolog.Nop())

	err := svc.Process(context.Background(), ports.SendDocsJob{LeadID: 1, RequestedBy: "agent1"})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(partner.calls) != 1 {
		t.Fatalf("expected one partner call, got %d", len(partner.calls))
	}
	lead, _ := repo.FindByID(context.Background(), 1)
	if !lead.DocsSent {
		t.Fatalf("lead should be marked docs sent")
	}
}

func TestDocsService_Process_DuplicateSkipped(t *testing.T) {
	repo := newStubLeadRepo(testLead(1, 90, ptrInt64(3), domain.StatusQualified))
	partner := &stubPartner{}
	dedup := newStubDedup()
	dedup.seen[1] = true
	svc := NewDocsService(repo, partner, dedup, "rep", zerolog.Nop())

	if err := svc.Process(context.Background(), ports.SendDocsJob{LeadID: 1}); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(partner.calls) != 0 {
		t.Fatalf("duplicate job must not reach the partner")
	}
}

func TestDocsService_Process_AlreadySentSkipped(t *testing.T) {
	sent := testLead(1, 90, ptrInt64(3), domain.StatusSold)
	sent.DocsSent = true
	repo := newStubLeadRepo(sent)
	partner := &stubPartner{}
	svc := NewDocsService(repo, partner, nil, "rep", zerolog.Nop())

	if err := svc.Process(context.Background(), ports.SendDocsJob{LeadID: 1}); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(partner.calls) != 0 {
		t.Fatalf("already-sent lead must not reach the partner")
	}
}

func TestDocsService_Process_PartnerFailure(t *testing.T) {
	repo := newStubLeadRepo(testLead(1, 90, ptrInt64(3), domain.StatusQualified))
	partner := &stubPartner{errs: []error{errors.New("partner down")}}
	svc := NewDocsService(repo, partner, nil, "rep", zerolog.Nop())

	if err := svc.Process(context.Background(), ports.SendDocsJob{LeadID: 1}); err == nil {
		t.Fatalf("expected error when partner call fails")
	}
	lead, _ := repo.FindByID(context.Background(), 1)
	if lead.DocsSent {
		t.Fatalf("lead must not be marked sent on partner failure")
	}
}

func TestDocsService_Process_RetryAfterPartnerFailure(t *testing.T) {
	repo := newStubLeadRepo(testLead(1, 90, ptrInt64(3), domain.StatusQualified))
	partner := &stubPartner{errs: []error{errors.New("partner down")}}
	dedup := newStubDedup()
	svc := NewDocsService(repo, partner, dedup, "rep", zerolog.Nop())

	// First attempt fails and must leave no dedup key behind.
	if err := svc.Process(context.Background(), ports.SendDocsJob{LeadID: 1}); err == nil {
		t.Fatalf("expected error on first attempt")
	}
	if dedup.seen[1] {
		t.Fatalf("dedup key must be cleared after a failed send")
	}

	// The retry reaches the partner and completes delivery.
	if err := svc.Process(context.Background(), ports.SendDocsJob{LeadID: 1}); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if len(partner.calls) != 2 {
		t.Fatalf("retry never reached the partner: calls=%d", len(partner.calls))
	}
	lead, _ := repo.FindByID(context.Background(), 1)
	if !lead.DocsSent {
		t.Fatalf("lead should be marked sent after successful retry")
	}
	if !dedup.seen[1] {
		t.Fatalf("dedup key should remain set after successful delivery")
	}
}

func TestDocsService_Process_MissingLead(t *testing.T) {
	svc := NewDocsService(newStubLeadRepo(), &stubPartner{}, nil, "rep", zerolog.Nop())

	err := svc.Process(context.Background(), ports.SendDocsJob{LeadID: 42})
	if !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}
