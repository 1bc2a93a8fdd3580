package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) guarding against a
// lead's documents being sent twice across concurrent requests or retries.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, leadID int64) (bool, error)
	Mark(ctx context.Context, leadID int64) error
	// Unmark clears the key so a failed delivery stays retryable.
	Unmark(ctx context.Context, leadID int64) error
}

// PartnerClient abstracts the external document-sending API.
type PartnerClient interface {
	SendDocs(ctx context.Context, payload *ports.PartnerPayload) error
}

type docsService struct {
	leads    ports.LeadRepository
	partner  PartnerClient
	dedup    DedupChecker // optional; nil skips the idempotency check
	salesRep string
	log      zerolog.Logger
}

// NewDocsService returns a DocsService that delivers lead documents to the
// partner API and flips the lead's docs_sent flag on success.
func NewDocsService(
	leads ports.LeadRepository,
	partner PartnerClient,
	dedup DedupChecker,
	salesRep string,
	log zerolog.Logger,
) ports.DocsService {
	return &docsService{
		leads:    leads,
		partner:  partner,
		dedup:    dedup,
		salesRep: salesRep,
		log:      log,
	}
}

// Process delivers one queued send-docs job. Duplicates are skipped silently.
// The dedup key is written before the partner call so a crash between send and
// persist cannot double-deliver, and cleared again on a failed send so the
// job stays retryable.
func (s *docsService) Process(ctx context.Context, job ports.SendDocsJob) error {
	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, job.LeadID)
		if err != nil {
			s.log.Warn().Err(err).Int64("lead_id", job.LeadID).Msg("dedup check failed, processing anyway")
		} else if isDup {
			s.log.Debug().Int64("lead_id", job.LeadID).Msg("duplicate docs job skipped")
			return nil
		}
	}

	lead, err := s.leads.FindByID(ctx, job.LeadID)
	if err != nil {
		return fmt.Errorf("send docs: %w", err)
	}
	if lead.DocsSent {
		s.log.Debug().Int64("lead_id", job.LeadID).Msg("docs already sent, skipping")
		return nil
	}

	if s.dedup != nil {
		if markErr := s.dedup.Mark(ctx, job.LeadID); markErr != nil {
			s.log.Warn().Err(markErr).Int64("lead_id", job.LeadID).Msg("failed to set dedup key")
		}
	}

	payload := BuildPartnerPayload(lead, s.salesRep)
	if err := s.partner.SendDocs(ctx, payload); err != nil {
		// Clear the key so the delivery stays retryable; otherwise the
		// failed send would read as a duplicate for the key's lifetime.
		if s.dedup != nil {
			if unmarkErr := s.dedup.Unmark(ctx, job.LeadID); unmarkErr != nil {
				s.log.Warn().Err(unmarkErr).Int64("lead_id", job.LeadID).Msg("failed to clear dedup key")
			}
		}
		return fmt.Errorf("send docs: partner call: %w", err)
	}

	if err := s.leads.MarkDocsSent(ctx, lead.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("send docs: mark sent: %w", err)
	}

	s.log.Info().
		Int64("lead_id", lead.ID).
		Str("practice", lead.PracticeName).
		Str("requested_by", job.RequestedBy).
		Msg("documents sent to partner")

	return nil
}
