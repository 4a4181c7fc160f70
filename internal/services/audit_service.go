package services

import (
	"encoding/json"
	"log"
	"time"

	"looped/internal/models"
	"looped/internal/repositories"
)

// Audit failure policy: a failed audit write is logged and never fails or
// rolls back the mutation that triggered it. Record returns the write error
// so every call site applies the policy explicitly instead of the recorder
// swallowing it on their behalf.
const auditFailurePolicy = "log-and-continue"

// AuditService appends entries to the append-only audit trail and composes
// the filtered, paginated views the admin dashboard reads.
type AuditService struct {
	repo     repositories.AuditLogRepository
	mqClient Publisher
}

// NewAuditService creates a new AuditService. mqClient may be nil.
func NewAuditService(repo repositories.AuditLogRepository, mqClient Publisher) *AuditService {
	return &AuditService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// Record appends exactly one audit entry for a mutation. The append and the
// mutation it describes are two separate writes; a crash between them loses
// the trail entry. The broker notification is best-effort on top of that.
func (s *AuditService) Record(action models.AuditAction, entity models.AuditEntity, entityID, actorID string) error {
	entry := &models.AuditLog{
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		PerformedBy: actorID,
		Timestamp:   time.Now(),
	}
	if err := s.repo.Create(entry); err != nil {
		return err
	}

	if s.mqClient != nil {
		body, err := json.Marshal(entry)
		if err != nil {
			log.Printf("Failed to marshal audit entry to JSON: %v", err)
			return nil
		}
		if err := s.mqClient.Publish("audit", "audit.recorded", body); err != nil {
			log.Printf("Warning: Failed to publish audit event for %s %s %s: %v", action, entity, entityID, err)
		}
	}
	return nil
}

// Page returns one page of audit entries newest first. The reported total is
// computed under the same filter as the returned page.
func (s *AuditService) Page(filter repositories.AuditLogFilter, page, limit int) ([]models.AuditLog, int64, error) {
	return s.repo.Page(filter, page, limit)
}

// Latest returns the n most recent audit entries.
func (s *AuditService) Latest(n int) ([]models.AuditLog, error) {
	return s.repo.Latest(n)
}
