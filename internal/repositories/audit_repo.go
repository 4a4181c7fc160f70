package repositories

import (
	"time"

	"looped/internal/models"
)

// AuditLogFilter narrows an audit page. Every dimension is optional; the set
// dimensions are combined with AND. Start and End are inclusive.
type AuditLogFilter struct {
	Action models.AuditAction // empty means any action
	Entity models.AuditEntity // empty means any entity kind
	Start  *time.Time
	End    *time.Time
}

// AuditLogRepository defines the interface for the append-only audit trail.
// There is deliberately no update or delete operation.
type AuditLogRepository interface {
	Create(entry *models.AuditLog) error
	Page(filter AuditLogFilter, page, limit int) ([]models.AuditLog, int64, error)
	Latest(n int) ([]models.AuditLog, error)
}
