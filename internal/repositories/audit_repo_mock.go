package repositories

import (
	"sort"
	"sync"
	"time"

	"looped/internal/models"

	"github.com/google/uuid"
)

// MockAuditLogRepository is an in-memory implementation of AuditLogRepository.
// Entries are kept in insertion order; reads never mutate the slice.
type MockAuditLogRepository struct {
	entries []models.AuditLog
	mu      sync.RWMutex
}

// NewMockAuditLogRepository creates a new instance of MockAuditLogRepository.
func NewMockAuditLogRepository() *MockAuditLogRepository {
	return &MockAuditLogRepository{}
}

// Create appends one audit entry.
func (r *MockAuditLogRepository) Create(entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

// Page returns one page of matching entries newest first and the count of all
// entries matching the same filter. Timestamp ties keep insertion order.
func (r *MockAuditLogRepository) Page(filter AuditLogFilter, page, limit int) ([]models.AuditLog, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.AuditLog, 0, len(r.entries))
	for _, e := range r.entries {
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.Entity != "" && e.Entity != filter.Entity {
			continue
		}
		if filter.Start != nil && e.Timestamp.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && e.Timestamp.After(*filter.End) {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Latest returns the n most recent entries.
func (r *MockAuditLogRepository) Latest(n int) ([]models.AuditLog, error) {
	entries, _, err := r.Page(AuditLogFilter{}, 1, n)
	return entries, err
}
