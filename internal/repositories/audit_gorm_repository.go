package repositories

import (
	"fmt"
	"time"

	"looped/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAuditLogRepository is a GORM implementation of AuditLogRepository.
type GORMAuditLogRepository struct {
	db *gorm.DB
}

// NewGORMAuditLogRepository creates a new instance of GORMAuditLogRepository.
func NewGORMAuditLogRepository(db *gorm.DB) *GORMAuditLogRepository {
	return &GORMAuditLogRepository{
		db: db,
	}
}

// Create appends one audit entry.
func (r *GORMAuditLogRepository) Create(entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}

// Page returns one page of audit entries newest first, with the total count
// computed under the identical filter predicate as the page itself.
func (r *GORMAuditLogRepository) Page(filter AuditLogFilter, page, limit int) ([]models.AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}

	query := r.db.Model(&models.AuditLog{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.Start != nil {
		query = query.Where("timestamp >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("timestamp <= ?", *filter.End)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit log entries: %w", err)
	}

	var entries []models.AuditLog
	err := query.
		Order("timestamp desc, id desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to page audit log entries: %w", err)
	}
	return entries, total, nil
}

// Latest returns the n most recent audit entries.
func (r *GORMAuditLogRepository) Latest(n int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := r.db.Order("timestamp desc, id desc").Limit(n).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get latest audit log entries: %w", err)
	}
	return entries, nil
}
