package models

import "time"

// AuditAction is the kind of mutation an audit entry records.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditEntity is the kind of entity an audit entry refers to.
type AuditEntity string

const (
	AuditEntityUser    AuditEntity = "USER"
	AuditEntityProduct AuditEntity = "PRODUCT"
	AuditEntityOrder   AuditEntity = "ORDER"
)

// AuditLog is one append-only record of who performed which mutation on what
// entity and when. Rows are never updated or removed once written.
type AuditLog struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Action      AuditAction `json:"action" gorm:"type:varchar(20);index"`
	Entity      AuditEntity `json:"entity" gorm:"type:varchar(20);index"`
	EntityID    string      `json:"entity_id" gorm:"type:varchar(36)"`
	PerformedBy string      `json:"performed_by" gorm:"type:varchar(36)"`
	Timestamp   time.Time   `json:"timestamp" gorm:"index"`
}
