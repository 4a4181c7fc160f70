package models

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleBuyer      Role = "BUYER"
	RoleSuperadmin Role = "SUPERADMIN"
)

// User represents a registered account: a buyer or the store operator.
// Users are never soft-deleted in the current scope.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Role      Role      `json:"role" gorm:"type:varchar(20);default:'BUYER'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
