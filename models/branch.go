package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch lifecycle status
const (
	BranchStatusActive  = "ACTIVE"
	BranchStatusHidden  = "HIDDEN"
	BranchStatusBanned  = "BANNED"
	BranchStatusDeleted = "DELETED" // seed/import taxonomy only, never set via the status API
)

// Branch represents a physical exchange office listed in the public directory
type Branch struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NameAr    string `gorm:"not null" json:"nameAr"`
	NameEn    string `json:"nameEn"`
	AddressAr string `gorm:"not null" json:"addressAr"`
	AddressEn string `json:"addressEn"`

	// Stored exactly as entered; normalization happens at display time only
	Phone string `gorm:"not null" json:"phone"`

	Governorate  string  `gorm:"not null;index" json:"governorate"`
	Image        *string `json:"image"`
	WorkingHours *string `json:"workingHours"`

	// Both set or both nil; a lone coordinate carries no meaning
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Status string `gorm:"not null;default:ACTIVE;index" json:"status"`
}

// BeforeCreate hook to generate UUID
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Branch) TableName() string {
	return "branches"
}

// IsValidStatus checks if the status is a member of the taxonomy
func IsValidStatus(status string) bool {
	switch status {
	case BranchStatusActive, BranchStatusHidden, BranchStatusBanned, BranchStatusDeleted:
		return true
	}
	return false
}

// IsTransitionableStatus checks if the status is reachable through the
// lifecycle API. DELETED is excluded: records leave the store by hard delete,
// not by transition.
func IsTransitionableStatus(status string) bool {
	switch status {
	case BranchStatusActive, BranchStatusHidden, BranchStatusBanned:
		return true
	}
	return false
}
