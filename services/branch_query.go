package services

import (
	"fmt"

	"dar_almal_go/models"

	"gorm.io/gorm"
)

// BranchFilter narrows the admin listing. Empty values are wildcards; the two
// criteria combine with AND.
type BranchFilter struct {
	Governorate string
	Status      string
}

// ListAdminBranches returns the full, untranslated records matching the
// filter, newest first. The whole filtered set comes back in one response:
// acceptable while branch counts stay in the dozens, and the first thing to
// revisit if they ever do not.
func ListAdminBranches(db *gorm.DB, authz AuthContext, filter BranchFilter) ([]models.Branch, error) {
	if !authz.CanManageBranches() {
		return nil, ErrUnauthorized
	}

	if filter.Governorate != "" && !models.IsValidGovernorate(filter.Governorate) {
		return nil, NewValidationError("governorate", "unknown governorate")
	}
	if filter.Status != "" && !models.IsValidStatus(filter.Status) {
		return nil, NewValidationError("status", "unknown status")
	}

	query := db.Model(&models.Branch{})
	if filter.Governorate != "" {
		query = query.Where("governorate = ?", filter.Governorate)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var branches []models.Branch
	if err := query.Order("created_at DESC").Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

// PublicBranch is the localized projection served to site visitors
type PublicBranch struct {
	ID           string   `json:"id"`
	Governorate  string   `json:"governorate"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Image        string   `json:"image"`
	WorkingHours *string  `json:"workingHours"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// ListPublicBranches returns the active branches only, ordered by governorate,
// projected into the requested locale. English fields fall back to Arabic when
// empty; a missing photo falls back to the governorate image.
func ListPublicBranches(db *gorm.DB, locale string) ([]PublicBranch, error) {
	var branches []models.Branch
	err := db.Where("status = ?", models.BranchStatusActive).
		Order("governorate ASC").
		Find(&branches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list public branches: %w", err)
	}

	result := make([]PublicBranch, 0, len(branches))
	for _, b := range branches {
		result = append(result, projectBranch(b, locale))
	}
	return result, nil
}

func projectBranch(b models.Branch, locale string) PublicBranch {
	name := b.NameAr
	address := b.AddressAr
	if locale != "ar" {
		if b.NameEn != "" {
			name = b.NameEn
		}
		if b.AddressEn != "" {
			address = b.AddressEn
		}
	}

	image := models.GovernorateImage(b.Governorate)
	if b.Image != nil && *b.Image != "" {
		image = *b.Image
	}

	return PublicBranch{
		ID:           b.ID,
		Governorate:  b.Governorate,
		Name:         name,
		Address:      address,
		Phone:        b.Phone,
		Image:        image,
		WorkingHours: b.WorkingHours,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
	}
}
