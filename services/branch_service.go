package services

import (
	"errors"
	"fmt"

	"dar_almal_go/models"

	"gorm.io/gorm"
)

// Branch lifecycle: the only code path that writes branch records. Every
// operation takes the caller's AuthContext; ambient request state never
// reaches this layer.

// CreateBranch validates the draft and inserts a new branch record.
// Status defaults to ACTIVE when the draft leaves it empty.
func CreateBranch(db *gorm.DB, authz AuthContext, draft BranchDraft) (*models.Branch, error) {
	if !authz.CanManageBranches() {
		return nil, ErrUnauthorized
	}

	valid, err := draft.Validate()
	if err != nil {
		return nil, err
	}

	branch := &models.Branch{
		NameAr:       valid.NameAr,
		NameEn:       valid.NameEn,
		AddressAr:    valid.AddressAr,
		AddressEn:    valid.AddressEn,
		Phone:        valid.Phone,
		Governorate:  valid.Governorate,
		Image:        valid.Image,
		WorkingHours: valid.WorkingHours,
		Latitude:     valid.Latitude,
		Longitude:    valid.Longitude,
		Status:       valid.Status,
	}

	if err := db.Create(branch).Error; err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	return branch, nil
}

// GetBranch fetches a single branch by id
func GetBranch(db *gorm.DB, authz AuthContext, id string) (*models.Branch, error) {
	if !authz.CanManageBranches() {
		return nil, ErrUnauthorized
	}

	var branch models.Branch
	if err := db.First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch branch: %w", err)
	}
	return &branch, nil
}

// UpdateBranch applies a partial update: only the fields present in the patch
// change, everything else keeps its stored value. Last write wins at the
// field level.
func UpdateBranch(db *gorm.DB, authz AuthContext, id string, patch BranchPatch) (*models.Branch, error) {
	if !authz.CanManageBranches() {
		return nil, ErrUnauthorized
	}

	if err := patch.validate(); err != nil {
		return nil, err
	}

	var branch models.Branch
	if err := db.First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch branch: %w", err)
	}

	if patch.NameAr != nil {
		branch.NameAr = *patch.NameAr
	}
	if patch.NameEn != nil {
		branch.NameEn = *patch.NameEn
	}
	if patch.AddressAr != nil {
		branch.AddressAr = *patch.AddressAr
	}
	if patch.AddressEn != nil {
		branch.AddressEn = *patch.AddressEn
	}
	if patch.Phone != nil {
		branch.Phone = *patch.Phone
	}
	if patch.Governorate != nil {
		branch.Governorate = *patch.Governorate
	}
	if patch.Image != nil {
		if *patch.Image == "" {
			branch.Image = nil
		} else {
			img := *patch.Image
			branch.Image = &img
		}
	}
	if patch.WorkingHours != nil {
		if *patch.WorkingHours == "" {
			branch.WorkingHours = nil
		} else {
			wh := *patch.WorkingHours
			branch.WorkingHours = &wh
		}
	}
	if patch.Latitude != nil || patch.Longitude != nil {
		lat := branch.Latitude
		lng := branch.Longitude
		if patch.Latitude != nil {
			lat = parseCoordinate(string(*patch.Latitude))
		}
		if patch.Longitude != nil {
			lng = parseCoordinate(string(*patch.Longitude))
		}
		// Coordinates are stored as a pair or not at all
		if lat == nil || lng == nil {
			lat, lng = nil, nil
		}
		branch.Latitude = lat
		branch.Longitude = lng
	}
	if patch.Status != nil {
		branch.Status = *patch.Status
	}

	if err := db.Save(&branch).Error; err != nil {
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}

	return &branch, nil
}

// TransitionStatus moves a branch between ACTIVE, HIDDEN and BANNED. The row
// always survives a transition; DELETED is not a transition target.
func TransitionStatus(db *gorm.DB, authz AuthContext, id, newStatus string) (*models.Branch, error) {
	if !authz.CanManageBranches() {
		return nil, ErrUnauthorized
	}

	if !models.IsTransitionableStatus(newStatus) {
		return nil, NewValidationError("status", "status must be one of ACTIVE, HIDDEN, BANNED")
	}

	var branch models.Branch
	if err := db.First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch branch: %w", err)
	}

	branch.Status = newStatus
	if err := db.Save(&branch).Error; err != nil {
		return nil, fmt.Errorf("failed to update branch status: %w", err)
	}

	return &branch, nil
}

// DeleteBranch permanently removes a branch record. This is not a status
// transition; the row is gone afterwards.
func DeleteBranch(db *gorm.DB, authz AuthContext, id string) error {
	if !authz.CanManageBranches() {
		return ErrUnauthorized
	}

	result := db.Delete(&models.Branch{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete branch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllBranches permanently removes every branch regardless of status.
// Confirmation of destructive intent is the caller's job.
func DeleteAllBranches(db *gorm.DB, authz AuthContext) error {
	if !authz.CanManageBranches() {
		return ErrUnauthorized
	}

	if err := db.Where("1 = 1").Delete(&models.Branch{}).Error; err != nil {
		return fmt.Errorf("failed to delete branches: %w", err)
	}
	return nil
}
