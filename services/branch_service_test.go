package services

import (
	"testing"

	"dar_almal_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBranchTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Branch{})
	return db
}

func adminCtx() AuthContext {
	return NewAdminAuthContext("user-1", "session-1")
}

func TestCreateBranchDefaultsToActive(t *testing.T) {
	db := setupBranchTestDB()

	branch, err := CreateBranch(db, adminCtx(), BranchDraft{
		NameAr:      "فرع دمشق",
		Phone:       "0991234567",
		Governorate: models.GovernorateDamascus,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, branch.ID)
	assert.Equal(t, models.BranchStatusActive, branch.Status)
	assert.Nil(t, branch.Latitude)
	assert.Nil(t, branch.Longitude)

	// Persisted, not just returned
	var stored models.Branch
	assert.NoError(t, db.First(&stored, "id = ?", branch.ID).Error)
	assert.Equal(t, "فرع دمشق", stored.NameAr)
}

func TestCreateBranchRejectsZeroCapability(t *testing.T) {
	db := setupBranchTestDB()

	_, err := CreateBranch(db, AuthContext{}, BranchDraft{
		NameAr:      "فرع",
		Phone:       "0991234567",
		Governorate: models.GovernorateDamascus,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	var count int64
	db.Model(&models.Branch{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateBranchPartial(t *testing.T) {
	db := setupBranchTestDB()

	branch, err := CreateBranch(db, adminCtx(), BranchDraft{
		NameAr:      "فرع حلب",
		NameEn:      "Aleppo Branch",
		Phone:       "0991234567",
		Governorate: models.GovernorateAleppo,
		Latitude:    "36.2",
		Longitude:   "37.1",
	})
	assert.NoError(t, err)

	newPhone := "0998765432"
	updated, err := UpdateBranch(db, adminCtx(), branch.ID, BranchPatch{Phone: &newPhone})
	assert.NoError(t, err)

	// Only the patched field changed
	assert.Equal(t, newPhone, updated.Phone)
	assert.Equal(t, "فرع حلب", updated.NameAr)
	assert.Equal(t, "Aleppo Branch", updated.NameEn)
	assert.NotNil(t, updated.Latitude)
	assert.NotNil(t, updated.Longitude)
}

func TestUpdateBranchClearsCoordinatePair(t *testing.T) {
	db := setupBranchTestDB()

	branch, err := CreateBranch(db, adminCtx(), BranchDraft{
		NameAr:      "فرع",
		Phone:       "0991234567",
		Governorate: models.GovernorateHoms,
		Latitude:    "34.73",
		Longitude:   "36.71",
	})
	assert.NoError(t, err)

	// Blanking one coordinate drops the whole pair
	empty := CoordText("")
	updated, err := UpdateBranch(db, adminCtx(), branch.ID, BranchPatch{Latitude: &empty})
	assert.NoError(t, err)
	assert.Nil(t, updated.Latitude)
	assert.Nil(t, updated.Longitude)
}

func TestUpdateBranchNotFound(t *testing.T) {
	db := setupBranchTestDB()

	phone := "0990000000"
	_, err := UpdateBranch(db, adminCtx(), "no-such-id", BranchPatch{Phone: &phone})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionStatus(t *testing.T) {
	db := setupBranchTestDB()

	branch, err := CreateBranch(db, adminCtx(), BranchDraft{
		NameAr:      "فرع",
		Phone:       "0991234567",
		Governorate: models.GovernorateLatakia,
	})
	assert.NoError(t, err)

	// ACTIVE -> HIDDEN -> BANNED -> ACTIVE, row survives throughout
	for _, status := range []string{
		models.BranchStatusHidden,
		models.BranchStatusBanned,
		models.BranchStatusActive,
	} {
		updated, err := TransitionStatus(db, adminCtx(), branch.ID, status)
		assert.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	// DELETED is not a transition target
	_, err = TransitionStatus(db, adminCtx(), branch.ID, models.BranchStatusDeleted)
	_, ok := IsValidationError(err)
	assert.True(t, ok)

	var count int64
	db.Model(&models.Branch{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteBranch(t *testing.T) {
	db := setupBranchTestDB()

	branch, err := CreateBranch(db, adminCtx(), BranchDraft{
		NameAr:      "فرع",
		Phone:       "0991234567",
		Governorate: models.GovernorateTartous,
	})
	assert.NoError(t, err)

	assert.NoError(t, DeleteBranch(db, adminCtx(), branch.ID))

	// The row is gone, not soft-deleted
	var count int64
	db.Model(&models.Branch{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Deleting again reports not found
	assert.ErrorIs(t, DeleteBranch(db, adminCtx(), branch.ID), ErrNotFound)
}

func TestDeleteAllBranches(t *testing.T) {
	db := setupBranchTestDB()

	for _, gov := range []string{models.GovernorateDamascus, models.GovernorateAleppo, models.GovernorateHoms} {
		_, err := CreateBranch(db, adminCtx(), BranchDraft{
			NameAr:      "فرع",
			Phone:       "0991234567",
			Governorate: gov,
		})
		assert.NoError(t, err)
	}

	assert.NoError(t, DeleteAllBranches(db, adminCtx()))

	var count int64
	db.Model(&models.Branch{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
