package services

import (
	"encoding/json"
	"testing"

	"dar_almal_go/models"

	"github.com/stretchr/testify/assert"
)

func TestDraftValidateMinimal(t *testing.T) {
	draft := BranchDraft{
		NameAr:      "فرع دمشق",
		Phone:       "0991234567",
		Governorate: models.GovernorateDamascus,
	}

	valid, err := draft.Validate()
	assert.NoError(t, err)
	assert.NotNil(t, valid)
	assert.Equal(t, models.BranchStatusActive, valid.Status)
	assert.Nil(t, valid.Latitude)
	assert.Nil(t, valid.Longitude)
	assert.Nil(t, valid.Image)
}

func TestDraftValidateMissingMandatoryFields(t *testing.T) {
	draft := BranchDraft{
		NameEn: "Damascus Branch",
	}

	valid, err := draft.Validate()
	assert.Nil(t, valid)
	assert.Error(t, err)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "nameAr")
	assert.Contains(t, ve.Fields, "phone")
	assert.Contains(t, ve.Fields, "governorate")
}

func TestDraftValidateUnknownGovernorate(t *testing.T) {
	draft := BranchDraft{
		NameAr:      "فرع",
		Phone:       "0991234567",
		Governorate: "paris",
	}

	_, err := draft.Validate()
	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "governorate")
}

func TestDraftValidateUnknownStatus(t *testing.T) {
	draft := BranchDraft{
		NameAr:      "فرع",
		Phone:       "0991234567",
		Governorate: models.GovernorateAleppo,
		Status:      "ARCHIVED",
	}

	_, err := draft.Validate()
	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "status")
}

func TestDraftValidateCoordinates(t *testing.T) {
	base := BranchDraft{
		NameAr:      "فرع",
		Phone:       "0991234567",
		Governorate: models.GovernorateHoms,
	}

	// Well-formed pair is parsed
	draft := base
	draft.Latitude = "33.5138"
	draft.Longitude = "36.2765"
	valid, err := draft.Validate()
	assert.NoError(t, err)
	assert.InDelta(t, 33.5138, *valid.Latitude, 0.0001)
	assert.InDelta(t, 36.2765, *valid.Longitude, 0.0001)

	// Malformed input nulls the pair instead of failing the draft
	draft = base
	draft.Latitude = "not-a-number"
	draft.Longitude = "36.2765"
	valid, err = draft.Validate()
	assert.NoError(t, err)
	assert.Nil(t, valid.Latitude)
	assert.Nil(t, valid.Longitude)

	// A lone coordinate is dropped too
	draft = base
	draft.Latitude = "33.5138"
	valid, err = draft.Validate()
	assert.NoError(t, err)
	assert.Nil(t, valid.Latitude)
	assert.Nil(t, valid.Longitude)

	// Non-finite values never reach the store
	draft = base
	draft.Latitude = "NaN"
	draft.Longitude = "Inf"
	valid, err = draft.Validate()
	assert.NoError(t, err)
	assert.Nil(t, valid.Latitude)
	assert.Nil(t, valid.Longitude)
}

func TestCoordTextUnmarshal(t *testing.T) {
	var draft BranchDraft

	// Coordinates arrive as JSON numbers from the map picker
	err := json.Unmarshal([]byte(`{"latitude": 33.5, "longitude": "36.3"}`), &draft)
	assert.NoError(t, err)
	assert.Equal(t, CoordText("33.5"), draft.Latitude)
	assert.Equal(t, CoordText("36.3"), draft.Longitude)

	// null clears to empty text
	err = json.Unmarshal([]byte(`{"latitude": null}`), &draft)
	assert.NoError(t, err)
	assert.Equal(t, CoordText(""), draft.Latitude)
}

func TestPatchValidate(t *testing.T) {
	blank := ""
	name := "فرع جديد"
	badStatus := models.BranchStatusDeleted
	goodStatus := models.BranchStatusHidden

	// Mandatory fields cannot be blanked by a patch
	err := BranchPatch{NameAr: &blank}.validate()
	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "nameAr")

	err = BranchPatch{Phone: &blank}.validate()
	_, ok = IsValidationError(err)
	assert.True(t, ok)

	// DELETED is not reachable through a patch
	err = BranchPatch{Status: &badStatus}.validate()
	ve, ok = IsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "status")

	// A well-formed patch passes
	err = BranchPatch{NameAr: &name, Status: &goodStatus}.validate()
	assert.NoError(t, err)
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, BranchPatch{}.IsEmpty())

	phone := "0990000000"
	assert.False(t, BranchPatch{Phone: &phone}.IsEmpty())
}
