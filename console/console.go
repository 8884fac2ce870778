// Package console implements the stateful admin workflow over the branch
// services: the filtered listing, the single exclusive edit buffer with
// geocode assist, and the two-step confirmation gating of destructive
// actions. One Console exists per admin session.
package console

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"dar_almal_go/models"
	"dar_almal_go/services"

	"gorm.io/gorm"
)

// Workflow-state violations: the request referenced an edit or confirmation
// that is not currently open. Distinct from the service error taxonomy.
var (
	// ErrNoEdit means the operation needs an open edit buffer and there is none
	ErrNoEdit = errors.New("no edit in progress")
	// ErrNotArmed means a confirmation arrived without a matching armed action
	ErrNotArmed = errors.New("deletion not armed")
)

// GeocodeOutcome is the user-visible result of a geocode assist call
type GeocodeOutcome string

const (
	// GeocodeSuccess means coordinates were written into the edit buffer
	GeocodeSuccess GeocodeOutcome = "success"
	// GeocodeNoMatch means the address yielded no candidate; the buffer is untouched
	GeocodeNoMatch GeocodeOutcome = "no_match"
	// GeocodeFailed means the lookup itself failed; the buffer is untouched
	GeocodeFailed GeocodeOutcome = "failed"
)

// EditBuffer is the single in-progress edit. BranchID is empty for a
// create-new buffer.
type EditBuffer struct {
	BranchID string               `json:"branchId"`
	Draft    services.BranchDraft `json:"draft"`
}

// Console drives the branch admin workflow for one session. All mutations go
// through the lifecycle service; after every successful write the listing is
// re-fetched so the console never trusts its local copy.
type Console struct {
	mu       sync.Mutex
	db       *gorm.DB
	geocoder services.Geocoder

	filter   services.BranchFilter
	branches []models.Branch
	loaded   bool

	buffer *EditBuffer

	// Two-step confirmation state: empty/false is Idle, a set value is Armed.
	// Confirmation executes and returns to Idle; any unrelated action disarms.
	armedDeleteID  string
	armedDeleteAll bool
}

// New creates a console for one admin session
func New(db *gorm.DB, geocoder services.Geocoder) *Console {
	return &Console{db: db, geocoder: geocoder}
}

// Refresh re-runs the admin listing with the current filter
func (c *Console) Refresh(authz services.AuthContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(authz)
}

func (c *Console) refreshLocked(authz services.AuthContext) error {
	branches, err := services.ListAdminBranches(c.db, authz, c.filter)
	if err != nil {
		return err
	}
	c.branches = branches
	c.loaded = true
	return nil
}

// SetFilter changes the listing filter and re-fetches. Changing the filter is
// an unrelated action for a pending row confirmation, so it disarms it.
func (c *Console) SetFilter(authz services.AuthContext, filter services.BranchFilter) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.armedDeleteID = ""
	c.filter = filter
	return c.refreshLocked(authz)
}

// Filter returns the current filter selection
func (c *Console) Filter() services.BranchFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Branches returns the listing as of the last refresh
func (c *Console) Branches() []models.Branch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.branches
}

// OpenCreate starts a fresh create-new buffer, replacing any prior edit
func (c *Console) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.armedDeleteID = ""
	c.buffer = &EditBuffer{
		Draft: services.BranchDraft{Governorate: models.GovernorateDamascus},
	}
}

// OpenEdit loads an existing branch into the buffer, replacing any prior edit
func (c *Console) OpenEdit(authz services.AuthContext, id string) error {
	branch, err := services.GetBranch(c.db, authz, id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.armedDeleteID = ""
	c.buffer = &EditBuffer{
		BranchID: branch.ID,
		Draft:    draftFromBranch(branch),
	}
	return nil
}

func draftFromBranch(b *models.Branch) services.BranchDraft {
	draft := services.BranchDraft{
		NameAr:      b.NameAr,
		NameEn:      b.NameEn,
		AddressAr:   b.AddressAr,
		AddressEn:   b.AddressEn,
		Phone:       b.Phone,
		Governorate: b.Governorate,
	}
	if b.Image != nil {
		draft.Image = *b.Image
	}
	if b.WorkingHours != nil {
		draft.WorkingHours = *b.WorkingHours
	}
	if b.Latitude != nil && b.Longitude != nil {
		draft.Latitude = services.CoordText(strconv.FormatFloat(*b.Latitude, 'f', -1, 64))
		draft.Longitude = services.CoordText(strconv.FormatFloat(*b.Longitude, 'f', -1, 64))
	}
	return draft
}

// CloseEditor discards the edit buffer
func (c *Console) CloseEditor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer = nil
}

// UpdateDraft replaces the buffer's field values with the submitted form
// state. The buffer identity (create vs edit) is untouched.
func (c *Console) UpdateDraft(draft services.BranchDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffer == nil {
		return ErrNoEdit
	}
	c.buffer.Draft = draft
	return nil
}

// Buffer returns a copy of the current edit buffer, or nil
func (c *Console) Buffer() *EditBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffer == nil {
		return nil
	}
	copied := *c.buffer
	return &copied
}

// AttachImage stores an uploaded image reference in the buffer. The console
// never holds image bytes, only the reference returned by the asset store.
func (c *Console) AttachImage(ref string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffer == nil {
		return ErrNoEdit
	}
	c.buffer.Draft.Image = ref
	return nil
}

// GeocodeAssist looks up the buffered address and, on success only, writes
// the suggested coordinates into the buffer. The record save never depends on
// this call; no-match and failure leave the buffer exactly as it was.
func (c *Console) GeocodeAssist(ctx context.Context) (GeocodeOutcome, error) {
	c.mu.Lock()
	if c.buffer == nil {
		c.mu.Unlock()
		return GeocodeFailed, ErrNoEdit
	}
	address := c.buffer.Draft.AddressAr
	if address == "" {
		address = c.buffer.Draft.AddressEn
	}
	c.mu.Unlock()

	coords, err := c.geocoder.Search(ctx, address)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoMatch):
			return GeocodeNoMatch, nil
		case errors.Is(err, services.ErrUpstreamUnavailable):
			// Expected outcome, not an error: the admin is told to retry
			return GeocodeFailed, nil
		}
		return GeocodeFailed, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buffer != nil {
		c.buffer.Draft.Latitude = services.CoordText(strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
		c.buffer.Draft.Longitude = services.CoordText(strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	}
	return GeocodeSuccess, nil
}

// Save persists the edit buffer: create when the buffer is new, full-field
// update otherwise. On success the buffer closes and the listing refreshes;
// on failure the buffer stays open for correction.
func (c *Console) Save(authz services.AuthContext) (*models.Branch, error) {
	c.mu.Lock()
	buffer := c.buffer
	c.mu.Unlock()

	if buffer == nil {
		return nil, ErrNoEdit
	}

	var branch *models.Branch
	var err error
	if buffer.BranchID == "" {
		branch, err = services.CreateBranch(c.db, authz, buffer.Draft)
	} else {
		branch, err = services.UpdateBranch(c.db, authz, buffer.BranchID, patchFromDraft(buffer.Draft))
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.buffer = nil
	c.mu.Unlock()

	if err := c.Refresh(authz); err != nil {
		return branch, err
	}
	return branch, nil
}

// patchFromDraft turns a full edit form into a patch touching every editable
// field. Status is deliberately absent: transitions happen through row
// actions, not the editor.
func patchFromDraft(d services.BranchDraft) services.BranchPatch {
	nameAr, nameEn := d.NameAr, d.NameEn
	addressAr, addressEn := d.AddressAr, d.AddressEn
	phone, governorate := d.Phone, d.Governorate
	image, workingHours := d.Image, d.WorkingHours
	lat, lng := d.Latitude, d.Longitude

	return services.BranchPatch{
		NameAr:       &nameAr,
		NameEn:       &nameEn,
		AddressAr:    &addressAr,
		AddressEn:    &addressEn,
		Phone:        &phone,
		Governorate:  &governorate,
		Image:        &image,
		WorkingHours: &workingHours,
		Latitude:     &lat,
		Longitude:    &lng,
	}
}

// SetStatus applies a status transition to a row and refreshes the listing
func (c *Console) SetStatus(authz services.AuthContext, id, status string) error {
	if _, err := services.TransitionStatus(c.db, authz, id, status); err != nil {
		return err
	}

	c.mu.Lock()
	c.armedDeleteID = ""
	c.mu.Unlock()

	return c.Refresh(authz)
}

// ArmDelete arms the two-step confirmation for a single row
func (c *Console) ArmDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armedDeleteID = id
}

// ArmDeleteAll arms the two-step confirmation for wiping the directory
func (c *Console) ArmDeleteAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armedDeleteAll = true
}

// Disarm cancels any pending confirmation
func (c *Console) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armedDeleteID = ""
	c.armedDeleteAll = false
}

// ArmedDeleteID returns the row id currently armed for deletion, if any
func (c *Console) ArmedDeleteID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armedDeleteID
}

// DeleteAllArmed reports whether the delete-all confirmation is armed
func (c *Console) DeleteAllArmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armedDeleteAll
}

// ConfirmDelete executes an armed single-row deletion. It fails if the given
// id is not the one armed, so a stale second click cannot delete a different
// row.
func (c *Console) ConfirmDelete(authz services.AuthContext, id string) error {
	c.mu.Lock()
	if c.armedDeleteID == "" || c.armedDeleteID != id {
		c.mu.Unlock()
		return ErrNotArmed
	}
	c.armedDeleteID = ""
	c.mu.Unlock()

	if err := services.DeleteBranch(c.db, authz, id); err != nil {
		// NotFound still refreshes so the stale row disappears
		if errors.Is(err, services.ErrNotFound) {
			if refreshErr := c.Refresh(authz); refreshErr != nil {
				return refreshErr
			}
		}
		return err
	}

	return c.Refresh(authz)
}

// ConfirmDeleteAll executes an armed directory wipe
func (c *Console) ConfirmDeleteAll(authz services.AuthContext) error {
	c.mu.Lock()
	if !c.armedDeleteAll {
		c.mu.Unlock()
		return ErrNotArmed
	}
	c.armedDeleteAll = false
	c.mu.Unlock()

	if err := services.DeleteAllBranches(c.db, authz); err != nil {
		return err
	}

	return c.Refresh(authz)
}
