package services

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"dar_almal_go/models"
)

// CoordText is the textual form of a coordinate as it arrives from a form
// field or JSON payload. It accepts a JSON number, a JSON string, or null.
type CoordText string

// UnmarshalJSON implements json.Unmarshaler
func (c *CoordText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*c = ""
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*c = CoordText(s)
	return nil
}

// parseCoordinate parses a textual coordinate. Malformed or non-finite input
// yields nil rather than an error: coordinates are optional, and the store
// must never hold NaN or Inf.
func parseCoordinate(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// BranchDraft is the loosely-typed edit buffer content: every field as the
// text the administrator typed. Validate turns it into a ValidBranch or a
// field-level ValidationError; nothing is written until validation passes.
type BranchDraft struct {
	NameAr       string `json:"nameAr"`
	NameEn       string `json:"nameEn"`
	AddressAr    string `json:"addressAr"`
	AddressEn    string `json:"addressEn"`
	Phone        string `json:"phone"`
	Governorate  string `json:"governorate"`
	Image        string `json:"image"`
	WorkingHours string `json:"workingHours"`

	Latitude  CoordText `json:"latitude"`
	Longitude CoordText `json:"longitude"`

	// Optional; empty means ACTIVE. Values outside the taxonomy are rejected.
	Status string `json:"status"`
}

// ValidBranch is the immutable result of a successful draft validation
type ValidBranch struct {
	NameAr       string
	NameEn       string
	AddressAr    string
	AddressEn    string
	Phone        string
	Governorate  string
	Image        *string
	WorkingHours *string
	Latitude     *float64
	Longitude    *float64
	Status       string
}

// Validate checks the mandatory fields and parses the optional numeric ones.
// Missing or malformed mandatory input fails the whole draft; a malformed
// optional coordinate only nulls the coordinate pair.
func (d BranchDraft) Validate() (*ValidBranch, error) {
	fields := make(map[string]string)

	if strings.TrimSpace(d.NameAr) == "" {
		fields["nameAr"] = "Arabic name is required"
	}
	if strings.TrimSpace(d.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if strings.TrimSpace(d.Governorate) == "" {
		fields["governorate"] = "governorate is required"
	} else if !models.IsValidGovernorate(d.Governorate) {
		fields["governorate"] = "unknown governorate"
	}

	status := d.Status
	if status == "" {
		status = models.BranchStatusActive
	} else if !models.IsValidStatus(status) {
		fields["status"] = "unknown status"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	lat := parseCoordinate(string(d.Latitude))
	lng := parseCoordinate(string(d.Longitude))
	// A lone coordinate is meaningless; drop the pair
	if lat == nil || lng == nil {
		lat, lng = nil, nil
	}

	v := &ValidBranch{
		NameAr:      strings.TrimSpace(d.NameAr),
		NameEn:      strings.TrimSpace(d.NameEn),
		AddressAr:   strings.TrimSpace(d.AddressAr),
		AddressEn:   strings.TrimSpace(d.AddressEn),
		Phone:       strings.TrimSpace(d.Phone),
		Governorate: d.Governorate,
		Latitude:    lat,
		Longitude:   lng,
		Status:      status,
	}
	if img := strings.TrimSpace(d.Image); img != "" {
		v.Image = &img
	}
	if wh := strings.TrimSpace(d.WorkingHours); wh != "" {
		v.WorkingHours = &wh
	}
	return v, nil
}

// BranchPatch carries partial update input: only non-nil fields are applied.
// Coordinates arrive as text and follow the same parse-or-null rule as the
// draft; an empty string clears the pair.
type BranchPatch struct {
	NameAr       *string    `json:"nameAr"`
	NameEn       *string    `json:"nameEn"`
	AddressAr    *string    `json:"addressAr"`
	AddressEn    *string    `json:"addressEn"`
	Phone        *string    `json:"phone"`
	Governorate  *string    `json:"governorate"`
	Image        *string    `json:"image"`
	WorkingHours *string    `json:"workingHours"`
	Latitude     *CoordText `json:"latitude"`
	Longitude    *CoordText `json:"longitude"`
	Status       *string    `json:"status"`
}

// IsEmpty reports whether the patch carries no changes at all
func (p BranchPatch) IsEmpty() bool {
	return p.NameAr == nil && p.NameEn == nil && p.AddressAr == nil &&
		p.AddressEn == nil && p.Phone == nil && p.Governorate == nil &&
		p.Image == nil && p.WorkingHours == nil &&
		p.Latitude == nil && p.Longitude == nil && p.Status == nil
}

// validate checks the fields that are present. Mandatory fields may not be
// blanked out by a patch.
func (p BranchPatch) validate() error {
	fields := make(map[string]string)

	if p.NameAr != nil && strings.TrimSpace(*p.NameAr) == "" {
		fields["nameAr"] = "Arabic name is required"
	}
	if p.Phone != nil && strings.TrimSpace(*p.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if p.Governorate != nil && !models.IsValidGovernorate(*p.Governorate) {
		fields["governorate"] = "unknown governorate"
	}
	if p.Status != nil && !models.IsTransitionableStatus(*p.Status) {
		fields["status"] = "status must be one of ACTIVE, HIDDEN, BANNED"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
