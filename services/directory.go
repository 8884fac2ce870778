package services

import (
	"strings"

	"dar_almal_go/models"
)

// FilterAll is the identity filter value for the public directory
const FilterAll = "all"

// Directory is the public branch directory view model. The whole active set
// is fetched once; narrowing by governorate happens in memory with no further
// round-trip. A directory that has not been loaded yet is "loading", which is
// distinct from a loaded directory whose filter matches nothing.
type Directory struct {
	branches []PublicBranch
	loaded   bool
}

// GovernorateFacet is one entry of the directory's filter dropdown
type GovernorateFacet struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// NewDirectory returns an empty directory in the loading state
func NewDirectory() *Directory {
	return &Directory{}
}

// LoadDirectory fetches the active projection and returns a loaded directory
func LoadDirectory(branches []PublicBranch) *Directory {
	return &Directory{branches: branches, loaded: true}
}

// Loading reports whether the active set has been fetched yet
func (d *Directory) Loading() bool {
	return !d.loaded
}

// Total is the size of the unfiltered active set
func (d *Directory) Total() int {
	return len(d.branches)
}

// Filter narrows the set by governorate equality. FilterAll (or empty) is the
// identity filter. The returned slice may be empty, which a loaded directory
// reports as "no branches" rather than "still loading".
func (d *Directory) Filter(governorate string) []PublicBranch {
	if governorate == "" || governorate == FilterAll {
		return d.branches
	}
	filtered := make([]PublicBranch, 0, len(d.branches))
	for _, b := range d.branches {
		if b.Governorate == governorate {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// Facets lists the governorates present in the active set, in canonical
// display order, with per-governorate branch counts
func (d *Directory) Facets(locale string) []GovernorateFacet {
	counts := make(map[string]int)
	for _, b := range d.branches {
		counts[b.Governorate]++
	}

	facets := make([]GovernorateFacet, 0, len(counts))
	for _, code := range models.GovernorateCodes {
		if counts[code] == 0 {
			continue
		}
		facets = append(facets, GovernorateFacet{
			Code:  code,
			Label: models.GovernorateName(code, locale),
			Count: counts[code],
		})
	}
	return facets
}

// FormatWhatsApp normalizes a locally formatted phone number into the
// international form WhatsApp links expect (09xxxxxxxx -> 9639xxxxxxxx)
func FormatWhatsApp(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case strings.HasPrefix(d, "963"):
		return d
	case strings.HasPrefix(d, "0"):
		return "963" + d[1:]
	default:
		return "963" + d
	}
}
