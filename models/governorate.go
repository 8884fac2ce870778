package models

// Governorate codes: the closed set of Syrian administrative regions a branch
// can belong to. The order of GovernorateCodes is the canonical display order
// used by the public directory filter.
const (
	GovernorateDamascus    = "damascus"
	GovernorateRifDamascus = "rif_damascus"
	GovernorateAleppo      = "aleppo"
	GovernorateHoms        = "homs"
	GovernorateHama        = "hama"
	GovernorateLatakia     = "latakia"
	GovernorateTartous     = "tartous"
	GovernorateDeirEzZor   = "deir_ez_zor"
	GovernorateIdlib       = "idlib"
	GovernorateDaraa       = "daraa"
	GovernorateRaqqa       = "raqqa"
	GovernorateHasakah     = "hasakah"
	GovernorateSuwayda     = "suwayda"
	GovernorateQuneitra    = "quneitra"
)

// GovernorateCodes lists every valid code in display order
var GovernorateCodes = []string{
	GovernorateDamascus,
	GovernorateRifDamascus,
	GovernorateAleppo,
	GovernorateHoms,
	GovernorateHama,
	GovernorateLatakia,
	GovernorateTartous,
	GovernorateDeirEzZor,
	GovernorateIdlib,
	GovernorateDaraa,
	GovernorateRaqqa,
	GovernorateHasakah,
	GovernorateSuwayda,
	GovernorateQuneitra,
}

type governorateLabels struct {
	Ar string
	En string
}

var governorateNames = map[string]governorateLabels{
	GovernorateDamascus:    {Ar: "دمشق", En: "Damascus"},
	GovernorateRifDamascus: {Ar: "ريف دمشق", En: "Rif Damascus"},
	GovernorateAleppo:      {Ar: "حلب", En: "Aleppo"},
	GovernorateHoms:        {Ar: "حمص", En: "Homs"},
	GovernorateHama:        {Ar: "حماة", En: "Hama"},
	GovernorateLatakia:     {Ar: "اللاذقية", En: "Latakia"},
	GovernorateTartous:     {Ar: "طرطوس", En: "Tartous"},
	GovernorateDeirEzZor:   {Ar: "دير الزور", En: "Deir ez-Zor"},
	GovernorateIdlib:       {Ar: "إدلب", En: "Idlib"},
	GovernorateDaraa:       {Ar: "درعا", En: "Daraa"},
	GovernorateRaqqa:       {Ar: "الرقة", En: "Raqqa"},
	GovernorateHasakah:     {Ar: "الحسكة والقامشلي", En: "Hasakah & Qamishli"},
	GovernorateSuwayda:     {Ar: "السويداء", En: "Suwayda"},
	GovernorateQuneitra:    {Ar: "القنيطرة", En: "Quneitra"},
}

// IsValidGovernorate checks if the code is a member of the closed region set
func IsValidGovernorate(code string) bool {
	_, ok := governorateNames[code]
	return ok
}

// GovernorateName returns the localized display label for a governorate code.
// Unknown codes are returned as-is so stale data still renders.
func GovernorateName(code, locale string) string {
	labels, ok := governorateNames[code]
	if !ok {
		return code
	}
	if locale == "ar" {
		return labels.Ar
	}
	return labels.En
}

// GovernorateImage returns the deterministic fallback photo for branches in a
// governorate that have no uploaded image
func GovernorateImage(code string) string {
	if !IsValidGovernorate(code) {
		code = GovernorateDamascus
	}
	return "/images/branches/" + code + ".jpg"
}
