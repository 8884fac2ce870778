package services

import (
	"log"
	"os"

	"dar_almal_go/models"

	"gorm.io/gorm"
)

// SeedAdminFromEnv creates the administrator account from environment
// variables. Only runs if ADMIN_EMAIL and ADMIN_PASSWORD are set and no
// admin user exists yet.
func SeedAdminFromEnv(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")

	// Skip if env vars not set
	if email == "" || password == "" {
		return nil
	}

	if name == "" {
		name = "Admin"
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] Admin user already exists, skipping seed")
		return nil
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	log.Printf("[SEED] Admin user created: %s", email)
	return nil
}

// seedBranches is the initial directory content shipped with the site
var seedBranches = []models.Branch{
	{
		NameAr:      "فرع دمشق - الحريقة",
		NameEn:      "Damascus - Hariqa Branch",
		AddressAr:   "دمشق، الحريقة، شارع معاوية",
		AddressEn:   "Damascus, Hariqa, Muawiya Street",
		Phone:       "0991234567",
		Governorate: models.GovernorateDamascus,
		Status:      models.BranchStatusActive,
	},
	{
		NameAr:      "فرع ريف دمشق - جرمانا",
		NameEn:      "Rif Damascus - Jaramana Branch",
		AddressAr:   "ريف دمشق، جرمانا، الساحة الكبرى",
		AddressEn:   "Rif Damascus, Jaramana, Main Square",
		Phone:       "0992345678",
		Governorate: models.GovernorateRifDamascus,
		Status:      models.BranchStatusActive,
	},
	{
		NameAr:      "فرع حلب - العزيزية",
		NameEn:      "Aleppo - Azizieh Branch",
		AddressAr:   "حلب، العزيزية، شارع الملك فيصل",
		AddressEn:   "Aleppo, Azizieh, King Faisal Street",
		Phone:       "0993456789",
		Governorate: models.GovernorateAleppo,
		Status:      models.BranchStatusActive,
	},
	{
		NameAr:      "فرع حمص - شارع الدبلان",
		NameEn:      "Homs - Dablan Street Branch",
		AddressAr:   "حمص، شارع الدبلان",
		AddressEn:   "Homs, Dablan Street",
		Phone:       "0994567890",
		Governorate: models.GovernorateHoms,
		Status:      models.BranchStatusActive,
	},
	{
		NameAr:      "فرع اللاذقية - شارع 8 آذار",
		NameEn:      "Latakia - 8 Azar Street Branch",
		AddressAr:   "اللاذقية، شارع 8 آذار",
		AddressEn:   "Latakia, 8 Azar Street",
		Phone:       "0995678901",
		Governorate: models.GovernorateLatakia,
		Status:      models.BranchStatusHidden,
	},
}

// SeedBranches wipes the branches table and reinserts the initial directory.
// Statuses outside the taxonomy are coerced to ACTIVE; this seed path is the
// only way a DELETED record can enter the store.
func SeedBranches(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&models.Branch{}).Error; err != nil {
		return err
	}
	log.Println("[SEED] Cleared existing branches")

	for _, seed := range seedBranches {
		branch := seed
		if !models.IsValidStatus(branch.Status) {
			branch.Status = models.BranchStatusActive
		}
		if err := db.Create(&branch).Error; err != nil {
			return err
		}
	}

	log.Printf("[SEED] Seeded %d branches", len(seedBranches))
	return nil
}
