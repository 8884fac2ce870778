package services

import (
	"bytes"
	"fmt"

	"dar_almal_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// exportHeaders mirrors the spreadsheet the site has always produced:
// bilingual column titles, Arabic first
var exportHeaders = []string{
	"ID",
	"الاسم (عربي)",
	"Name (English)",
	"العنوان (عربي)",
	"Address (English)",
	"الهاتف",
	"المحافظة",
	"الحالة",
	"ساعات العمل",
	"خط العرض",
	"خط الطول",
}

// GenerateBranchExport builds an xlsx workbook of every non-deleted branch,
// ordered by governorate
func GenerateBranchExport(db *gorm.DB, authz AuthContext) (*bytes.Buffer, error) {
	if !authz.CanManageBranches() {
		return nil, ErrUnauthorized
	}

	var branches []models.Branch
	err := db.Where("status != ?", models.BranchStatusDeleted).
		Order("governorate ASC").
		Find(&branches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branches for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Branches"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, b := range branches {
		values := []interface{}{
			b.ID,
			b.NameAr,
			b.NameEn,
			b.AddressAr,
			b.AddressEn,
			b.Phone,
			b.Governorate,
			b.Status,
			dashIfNilString(b.WorkingHours),
			dashIfNilFloat(b.Latitude),
			dashIfNilFloat(b.Longitude),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write export workbook: %w", err)
	}
	return buf, nil
}

func dashIfNilString(s *string) interface{} {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func dashIfNilFloat(f *float64) interface{} {
	if f == nil {
		return "-"
	}
	return *f
}
