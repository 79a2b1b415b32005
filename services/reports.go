package services

import (
	"bytes"
	"fmt"
	"time"

	"justice_bot_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GenerateCasesReport exports all cases to an Excel workbook for admin use
func GenerateCasesReport(db *gorm.DB) (*bytes.Buffer, error) {
	var cases []models.Case
	if err := db.Preload("User").Order("created_at DESC").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cases"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Case ID", "User Email", "Province", "Municipality", "Status", "Merit Score", "Opened At", "Analyzed At"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "B", 38)
	f.SetColWidth(sheet, "C", "H", 16)

	for i, kase := range cases {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), kase.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kase.User.Email)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), kase.Province)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), kase.Municipality)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), kase.Status)
		if kase.MeritScore != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *kase.MeritScore)
		}
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), kase.OpenedAt.Format(time.RFC3339))
		if kase.AnalyzedAt != nil {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), kase.AnalyzedAt.Format(time.RFC3339))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return buf, nil
}

// GeneratePaymentsReport exports all payments to an Excel workbook for admin use
func GeneratePaymentsReport(db *gorm.DB) (*bytes.Buffer, error) {
	var payments []models.Payment
	if err := db.Preload("User").Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Payment ID", "User Email", "Product", "Amount (CAD)", "Status", "Provider Order ID", "Created At", "Completed At"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "B", 38)
	f.SetColWidth(sheet, "C", "H", 18)

	for i, payment := range payments {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), payment.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), payment.User.Email)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), payment.Product)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), float64(payment.AmountCents)/100.0)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), payment.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), payment.ProviderOrderID)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), payment.CreatedAt.Format(time.RFC3339))
		if payment.CompletedAt != nil {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), payment.CompletedAt.Format(time.RFC3339))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return buf, nil
}
