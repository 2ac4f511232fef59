package services

import (
	"fmt"
	"time"

	"hostelhub-server/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// BuildPaymentsWorkbook renders every payment for a hostel (all hostels when
// hostelID is 0) into an XLSX workbook for the admin export job.
func BuildPaymentsWorkbook(db *gorm.DB, hostelID uint) (*excelize.File, error) {
	query := db.Preload("User").Order("created_at DESC")
	if hostelID != 0 {
		query = query.Where("hostel_id = ?", hostelID)
	}
	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if _, err := f.NewSheet("Sheet1"); err != nil {
		return nil, err
	}

	// Add headers
	f.SetCellValue("Sheet1", "A1", "ReceiptNumber")
	f.SetCellValue("Sheet1", "B1", "Payer")
	f.SetCellValue("Sheet1", "C1", "Type")
	f.SetCellValue("Sheet1", "D1", "Method")
	f.SetCellValue("Sheet1", "E1", "Amount")
	f.SetCellValue("Sheet1", "F1", "Status")
	f.SetCellValue("Sheet1", "G1", "Period")
	f.SetCellValue("Sheet1", "H1", "RecordedAt")

	// Add data
	for i, p := range payments {
		row := fmt.Sprint(i + 2)
		payer := ""
		if p.User != nil {
			payer = p.User.FirstName + " " + p.User.LastName
		}
		period := ""
		if p.Month != "" {
			period = fmt.Sprintf("%s %d", p.Month, p.Year)
		}
		f.SetCellValue("Sheet1", "A"+row, p.ReceiptNumber)
		f.SetCellValue("Sheet1", "B"+row, payer)
		f.SetCellValue("Sheet1", "C"+row, p.Type)
		f.SetCellValue("Sheet1", "D"+row, p.Method)
		f.SetCellValue("Sheet1", "E"+row, p.Amount.StringFixed(2))
		f.SetCellValue("Sheet1", "F"+row, p.Status)
		f.SetCellValue("Sheet1", "G"+row, period)
		f.SetCellValue("Sheet1", "H"+row, p.CreatedAt.Format(time.RFC3339))
	}

	return f, nil
}

// BuildExpensesWorkbook renders a hostel's expense records into XLSX.
func BuildExpensesWorkbook(db *gorm.DB, hostelID uint) (*excelize.File, error) {
	query := db.Order("incurred_at DESC")
	if hostelID != 0 {
		query = query.Where("hostel_id = ?", hostelID)
	}
	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if _, err := f.NewSheet("Sheet1"); err != nil {
		return nil, err
	}

	f.SetCellValue("Sheet1", "A1", "Category")
	f.SetCellValue("Sheet1", "B1", "Amount")
	f.SetCellValue("Sheet1", "C1", "Description")
	f.SetCellValue("Sheet1", "D1", "IncurredAt")

	for i, e := range expenses {
		row := fmt.Sprint(i + 2)
		f.SetCellValue("Sheet1", "A"+row, e.Category)
		f.SetCellValue("Sheet1", "B"+row, e.Amount.StringFixed(2))
		f.SetCellValue("Sheet1", "C"+row, e.Description)
		f.SetCellValue("Sheet1", "D"+row, e.IncurredAt.Format(time.RFC3339))
	}

	return f, nil
}
