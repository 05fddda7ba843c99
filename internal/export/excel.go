package export

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

var patientHeaders = []string{"ID", "Name", "Age", "Gender", "Condition", "Status", "Disease", "Allocated Items"}

var visitHeaders = []string{"Date", "Patient", "Service Performed", "Condition", "Status", "Time Spent"}

const sheetName = "Sheet1"

// PatientsExcel renders the filtered patient rows as a spreadsheet.
func PatientsExcel(records []PatientRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := writeRow(f, 1, headerCells(patientHeaders)); err != nil {
		return nil, err
	}
	for i, r := range records {
		cells := []interface{}{
			r.ID,
			r.FullName,
			r.Age,
			r.Gender,
			r.Condition,
			DisplayStatus(r.CurrentStatus, r.IsExpired),
			r.Disease,
			strings.Join(r.Materials, ", "),
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// VisitsExcel renders the filtered visit rows as a spreadsheet.
func VisitsExcel(records []VisitRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := writeRow(f, 1, headerCells(visitHeaders)); err != nil {
		return nil, err
	}
	for i, r := range records {
		cells := []interface{}{
			r.EffectiveDate(),
			r.PatientName,
			r.ServicePerformed,
			DisplayAssessment(r.ConditionAssessment),
			CompletionLabel(r.IsCompleted),
			r.TimeSpent,
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func headerCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func writeRow(f *excelize.File, row int, cells []interface{}) error {
	for col, v := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}
