package export

import (
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Fixed layout in millimeters for an A4 portrait page.
const (
	pdfLeftMargin  = 10.0
	pdfTopMargin   = 20.0
	pdfLineHeight  = 7.0
	pdfBottomLimit = 280.0
)

// PatientsPDF renders the filtered patient rows as a paginated document
// with fixed, truncated text columns.
func PatientsPDF(records []PatientRecord) *gofpdf.Fpdf {
	pdf := newDoc("Patient Records")

	cols := []float64{12, 50, 12, 20, 30, 24, 42}
	writePDFRow(pdf, cols, []string{"ID", "Name", "Age", "Gender", "Condition", "Status", "Disease"}, true)

	for _, r := range records {
		pageBreak(pdf)
		writePDFRow(pdf, cols, []string{
			strconv.FormatInt(r.ID, 10),
			truncate(r.FullName, 28),
			strconv.Itoa(r.Age),
			r.Gender,
			truncate(r.Condition, 16),
			DisplayStatus(r.CurrentStatus, r.IsExpired),
			truncate(r.Disease, 24),
		}, false)
	}
	return pdf
}

// VisitsPDF renders the filtered visit rows as a paginated document.
func VisitsPDF(records []VisitRecord) *gofpdf.Fpdf {
	pdf := newDoc("Home Visit Records")

	cols := []float64{24, 50, 48, 24, 24, 20}
	writePDFRow(pdf, cols, []string{"Date", "Patient", "Service", "Condition", "Status", "Time"}, true)

	for _, r := range records {
		pageBreak(pdf)
		writePDFRow(pdf, cols, []string{
			r.EffectiveDate(),
			truncate(r.PatientName, 28),
			truncate(r.ServicePerformed, 26),
			DisplayAssessment(r.ConditionAssessment),
			CompletionLabel(r.IsCompleted),
			truncate(r.TimeSpent, 10),
		}, false)
	}
	return pdf
}

func newDoc(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfLeftMargin, pdfTopMargin, pdfLeftMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	return pdf
}

func writePDFRow(pdf *gofpdf.Fpdf, widths []float64, cells []string, header bool) {
	if header {
		pdf.SetFont("Arial", "B", 9)
	} else {
		pdf.SetFont("Arial", "", 9)
	}
	for i, cell := range cells {
		pdf.CellFormat(widths[i], pdfLineHeight, cell, "", 0, "L", false, 0, "")
	}
	pdf.Ln(pdfLineHeight)
}

func pageBreak(pdf *gofpdf.Fpdf) {
	if pdf.GetY()+pdfLineHeight > pdfBottomLimit {
		pdf.AddPage()
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}

