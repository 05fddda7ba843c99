package export

import (
	"testing"
)

func TestPatientsExcelHeaderRoundTrip(t *testing.T) {
	f, err := PatientsExcel([]PatientRecord{
		{ID: 1, FullName: "Mariam Thomas", Age: 72, Gender: "F", Condition: "Bedridden",
			CurrentStatus: "Active", Disease: "CA Lung", Materials: []string{"Wheelchair", "Water Bed"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	wantHeader := []string{"ID", "Name", "Age", "Gender", "Condition", "Status", "Disease", "Allocated Items"}
	if len(rows[0]) != len(wantHeader) {
		t.Fatalf("header = %v, want %v", rows[0], wantHeader)
	}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}

	// Stored "Active" renders as "Stable"; materials are comma-joined.
	if rows[1][5] != "Stable" {
		t.Errorf("status cell = %q, want Stable", rows[1][5])
	}
	if rows[1][7] != "Wheelchair, Water Bed" {
		t.Errorf("materials cell = %q", rows[1][7])
	}
}

func TestVisitsExcel(t *testing.T) {
	f, err := VisitsExcel([]VisitRecord{
		{PatientName: "A", ScheduledDate: "2024-03-15", ServicePerformed: "Dressing",
			ConditionAssessment: "Active", IsCompleted: true, TimeSpent: "45 min"},
	})
	if err != nil {
		t.Fatal(err)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][3] != "Stable" || rows[1][4] != "Completed" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestPatientsPDFRenders(t *testing.T) {
	records := make([]PatientRecord, 80)
	for i := range records {
		records[i] = PatientRecord{ID: int64(i + 1), FullName: "Patient With A Rather Long Name", Age: 60, Disease: "CA Lung"}
	}
	pdf := PatientsPDF(records)
	if pdf.Err() {
		t.Fatalf("pdf error: %v", pdf.Error())
	}
	// 80 rows at 7mm cannot fit one A4 page.
	if n := pdf.PageCount(); n < 2 {
		t.Errorf("page count = %d, want a page break", n)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a very long material name", 10); got != "a very lon..." {
		t.Errorf("truncate = %q", got)
	}
}
