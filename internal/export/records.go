package export

import "context"

// PatientRecord is one patient row flattened for export. Materials holds
// every material ever allocated to the patient, newest first.
type PatientRecord struct {
	ID            int64
	FullName      string
	Age           int
	Gender        string
	Condition     string
	CurrentStatus string
	Disease       string
	IsExpired     bool
	Materials     []string
}

// VisitRecord is one visit row flattened for export.
type VisitRecord struct {
	PatientName         string
	ScheduledDate       string
	VisitDate           string
	ServicePerformed    string
	ConditionAssessment string
	IsCompleted         bool
	TimeSpent           string
}

// EffectiveDate is the date a visit is reported under: the scheduled date
// when set, otherwise the actual visit date, otherwise empty.
func (v VisitRecord) EffectiveDate() string {
	if v.ScheduledDate != "" {
		return v.ScheduledDate
	}
	return v.VisitDate
}

// Source supplies the full record sets the export endpoints filter in
// memory.
type Source interface {
	Patients(ctx context.Context) ([]PatientRecord, error)
	Visits(ctx context.Context) ([]VisitRecord, error)
}
