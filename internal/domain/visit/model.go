package visit

// Visit is one scheduled or completed home visit. Symptom and note fields
// are kept in both Malayalam and English so field notes survive translation.
// Date fields are ISO-8601 strings (YYYY-MM-DD).
type Visit struct {
	ID                  int64   `db:"id" json:"id"`
	PatientID           int64   `db:"patient_id" json:"patient_id"`
	PatientName         string  `db:"-" json:"patient_name,omitempty"`
	ScheduledDate       *string `db:"scheduled_date" json:"scheduled_date"`
	VisitDate           *string `db:"visit_date" json:"visit_date"`
	TimeSpent           *string `db:"time_spent" json:"time_spent"`
	IsCompleted         bool    `db:"is_completed" json:"is_completed"`
	ServicePerformed    *string `db:"service_performed" json:"service_performed"`
	ConditionAssessment *string `db:"condition_assessment" json:"condition_assessment"`
	SymptomsMalayalam   *string `db:"symptoms_malayalam" json:"symptoms_malayalam"`
	SymptomsEnglish     *string `db:"symptoms_english" json:"symptoms_english"`
	NotesMalayalam      *string `db:"notes_malayalam" json:"notes_malayalam"`
	NotesEnglish        *string `db:"notes_english" json:"notes_english"`
}

// Update is the allow-listed partial update for a visit.
type Update struct {
	ScheduledDate       *string `json:"scheduled_date"`
	VisitDate           *string `json:"visit_date"`
	TimeSpent           *string `json:"time_spent"`
	IsCompleted         *bool   `json:"is_completed"`
	ServicePerformed    *string `json:"service_performed"`
	ConditionAssessment *string `json:"condition_assessment"`
	SymptomsMalayalam   *string `json:"symptoms_malayalam"`
	SymptomsEnglish     *string `json:"symptoms_english"`
	NotesMalayalam      *string `json:"notes_malayalam"`
	NotesEnglish        *string `json:"notes_english"`
}

// Apply copies the set fields onto v.
func (u *Update) Apply(v *Visit) {
	if u.ScheduledDate != nil {
		v.ScheduledDate = u.ScheduledDate
	}
	if u.VisitDate != nil {
		v.VisitDate = u.VisitDate
	}
	if u.TimeSpent != nil {
		v.TimeSpent = u.TimeSpent
	}
	if u.IsCompleted != nil {
		v.IsCompleted = *u.IsCompleted
	}
	if u.ServicePerformed != nil {
		v.ServicePerformed = u.ServicePerformed
	}
	if u.ConditionAssessment != nil {
		v.ConditionAssessment = u.ConditionAssessment
	}
	if u.SymptomsMalayalam != nil {
		v.SymptomsMalayalam = u.SymptomsMalayalam
	}
	if u.SymptomsEnglish != nil {
		v.SymptomsEnglish = u.SymptomsEnglish
	}
	if u.NotesMalayalam != nil {
		v.NotesMalayalam = u.NotesMalayalam
	}
	if u.NotesEnglish != nil {
		v.NotesEnglish = u.NotesEnglish
	}
}
