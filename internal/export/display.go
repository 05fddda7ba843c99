package export

// DisplayStatus renders a stored status for human consumption: "Active" is
// shown as "Stable", and an expired patient shows "Expired" regardless of
// stored status. Stored values are never rewritten.
func DisplayStatus(status string, expired bool) string {
	if expired {
		return "Expired"
	}
	if status == "Active" {
		return "Stable"
	}
	return status
}

// DisplayAssessment applies the same Active→Stable normalization to a
// visit's condition assessment.
func DisplayAssessment(assessment string) string {
	if assessment == "Active" {
		return "Stable"
	}
	return assessment
}

// CompletionLabel renders the visit state machine for reports.
func CompletionLabel(completed bool) string {
	if completed {
		return "Completed"
	}
	return "Scheduled"
}
