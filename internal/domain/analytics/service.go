package analytics

import "context"

// PatientSnapshot is the slice of a patient record the aggregates need.
type PatientSnapshot struct {
	Age           int
	Disease       string
	IsExpired     bool
	CurrentStatus string
}

// PatientSource supplies the full patient population.
type PatientSource interface {
	Snapshot(ctx context.Context) ([]PatientSnapshot, error)
}

// StatusCounts buckets living patients by current status; expired patients
// are counted once, in Expired, regardless of their stored status.
type StatusCounts struct {
	Active   int `json:"active"`
	Moderate int `json:"moderate"`
	Severe   int `json:"severe"`
	Expired  int `json:"expired"`
}

type Summary struct {
	Total               int            `json:"total"`
	Status              StatusCounts   `json:"status"`
	DiseaseDistribution map[string]int `json:"disease_distribution"`
	AgeGroups           map[string]int `json:"age_groups"`
}

type Service struct {
	patients PatientSource
}

func NewService(patients PatientSource) *Service {
	return &Service{patients: patients}
}

// Summarize aggregates the whole patient population in one pass.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	patients, err := s.patients.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Total:               len(patients),
		DiseaseDistribution: map[string]int{},
		AgeGroups: map[string]int{
			"0-18":  0,
			"19-40": 0,
			"41-60": 0,
			"60+":   0,
		},
	}

	for _, p := range patients {
		if p.IsExpired {
			sum.Status.Expired++
		} else {
			switch p.CurrentStatus {
			case "Moderate":
				sum.Status.Moderate++
			case "Severe":
				sum.Status.Severe++
			case "Active", "Stable":
				sum.Status.Active++
			}
		}

		if p.Disease != "" {
			sum.DiseaseDistribution[p.Disease]++
		}
		sum.AgeGroups[ageBucket(p.Age)]++
	}
	return sum, nil
}

func ageBucket(age int) string {
	switch {
	case age <= 18:
		return "0-18"
	case age <= 40:
		return "19-40"
	case age <= 60:
		return "41-60"
	default:
		return "60+"
	}
}
