package export

import (
	"sort"
	"strconv"
	"strings"
)

// PatientFilter carries the raw query parameters of a patient export.
// Each non-empty field narrows the result; fields never widen it.
type PatientFilter struct {
	Search   string
	Status   string
	AgeMin   string
	AgeMax   string
	Disease  string
	Material string
}

// FilterPatients applies the narrowing pipeline and the export ordering:
// non-expired patients by descending id, then expired patients by
// descending id.
func FilterPatients(records []PatientRecord, f PatientFilter) []PatientRecord {
	out := make([]PatientRecord, 0, len(records))
	for _, r := range records {
		if matchPatient(r, f) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsExpired != out[j].IsExpired {
			return !out[i].IsExpired
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func matchPatient(r PatientRecord, f PatientFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		name := strings.ToLower(r.FullName)
		id := strconv.FormatInt(r.ID, 10)
		if !strings.Contains(name, q) && !strings.Contains(id, q) {
			return false
		}
	}

	if f.Status != "" && !matchStatus(r, f.Status) {
		return false
	}

	// An unparseable bound leaves the age clause unapplied.
	min, max, ok := ageRange(f.AgeMin, f.AgeMax)
	if ok && (r.Age < min || r.Age > max) {
		return false
	}

	if f.Disease != "" && r.Disease != f.Disease {
		return false
	}

	if f.Material != "" {
		found := false
		for _, m := range r.Materials {
			if m == f.Material {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchStatus interprets the status filter. "Alive" and "Dead" filter on
// the expiry flag alone; every other value applies to living patients only.
func matchStatus(r PatientRecord, status string) bool {
	switch status {
	case "Alive":
		return !r.IsExpired
	case "Dead":
		return r.IsExpired
	case "Stable":
		return !r.IsExpired && (r.CurrentStatus == "Active" || r.CurrentStatus == "Stable")
	case "Bedridden", "Not Bedridden":
		return !r.IsExpired && r.Condition == status
	default:
		return !r.IsExpired && r.CurrentStatus == status
	}
}

func ageRange(minRaw, maxRaw string) (min, max int, ok bool) {
	min, max = 0, 150
	if minRaw != "" {
		n, err := strconv.Atoi(minRaw)
		if err != nil {
			return 0, 0, false
		}
		min = n
	}
	if maxRaw != "" {
		n, err := strconv.Atoi(maxRaw)
		if err != nil {
			return 0, 0, false
		}
		max = n
	}
	return min, max, true
}

// VisitFilter carries the raw query parameters of a visit export. An exact
// date wins over a month prefix when both are given.
type VisitFilter struct {
	Date  string
	Month string
}

// FilterVisits drops visits with no effective date, applies the date
// filter, and orders by effective date descending.
func FilterVisits(records []VisitRecord, f VisitFilter) []VisitRecord {
	out := make([]VisitRecord, 0, len(records))
	for _, r := range records {
		d := r.EffectiveDate()
		if d == "" {
			continue
		}
		switch {
		case f.Date != "":
			if d != f.Date {
				continue
			}
		case f.Month != "":
			if !strings.HasPrefix(d, f.Month) {
				continue
			}
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectiveDate() > out[j].EffectiveDate()
	})
	return out
}
