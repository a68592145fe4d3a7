package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"insight-center-be/internal/entity"
)

// Risk thresholds on update intensity, used when a row has no risk_category.
const (
	CriticalIntensity = 0.4
	WatchIntensity    = 0.2
)

var ErrMissingColumn = errors.New("missing required column")

var pincodeColumns = map[string]bool{
	"pincode": true, "state": true, "district": true,
	"total_enrolments": true, "child_enrolments": true, "adult_enrolments": true,
	"demographic_updates": true, "biometric_updates": true,
	"update_intensity": true, "risk_category": true,
}

var policyColumns = map[string]bool{
	"pincode": true, "state": true, "district": true,
	"priority_score": true, "category": true, "action": true, "rationale": true,
}

// ClassifyRisk buckets a pincode by its update intensity.
func ClassifyRisk(intensity float64) entity.RiskCategory {
	switch {
	case intensity >= CriticalIntensity:
		return entity.RiskCritical
	case intensity >= WatchIntensity:
		return entity.RiskWatch
	default:
		return entity.RiskStable
	}
}

// row wraps one CSV record with header lookups.
type row struct {
	header map[string]int
	values []string
	line   int
}

func (r row) str(col string) string {
	if i, ok := r.header[col]; ok && i < len(r.values) {
		return strings.TrimSpace(r.values[i])
	}
	return ""
}

func (r row) int64(col string) (int64, error) {
	s := r.str(col)
	if s == "" {
		return 0, nil
	}
	// Aggregates exported from spreadsheets often carry a trailing ".0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %w", r.line, col, err)
	}
	return int64(f), nil
}

func (r row) float(col string) (float64, error) {
	s := r.str(col)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %w", r.line, col, err)
	}
	return f, nil
}

// extras collects the columns not in known as free-form details.
func (r row) extras(known map[string]bool) map[string]interface{} {
	var details map[string]interface{}
	for col, i := range r.header {
		if known[col] || i >= len(r.values) || r.values[i] == "" {
			continue
		}
		if details == nil {
			details = map[string]interface{}{}
		}
		details[col] = strings.TrimSpace(r.values[i])
	}
	return details
}

func readRows(r io.Reader, required ...string) ([]row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var rows []row
	for line := 2; ; line++ {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row{header: header, values: values, line: line})
	}
	return rows, nil
}

// ParsePincodeCSV reads pincode metrics. Pincodes are left-padded to six
// digits since spreadsheet exports drop leading zeros.
func ParsePincodeCSV(r io.Reader) ([]*entity.PincodeRecord, error) {
	rows, err := readRows(r, "pincode", "state", "district")
	if err != nil {
		return nil, err
	}

	records := make([]*entity.PincodeRecord, 0, len(rows))
	for _, rw := range rows {
		pincode, err := normalizePincode(rw.str("pincode"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rw.line, err)
		}

		rec := &entity.PincodeRecord{
			Pincode:      pincode,
			State:        rw.str("state"),
			District:     rw.str("district"),
			RiskCategory: entity.RiskCategory(strings.ToLower(rw.str("risk_category"))),
			Details:      rw.extras(pincodeColumns),
		}
		for col, dst := range map[string]*int64{
			"total_enrolments":    &rec.TotalEnrolments,
			"child_enrolments":    &rec.ChildEnrolments,
			"adult_enrolments":    &rec.AdultEnrolments,
			"demographic_updates": &rec.DemographicUpdates,
			"biometric_updates":   &rec.BiometricUpdates,
		} {
			if *dst, err = rw.int64(col); err != nil {
				return nil, err
			}
		}
		if rec.UpdateIntensity, err = rw.float("update_intensity"); err != nil {
			return nil, err
		}
		if rec.UpdateIntensity == 0 && rec.TotalEnrolments > 0 {
			rec.UpdateIntensity = float64(rec.DemographicUpdates+rec.BiometricUpdates) / float64(rec.TotalEnrolments)
		}
		switch rec.RiskCategory {
		case entity.RiskCritical, entity.RiskWatch, entity.RiskStable:
		default:
			rec.RiskCategory = ClassifyRisk(rec.UpdateIntensity)
		}

		records = append(records, rec)
	}
	return records, nil
}

// ParsePolicyCSV reads ranked policy recommendations.
func ParsePolicyCSV(r io.Reader) ([]*entity.PolicyRecommendation, error) {
	rows, err := readRows(r, "pincode", "action")
	if err != nil {
		return nil, err
	}

	items := make([]*entity.PolicyRecommendation, 0, len(rows))
	for _, rw := range rows {
		pincode, err := normalizePincode(rw.str("pincode"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rw.line, err)
		}
		score, err := rw.float("priority_score")
		if err != nil {
			return nil, err
		}

		items = append(items, &entity.PolicyRecommendation{
			Pincode:       pincode,
			State:         rw.str("state"),
			District:      rw.str("district"),
			PriorityScore: score,
			Category:      rw.str("category"),
			Action:        rw.str("action"),
			Rationale:     rw.str("rationale"),
			Details:       rw.extras(policyColumns),
		})
	}
	return items, nil
}

func normalizePincode(raw string) (string, error) {
	raw = strings.TrimSuffix(raw, ".0")
	if raw == "" || len(raw) > 6 {
		return "", fmt.Errorf("invalid pincode %q", raw)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid pincode %q", raw)
		}
	}
	return strings.Repeat("0", 6-len(raw)) + raw, nil
}
