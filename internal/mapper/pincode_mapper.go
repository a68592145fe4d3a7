package mapper

import (
	"insight-center-be/internal/entity"
	"insight-center-be/internal/model"
	"insight-center-be/pkg/store"
)

type PincodeMapper struct{}

func NewPincodeMapper() *PincodeMapper {
	return &PincodeMapper{}
}

func (m *PincodeMapper) ToEntity(p *model.PincodeMetric) *entity.PincodeRecord {
	if p == nil {
		return nil
	}
	return &entity.PincodeRecord{
		Pincode:            p.Pincode,
		State:              p.State,
		District:           p.District,
		TotalEnrolments:    p.TotalEnrolments,
		ChildEnrolments:    p.ChildEnrolments,
		AdultEnrolments:    p.AdultEnrolments,
		DemographicUpdates: p.DemographicUpdates,
		BiometricUpdates:   p.BiometricUpdates,
		UpdateIntensity:    p.UpdateIntensity,
		RiskCategory:       entity.RiskCategory(p.RiskCategory),
		Details:            detailsFromJSON(p.Details),
		RefreshedAt:        p.RefreshedAt,
	}
}

func (m *PincodeMapper) ToModel(p *entity.PincodeRecord) *model.PincodeMetric {
	if p == nil {
		return nil
	}
	return &model.PincodeMetric{
		Pincode:            p.Pincode,
		State:              p.State,
		District:           p.District,
		TotalEnrolments:    p.TotalEnrolments,
		ChildEnrolments:    p.ChildEnrolments,
		AdultEnrolments:    p.AdultEnrolments,
		DemographicUpdates: p.DemographicUpdates,
		BiometricUpdates:   p.BiometricUpdates,
		UpdateIntensity:    p.UpdateIntensity,
		RiskCategory:       string(p.RiskCategory),
		Details:            detailsToJSON(p.Details),
		RefreshedAt:        p.RefreshedAt,
	}
}

func (m *PincodeMapper) ToEntities(rows []*model.PincodeMetric) []*entity.PincodeRecord {
	entities := make([]*entity.PincodeRecord, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *PincodeMapper) ToModels(records []*entity.PincodeRecord) []*model.PincodeMetric {
	models := make([]*model.PincodeMetric, len(records))
	for i, r := range records {
		models[i] = m.ToModel(r)
	}
	return models
}

// ToRecord flattens a pincode profile into the opaque record kept in session state.
func (m *PincodeMapper) ToRecord(p *entity.PincodeRecord) store.Record {
	if p == nil {
		return nil
	}
	r := store.Record{
		"pincode":             p.Pincode,
		"state":               p.State,
		"district":            p.District,
		"total_enrolments":    p.TotalEnrolments,
		"child_enrolments":    p.ChildEnrolments,
		"adult_enrolments":    p.AdultEnrolments,
		"demographic_updates": p.DemographicUpdates,
		"biometric_updates":   p.BiometricUpdates,
		"update_intensity":    p.UpdateIntensity,
		"risk_category":       string(p.RiskCategory),
	}
	if len(p.Details) > 0 {
		r["details"] = p.Details
	}
	return r
}
