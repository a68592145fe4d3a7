package mapper

import (
	"insight-center-be/internal/entity"
	"insight-center-be/internal/model"
)

type PolicyMapper struct{}

func NewPolicyMapper() *PolicyMapper {
	return &PolicyMapper{}
}

func (m *PolicyMapper) ToEntity(p *model.PolicyRecommendation) *entity.PolicyRecommendation {
	if p == nil {
		return nil
	}
	return &entity.PolicyRecommendation{
		Id:            p.Id,
		Pincode:       p.Pincode,
		State:         p.State,
		District:      p.District,
		PriorityScore: p.PriorityScore,
		Category:      p.Category,
		Action:        p.Action,
		Rationale:     p.Rationale,
		Details:       detailsFromJSON(p.Details),
		CreatedAt:     p.CreatedAt,
	}
}

func (m *PolicyMapper) ToModel(p *entity.PolicyRecommendation) *model.PolicyRecommendation {
	if p == nil {
		return nil
	}
	return &model.PolicyRecommendation{
		Id:            p.Id,
		Pincode:       p.Pincode,
		State:         p.State,
		District:      p.District,
		PriorityScore: p.PriorityScore,
		Category:      p.Category,
		Action:        p.Action,
		Rationale:     p.Rationale,
		Details:       detailsToJSON(p.Details),
		CreatedAt:     p.CreatedAt,
	}
}

func (m *PolicyMapper) ToEntities(rows []*model.PolicyRecommendation) []*entity.PolicyRecommendation {
	entities := make([]*entity.PolicyRecommendation, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *PolicyMapper) ToModels(items []*entity.PolicyRecommendation) []*model.PolicyRecommendation {
	models := make([]*model.PolicyRecommendation, len(items))
	for i, p := range items {
		models[i] = m.ToModel(p)
	}
	return models
}
