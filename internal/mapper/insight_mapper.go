package mapper

import (
	"insight-center-be/internal/entity"
	"insight-center-be/internal/model"
)

type InsightMapper struct{}

func NewInsightMapper() *InsightMapper {
	return &InsightMapper{}
}

func (m *InsightMapper) ToEntity(i *model.Insight) *entity.Insight {
	if i == nil {
		return nil
	}
	return &entity.Insight{
		Id:        i.Id,
		Title:     i.Title,
		Body:      i.Body,
		Category:  i.Category,
		SortOrder: i.SortOrder,
		CreatedAt: i.CreatedAt,
	}
}

func (m *InsightMapper) ToModel(i *entity.Insight) *model.Insight {
	if i == nil {
		return nil
	}
	return &model.Insight{
		Id:        i.Id,
		Title:     i.Title,
		Body:      i.Body,
		Category:  i.Category,
		SortOrder: i.SortOrder,
		CreatedAt: i.CreatedAt,
	}
}

func (m *InsightMapper) ToEntities(rows []*model.Insight) []*entity.Insight {
	entities := make([]*entity.Insight, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
