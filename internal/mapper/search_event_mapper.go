package mapper

import (
	"insight-center-be/internal/entity"
	"insight-center-be/internal/model"
)

type SearchEventMapper struct{}

func NewSearchEventMapper() *SearchEventMapper {
	return &SearchEventMapper{}
}

func (m *SearchEventMapper) ToEntity(e *model.SearchEvent) *entity.SearchEvent {
	if e == nil {
		return nil
	}
	return &entity.SearchEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		Query:     e.Query,
		Pincode:   e.Pincode,
		Outcome:   e.Outcome,
		CreatedAt: e.CreatedAt,
	}
}

func (m *SearchEventMapper) ToModel(e *entity.SearchEvent) *model.SearchEvent {
	if e == nil {
		return nil
	}
	return &model.SearchEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		Query:     e.Query,
		Pincode:   e.Pincode,
		Outcome:   e.Outcome,
		CreatedAt: e.CreatedAt,
	}
}
