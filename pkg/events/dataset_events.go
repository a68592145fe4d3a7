package events

import "time"

// TypeDatasetsReloaded is published by the seed tool after a committed import.
const TypeDatasetsReloaded = "datasets.reloaded"

func DatasetsReloaded(pincodes, policies, insights int) BaseEvent {
	return BaseEvent{
		Type: TypeDatasetsReloaded,
		Data: map[string]interface{}{
			"pincodes": pincodes,
			"policies": policies,
			"insights": insights,
		},
		OccurredAt: time.Now(),
	}
}
