package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func detailsToJSON(details map[string]interface{}) datatypes.JSON {
	if len(details) == 0 {
		return nil
	}
	b, err := json.Marshal(details)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func detailsFromJSON(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var details map[string]interface{}
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil
	}
	return details
}
