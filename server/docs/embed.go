package docs

import (
	"encoding/json"
)

// SwaggerSpec is the part of the API description the index page lists.
type SwaggerSpec struct {
	Paths map[string]map[string]PathInfo `json:"paths"`
}

// PathInfo contains information about an API endpoint
type PathInfo struct {
	Summary     string         `json:"summary"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Parameters  []any          `json:"parameters"`
	Responses   map[string]any `json:"responses"`
}

// GetSwaggerSpec returns the parsed registered description.
func GetSwaggerSpec() (*SwaggerSpec, error) {
	var spec SwaggerSpec
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}
