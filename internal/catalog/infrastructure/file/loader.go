package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	catalog "heatpump-insight/internal/catalog/domain"
)

// Load reads a scenario catalog from a JSON file produced by the
// offline profile-extraction pipeline.
func Load(path string) (*catalog.Catalog, error) {
	if path == "" {
		return nil, errors.New("catalog loader: empty path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog loader: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes catalog JSON.
func Parse(data []byte) (*catalog.Catalog, error) {
	var doc struct {
		Profiles  []catalog.PropertyProfile `json:"profiles"`
		Scenarios []catalog.Scenario        `json:"scenarios"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog loader: decode: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, errors.New("catalog loader: no scenarios")
	}
	for i, scenario := range doc.Scenarios {
		if scenario.ID == "" {
			return nil, fmt.Errorf("catalog loader: scenario %d missing id", i)
		}
	}
	return catalog.NewCatalog(doc.Profiles, doc.Scenarios), nil
}
