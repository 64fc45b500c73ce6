package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type fileFormat struct {
	Restaurants []catalog.Restaurant `yaml:"restaurants"`
}

// LoadFile reads a YAML catalog of the form:
//
//	restaurants:
//	  - id: 869c848c-...
//	    name: Pho Bac
func LoadFile(path string) ([]catalog.Restaurant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML catalog content.
func Parse(data []byte) ([]catalog.Restaurant, error) {
	var parsed fileFormat
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]struct{}, len(parsed.Restaurants))
	items := make([]catalog.Restaurant, 0, len(parsed.Restaurants))
	for i, r := range parsed.Restaurants {
		r.ID = strings.TrimSpace(r.ID)
		r.Name = strings.TrimSpace(r.Name)
		if r.ID == "" {
			return nil, fmt.Errorf("%w: restaurant #%d has no id", ErrInvalidCatalog, i)
		}
		if r.Name == "" {
			return nil, fmt.Errorf("%w: restaurant %s has no name", ErrInvalidCatalog, r.ID)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidCatalog, r.ID)
		}
		seen[r.ID] = struct{}{}
		items = append(items, r)
	}
	return items, nil
}
