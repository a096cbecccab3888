// Package regions loads the static region catalog: every simulated
// constituency with its seat weight and category tags. The catalog is
// embedded and validated against a JSON schema at load time, then immutable.
package regions

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed data/regions.json
var regionsJSON []byte

//go:embed data/regions.schema.json
var regionsSchema string

// Region is one constituency unit.
type Region struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	SeatWeight int      `json:"seats"`
	Tags       []string `json:"tags"`
}

// HasTag reports whether the region carries the given category tag.
func (r *Region) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Catalog is the ordered, indexed set of all regions.
type Catalog struct {
	Regions []Region
	byID    map[string]*Region
	byName  map[string]*Region
	total   int
}

// Load parses and validates the embedded catalog.
func Load() (*Catalog, error) {
	schema, err := jsonschema.CompileString("regions.schema.json", regionsSchema)
	if err != nil {
		return nil, fmt.Errorf("compile region schema: %w", err)
	}

	var raw any
	if err := json.Unmarshal(regionsJSON, &raw); err != nil {
		return nil, fmt.Errorf("parse region catalog: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate region catalog: %w", err)
	}

	var list []Region
	if err := json.Unmarshal(regionsJSON, &list); err != nil {
		return nil, fmt.Errorf("decode region catalog: %w", err)
	}

	c := &Catalog{
		Regions: list,
		byID:    make(map[string]*Region, len(list)),
		byName:  make(map[string]*Region, len(list)),
	}
	for i := range c.Regions {
		r := &c.Regions[i]
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate region id %q", r.ID)
		}
		c.byID[r.ID] = r
		c.byName[r.Name] = r
		c.total += r.SeatWeight
	}
	return c, nil
}

// Get returns the region with the given id, or nil.
func (c *Catalog) Get(id string) *Region {
	return c.byID[id]
}

// ByName returns the region with the given display name, or nil.
func (c *Catalog) ByName(name string) *Region {
	return c.byName[name]
}

// TotalSeats returns the national seat total.
func (c *Catalog) TotalSeats() int {
	return c.total
}

// Len returns the number of regions.
func (c *Catalog) Len() int {
	return len(c.Regions)
}
