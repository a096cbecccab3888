// Package policy defines the 24 policy campaigns: six categories with four
// initiatives each. Every campaign maps to an effect record of region tags
// it plays well or badly with, and a cost tier.
package policy

import "fmt"

// Category is one of the six campaign boards.
type Category string

const (
	Social     Category = "social"
	Land       Category = "land"
	Economy    Category = "economy"
	Justice    Category = "justice"
	Culture    Category = "culture"
	Governance Category = "governance"
)

// Categories lists the boards in display order.
var Categories = []Category{Social, Land, Economy, Justice, Culture, Governance}

// PerCategory is the number of campaigns on each board.
const PerCategory = 4

// Policy is one campaign's identity and completion effect.
type Policy struct {
	Name          string
	Tier          int // 1..3, scales the click cost (tier 1 most expensive)
	BaseMagnitude int
	SupportTags   []string
	OpposeTags    []string
}

// Effect computes the influence change this policy causes in a region with
// the given tags: BaseMagnitude × (support hits − oppose hits).
func (p *Policy) Effect(regionTags []string) int {
	hits := func(list []string) int {
		n := 0
		for _, tag := range list {
			for _, rt := range regionTags {
				if tag == rt {
					n++
					break
				}
			}
		}
		return n
	}
	return p.BaseMagnitude * (hits(p.SupportTags) - hits(p.OpposeTags))
}

// ClickCost returns the per-click cost for the policy's tier given the
// base (tier 3) cost.
func (p *Policy) ClickCost(baseCost int) int {
	switch p.Tier {
	case 1:
		return baseCost * 2
	case 2:
		return baseCost * 3 / 2
	default:
		return baseCost
	}
}

var catalog = map[Category][PerCategory]Policy{
	Social: {
		{Name: "Universal Healthcare", Tier: 1, BaseMagnitude: 10,
			SupportTags: []string{"Education", "MinorityAreas"}},
		{Name: "Reservation Expansion", Tier: 2, BaseMagnitude: 8,
			SupportTags: []string{"TribalLands", "MinorityAreas"},
			OpposeTags:  []string{"IndustrialCorridor"}},
		{Name: "Rural Employment Guarantee", Tier: 2, BaseMagnitude: 8,
			SupportTags: []string{"AgriculturalRegion", "TribalLands"},
			OpposeTags:  []string{"IndustrialCorridor"}},
		{Name: "Midday Meal Expansion", Tier: 3, BaseMagnitude: 6,
			SupportTags: []string{"Education", "AgriculturalRegion"}},
	},
	Land: {
		{Name: "Land Acquisition Reform", Tier: 1, BaseMagnitude: 10,
			SupportTags: []string{"IndustrialCorridor", "Manufacturing"},
			OpposeTags:  []string{"AgriculturalRegion", "TribalLands"}},
		{Name: "Forest Rights Act", Tier: 2, BaseMagnitude: 8,
			SupportTags: []string{"TribalLands", "NaturalResources"},
			OpposeTags:  []string{"IndustrialCorridor"}},
		{Name: "Coastal Zone Relaxation", Tier: 2, BaseMagnitude: 8,
			SupportTags: []string{"IndustrialCorridor"},
			OpposeTags:  []string{"CoastalIndia"}},
		{Name: "National Irrigation Mission", Tier: 3, BaseMagnitude: 6,
			SupportTags: []string{"AgriculturalRegion"}},
	},
	Economy: {
		{Name: "Manufacturing Incentives", Tier: 1, BaseMagnitude: 10,
			SupportTags: []string{"Manufacturing", "IndustrialCorridor"}},
		{Name: "Farm Loan Waiver", Tier: 2, BaseMagnitude: 8,
			SupportTags: []string{"AgriculturalRegion"},
			OpposeTags:  []string{"IndustrialCorridor"}},
		{Name: "Mining Royalty Hike", Tier: 2, BaseMagnitude: 8,
			SupportTags: []string{"NaturalResources", "TribalLands"},
			OpposeTags:  []string{"Manufacturing"}},
		{Name: "Tourism Development Fund", Tier: 3, BaseMagnitude: 6,
			SupportTags: []string{"TravelAndTourism", "CoastalIndia"}},
	},
	Justice: {
		{Name: "Uniform Civil Code", Tier: 1, BaseMagnitude: 12,
			SupportTags: []string{"HindiHeartland"},
			OpposeTags:  []string{"MinorityAreas", "NortheastIndia"}},
		{Name: "Police Reform", Tier: 2, BaseMagnitude: 8,
			SupportTags: []string{"UnionTerritory", "Education"}},
		{Name: "Fast Track Courts", Tier: 2, BaseMagnitude: 6,
			SupportTags: []string{"HindiHeartland", "Education"}},
		{Name: "Tribal Autonomy Councils", Tier: 3, BaseMagnitude: 6,
			SupportTags: []string{"TribalLands", "NortheastIndia"}},
	},
	Culture: {
		{Name: "Hindi Language", Tier: 1, BaseMagnitude: 12,
			SupportTags: []string{"HindiHeartland"},
			OpposeTags:  []string{"SouthIndia", "NortheastIndia", "MinorityAreas"}},
		{Name: "Hindutva", Tier: 1, BaseMagnitude: 12,
			SupportTags: []string{"HindiHeartland", "Pilgrimage"},
			OpposeTags:  []string{"MinorityAreas", "SouthIndia", "NortheastIndia"}},
		{Name: "Secularism", Tier: 2, BaseMagnitude: 8,
			SupportTags: []string{"MinorityAreas", "Education"},
			OpposeTags:  []string{"HindiHeartland", "Pilgrimage"}},
		{Name: "Classical Arts Fund", Tier: 3, BaseMagnitude: 6,
			SupportTags: []string{"SouthIndia", "TravelAndTourism"}},
	},
	Governance: {
		{Name: "One Nation One Election", Tier: 1, BaseMagnitude: 10,
			SupportTags: []string{"HindiHeartland", "UnionTerritory"},
			OpposeTags:  []string{"SouthIndia"}},
		{Name: "Statehood for Union Territories", Tier: 2, BaseMagnitude: 8,
			SupportTags: []string{"UnionTerritory"}},
		{Name: "Panchayat Devolution", Tier: 2, BaseMagnitude: 6,
			SupportTags: []string{"AgriculturalRegion", "TribalLands"}},
		{Name: "Digital Governance Mission", Tier: 3, BaseMagnitude: 6,
			SupportTags: []string{"Education", "IndustrialCorridor"}},
	},
}

// Get returns the policy at (category, index). Index is 0-based.
func Get(cat Category, index int) (Policy, error) {
	board, ok := catalog[cat]
	if !ok {
		return Policy{}, fmt.Errorf("unknown policy category %q", cat)
	}
	if index < 0 || index >= PerCategory {
		return Policy{}, fmt.Errorf("policy index %d out of range for %s", index, cat)
	}
	return board[index], nil
}

// ByName finds a policy by display name.
func ByName(name string) (Policy, bool) {
	for _, board := range catalog {
		for _, p := range board {
			if p.Name == name {
				return p, true
			}
		}
	}
	return Policy{}, false
}

// Count returns the total number of campaigns.
func Count() int {
	return len(Categories) * PerCategory
}
