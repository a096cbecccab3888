package regions

// Group display names keyed by tag. Regions sharing a tag form a named group.
var groupNames = map[string]string{
	"UnionTerritory":     "Union Territory",
	"CoastalIndia":       "Coastal India",
	"NortheastIndia":     "Northeast India",
	"SouthIndia":         "South India",
	"HindiHeartland":     "Hindi Heartland",
	"AgriculturalRegion": "Agricultural Region",
	"BorderLands":        "Border Lands",
	"Pilgrimage":         "Pilgrimage",
	"IndustrialCorridor": "Industrial Corridor",
	"Manufacturing":      "Manufacturing",
	"Education":          "Education",
	"TribalLands":        "Tribal Lands",
	"TravelAndTourism":   "Travel and Tourism",
	"NaturalResources":   "Natural Resources",
	"MinorityAreas":      "Minority Areas",
}

// GroupName returns the display name for a tag, or the tag itself when
// no mapping exists.
func GroupName(tag string) string {
	if n, ok := groupNames[tag]; ok {
		return n
	}
	return tag
}

// GroupTags returns all known group tags.
func GroupTags() []string {
	tags := make([]string, 0, len(groupNames))
	for t := range groupNames {
		tags = append(tags, t)
	}
	return tags
}

// GroupRegions builds the tag → member region ids index from the catalog.
func (c *Catalog) GroupRegions() map[string][]string {
	out := make(map[string][]string, len(groupNames))
	for tag := range groupNames {
		out[tag] = nil
	}
	for i := range c.Regions {
		r := &c.Regions[i]
		for _, tag := range r.Tags {
			out[tag] = append(out[tag], r.ID)
		}
	}
	return out
}

// GroupSeats sums the seat weight of every region carrying the tag.
func (c *Catalog) GroupSeats(tag string) int {
	total := 0
	for i := range c.Regions {
		if c.Regions[i].HasTag(tag) {
			total += c.Regions[i].SeatWeight
		}
	}
	return total
}
