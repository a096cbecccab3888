package regions

import "testing"

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func TestCatalogLoads(t *testing.T) {
	c := mustLoad(t)
	if got := c.Len(); got != 36 {
		t.Fatalf("Len() = %d, want 36", got)
	}
	if got := c.TotalSeats(); got != 543 {
		t.Fatalf("TotalSeats() = %d, want 543", got)
	}
	for i := range c.Regions {
		r := &c.Regions[i]
		if r.SeatWeight < 1 {
			t.Errorf("region %s has %d seats", r.ID, r.SeatWeight)
		}
		if len(r.Tags) == 0 {
			t.Errorf("region %s has no tags", r.ID)
		}
		for _, tag := range r.Tags {
			if _, ok := groupNames[tag]; !ok {
				t.Errorf("region %s carries unknown tag %q", r.ID, tag)
			}
		}
	}
}

func TestCatalogLookups(t *testing.T) {
	c := mustLoad(t)

	up := c.Get("IN-UP")
	if up == nil || up.Name != "Uttar Pradesh" || up.SeatWeight != 80 {
		t.Fatalf("IN-UP = %+v", up)
	}
	if c.Get("IN-XX") != nil {
		t.Error("unknown id resolved")
	}
	if r := c.ByName("Kerala"); r == nil || r.ID != "IN-KL" {
		t.Errorf("ByName(Kerala) = %+v", r)
	}
	if c.ByName("Atlantis") != nil {
		t.Error("unknown name resolved")
	}

	if !up.HasTag("HindiHeartland") || up.HasTag("SouthIndia") {
		t.Errorf("IN-UP tags wrong: %v", up.Tags)
	}
}

func TestGroupIndexConsistency(t *testing.T) {
	c := mustLoad(t)
	groups := c.GroupRegions()

	if len(groups) != len(GroupTags()) {
		t.Fatalf("group count = %d, want %d", len(groups), len(GroupTags()))
	}
	for tag, members := range groups {
		seats := 0
		for _, id := range members {
			r := c.Get(id)
			if r == nil {
				t.Fatalf("group %s lists unknown region %s", tag, id)
			}
			if !r.HasTag(tag) {
				t.Errorf("group %s lists %s which lacks the tag", tag, id)
			}
			seats += r.SeatWeight
		}
		if got := c.GroupSeats(tag); got != seats {
			t.Errorf("GroupSeats(%s) = %d, want %d", tag, got, seats)
		}
	}

	// Spot checks on well-known groupings.
	south := groups["SouthIndia"]
	if len(south) < 4 {
		t.Errorf("SouthIndia has %d members", len(south))
	}
	if c.GroupSeats("UnionTerritory") >= c.GroupSeats("HindiHeartland") {
		t.Error("union territories outweigh the Hindi heartland")
	}
}

func TestGroupNames(t *testing.T) {
	if got := GroupName("SouthIndia"); got != "South India" {
		t.Errorf("GroupName(SouthIndia) = %q", got)
	}
	if got := GroupName("SomeFutureTag"); got != "SomeFutureTag" {
		t.Errorf("unmapped tag = %q, want passthrough", got)
	}
}
