package policy

import "testing"

func TestCatalogShape(t *testing.T) {
	if got := Count(); got != 24 {
		t.Fatalf("Count() = %d, want 24", got)
	}
	seen := map[string]bool{}
	for _, cat := range Categories {
		for i := 0; i < PerCategory; i++ {
			p, err := Get(cat, i)
			if err != nil {
				t.Fatalf("Get(%s, %d): %v", cat, i, err)
			}
			if p.Name == "" {
				t.Errorf("%s/%d has no name", cat, i)
			}
			if seen[p.Name] {
				t.Errorf("duplicate policy name %q", p.Name)
			}
			seen[p.Name] = true
			if p.Tier < 1 || p.Tier > 3 {
				t.Errorf("%s tier = %d, want 1..3", p.Name, p.Tier)
			}
			if p.BaseMagnitude <= 0 {
				t.Errorf("%s magnitude = %d", p.Name, p.BaseMagnitude)
			}
		}
	}
}

func TestGetRejectsUnknown(t *testing.T) {
	if _, err := Get("defense", 0); err == nil {
		t.Error("unknown category accepted")
	}
	if _, err := Get(Social, 4); err == nil {
		t.Error("out-of-range index accepted")
	}
	if _, err := Get(Social, -1); err == nil {
		t.Error("negative index accepted")
	}
}

func TestClickCostByTier(t *testing.T) {
	tests := []struct {
		tier int
		base int
		want int
	}{
		{1, 20, 40},
		{2, 20, 30},
		{3, 20, 20},
		{2, 10, 15},
	}
	for _, tc := range tests {
		p := Policy{Tier: tc.tier}
		if got := p.ClickCost(tc.base); got != tc.want {
			t.Errorf("tier %d cost(%d) = %d, want %d", tc.tier, tc.base, got, tc.want)
		}
	}
}

func TestEffectCountsTagHits(t *testing.T) {
	p, err := Get(Culture, 0) // Hindi Language
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		tags []string
		want int
	}{
		{"heartland", []string{"HindiHeartland", "Pilgrimage"}, 12},
		{"south", []string{"SouthIndia", "CoastalIndia"}, -12},
		{"mixed", []string{"HindiHeartland", "MinorityAreas"}, 0},
		{"double oppose", []string{"SouthIndia", "MinorityAreas"}, -24},
		{"unrelated", []string{"CoastalIndia"}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Effect(tc.tags); got != tc.want {
				t.Errorf("Effect(%v) = %d, want %d", tc.tags, got, tc.want)
			}
		})
	}
}

func TestByName(t *testing.T) {
	p, ok := ByName("Secularism")
	if !ok {
		t.Fatal("Secularism not found")
	}
	if p.Tier != 2 {
		t.Errorf("tier = %d, want 2", p.Tier)
	}
	if _, ok := ByName("Prohibition"); ok {
		t.Error("unknown name found")
	}
}
