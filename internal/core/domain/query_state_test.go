package domain

import (
	"net/url"
	"testing"
)

func TestApplyResetsPageOnFilterChange(t *testing.T) {
	base := NewQueryState(12)
	base.Page = 4

	text := "brooklyn"
	sortField := SortFieldOriginalPrice
	sortOrder := SortOrderAsc
	status := MLSStatusActive
	propertyType := "Residential"
	subtype := "Condo"
	county := "Queens"

	patches := map[string]QueryPatch{
		"search_text":      {SearchText: &text},
		"sort_field":       {SortField: &sortField},
		"sort_order":       {SortOrder: &sortOrder},
		"mls_status":       {MLSStatusFilter: &status},
		"property_type":    {PropertyType: &propertyType},
		"property_subtype": {PropertySubtype: &subtype},
		"county":           {County: &county},
	}

	for name, patch := range patches {
		next := base.Apply(patch)
		if next.Page != 1 {
			t.Fatalf("%s: expected page reset to 1, got %d", name, next.Page)
		}
	}
}

func TestApplyExplicitPageDoesNotReset(t *testing.T) {
	q := NewQueryState(12)
	page := 3
	next := q.Apply(QueryPatch{Page: &page})
	if next.Page != 3 {
		t.Fatalf("expected page 3, got %d", next.Page)
	}
}

func TestApplyClampsPage(t *testing.T) {
	q := NewQueryState(12)
	page := 0
	if next := q.Apply(QueryPatch{Page: &page}); next.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", next.Page)
	}
	page = -5
	if next := q.Apply(QueryPatch{Page: &page}); next.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", next.Page)
	}
}

func TestValuesOmitsDefaults(t *testing.T) {
	q := NewQueryState(12)
	if encoded := q.Values().Encode(); encoded != "" {
		t.Fatalf("default state must serialize to an empty query, got %q", encoded)
	}

	q.SearchText = "queens"
	q.SortField = SortFieldOriginalPrice
	q.Page = 2
	q.County = "Queens"

	v := q.Values()
	if v.Get("search") != "queens" {
		t.Errorf("expected search=queens, got %q", v.Get("search"))
	}
	if v.Get("sortField") != "originalPrice" {
		t.Errorf("expected sortField=originalPrice, got %q", v.Get("sortField"))
	}
	if v.Get("page") != "2" {
		t.Errorf("expected page=2, got %q", v.Get("page"))
	}
	if _, ok := v["sortOrder"]; ok {
		t.Error("default sortOrder must be omitted")
	}
	if _, ok := v["county"]; ok {
		t.Error("county must never be serialized to the URL")
	}
}

func TestURLRoundTrip(t *testing.T) {
	states := []QueryState{
		NewQueryState(12),
		{
			SearchText: "Kings (Brooklyn)",
			SortField:  SortFieldOriginalPrice,
			SortOrder:  SortOrderAsc,
			Page:       7,
			PageSize:   12,
		},
		{
			SortField:       SortFieldCreatedAt,
			SortOrder:       SortOrderDesc,
			Page:            1,
			PageSize:        12,
			MLSStatusFilter: MLSStatusActive,
			PropertyType:    "Residential",
			PropertySubtype: "Townhouse",
		},
	}

	for i, state := range states {
		restored := QueryStateFromValues(state.Values(), 12)
		if restored != state {
			t.Fatalf("state %d did not survive the round trip:\n got %+v\nwant %+v", i, restored, state)
		}
	}
}

func TestHydrateMalformedFallsBackToDefaults(t *testing.T) {
	v := url.Values{}
	v.Set("page", "banana")
	v.Set("sortField", "fraudulentField")
	v.Set("sortOrder", "sideways")
	v.Set("mlsStatus", "Sold")

	q := QueryStateFromValues(v, 12)
	def := NewQueryState(12)
	if q != def {
		t.Fatalf("malformed params must fall back to defaults:\n got %+v\nwant %+v", q, def)
	}
}

func TestHydrateNegativePage(t *testing.T) {
	v := url.Values{}
	v.Set("page", "-2")
	if q := QueryStateFromValues(v, 12); q.Page != 1 {
		t.Fatalf("expected page 1, got %d", q.Page)
	}
}

func TestHasListingConstraints(t *testing.T) {
	q := NewQueryState(25)
	if q.HasListingConstraints() {
		t.Fatal("default state must have no constraints")
	}
	q.SearchText = "   "
	if q.HasListingConstraints() {
		t.Fatal("whitespace search text is not a constraint")
	}
	q.County = "Queens"
	if !q.HasListingConstraints() {
		t.Fatal("county filter is a constraint")
	}
}
