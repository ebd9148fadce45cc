package recipe

import (
	"errors"
	"slices"
	"testing"
)

func TestCatalogAssignsUniqueIDs(t *testing.T) {
	c := NewCatalog([]Recipe{
		{Label: "Vegan Tacos"},
		{Label: "Vegan  Tacos!"},
		{Label: "vegan tacos"},
		{Label: "???"},
		{ID: "custom", Label: "Something"},
	})

	var ids []string
	for _, r := range c.All() {
		ids = append(ids, r.ID)
	}
	want := []string{"vegan-tacos", "vegan-tacos-2", "vegan-tacos-3", "recipe", "custom"}
	if !slices.Equal(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
}

func TestCatalogGet(t *testing.T) {
	c := NewCatalog(testRecipes())

	r, err := c.Get("grilled-salmon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Label != "Grilled Salmon" {
		t.Fatalf("got %q", r.Label)
	}

	_, err = c.Get("nonexistent")
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestCatalogLookupKeepsRequestedOrder(t *testing.T) {
	c := NewCatalog(testRecipes())
	got := labelsOf(c.Lookup([]string{"chickpea-curry", "missing", "vegan-tacos"}))
	if !slices.Equal(got, []string{"Chickpea Curry", "Vegan Tacos"}) {
		t.Fatalf("unexpected lookup result: %v", got)
	}
}

func TestCatalogHealthLabels(t *testing.T) {
	c := NewCatalog(testRecipes())
	got := c.HealthLabels()
	if !slices.Equal(got, []string{"Pescetarian", "Vegan", "Vegetarian"}) {
		t.Fatalf("unexpected labels: %v", got)
	}
	if c.Len() != 5 {
		t.Fatalf("expected 5 recipes, got %d", c.Len())
	}
}
