package export

import (
	"bytes"
	"testing"

	"recipe-browser/internal/core/recipe"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	recipes := []recipe.Recipe{
		{
			Label:        "Vegan Tacos",
			MealType:     []string{"lunch/dinner"},
			DishType:     []string{"main course"},
			HealthLabels: []string{"Vegan", "Vegetarian"},
			Yield:        4,
			TotalTime:    30,
			TotalNutrients: map[string]recipe.Nutrient{
				recipe.NutrientEnergy: {Quantity: 812, Unit: "kcal"},
			},
		},
		{Label: "Chicken Tacos", Yield: 2},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, recipes); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "label" || rows[0][6] != "energy_kcal" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	first := rows[1]
	want := []string{"Vegan Tacos", "lunch/dinner", "main course", "Vegan, Vegetarian", "4", "30", "812"}
	for i, v := range want {
		if first[i] != v {
			t.Fatalf("column %d: got %q, want %q", i, first[i], v)
		}
	}

	if rows[2][0] != "Chicken Tacos" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(SheetName)
	if len(rows) != 1 {
		t.Fatalf("expected only the header row, got %d", len(rows))
	}
}
