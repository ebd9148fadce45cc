package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"recipe-browser/internal/infrastructure/config"
)

const envelopeJSON = `{
  "hits": [
    {"recipe": {"label": "Vegan Tacos", "healthLabels": ["Vegan"], "yield": 4, "totalTime": 30,
      "ingredientLines": ["tortillas", "beans"],
      "totalNutrients": {"ENERC_KCAL": {"label": "Energy", "quantity": 812.5, "unit": "kcal"}}}},
    {"recipe": {"label": "Chicken Tacos", "healthLabels": []}}
  ]
}`

func TestLoadEmbedded(t *testing.T) {
	recipes, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if len(recipes) < 2 {
		t.Fatalf("expected at least 2 recipes, got %d", len(recipes))
	}
	for _, r := range recipes {
		if r.Label == "" {
			t.Fatal("recipe without label in embedded dataset")
		}
		if len(r.IngredientLines) == 0 {
			t.Fatalf("recipe %q has no ingredients", r.Label)
		}
	}
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"json envelope", FormatJSON, envelopeJSON},
		{"json array", FormatJSON, `[{"label": "Vegan Tacos", "healthLabels": ["Vegan"]}, {"label": "Chicken Tacos"}]`},
		{"jsonc with comments", FormatJSONC, `{
  // 內建資料
  "hits": [
    {"recipe": {"label": "Vegan Tacos", "healthLabels": ["Vegan"]}}, /* trailing */
    {"recipe": {"label": "Chicken Tacos"}},
  ]
}`},
		{"yaml envelope", FormatYAML, `
hits:
  - recipe:
      label: Vegan Tacos
      healthLabels: [Vegan]
  - recipe:
      label: Chicken Tacos
`},
		{"yaml list", FormatYAML, `
- label: Vegan Tacos
  healthLabels: [Vegan]
- label: Chicken Tacos
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, err := Decode([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(recipes) != 2 {
				t.Fatalf("expected 2 recipes, got %d", len(recipes))
			}
			if recipes[0].Label != "Vegan Tacos" || !recipes[0].HasLabel("Vegan") {
				t.Fatalf("unexpected first recipe: %+v", recipes[0])
			}
			if recipes[1].Label != "Chicken Tacos" {
				t.Fatalf("unexpected second recipe: %+v", recipes[1])
			}
		})
	}
}

func TestDecodeFields(t *testing.T) {
	recipes, err := Decode([]byte(envelopeJSON), FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r := recipes[0]
	if r.Yield != 4 || r.TotalTime != 30 {
		t.Fatalf("unexpected yield/time: %v/%v", r.Yield, r.TotalTime)
	}
	n, ok := r.Nutrient(NutrientEnergy)
	if !ok || n.Quantity != 812.5 || n.Unit != "kcal" {
		t.Fatalf("unexpected energy: %+v (%v)", n, ok)
	}
	if _, ok := recipes[1].Nutrient(NutrientEnergy); ok {
		t.Fatal("missing nutrient should be absent")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"empty", FormatJSON, "   "},
		{"malformed json", FormatJSON, `{"hits": [`},
		{"trailing data", FormatJSON, `[] []`},
		{"malformed yaml", FormatYAML, "hits: [unterminated"},
		{"unknown format", Format("toml"), `label = "x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data), tt.format); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.json")
	if err := os.WriteFile(path, []byte(envelopeJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	recipes, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(dir, "recipes.txt")
	if err := os.WriteFile(bad, []byte(envelopeJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(envelopeJSON))
		case "/recipes":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte("- label: Vegan Tacos\n- label: Chicken Tacos\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	recipes, err := LoadURL(ctx, srv.URL+"/recipes.json", 5*time.Second)
	if err != nil {
		t.Fatalf("load url: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}

	recipes, err = LoadURL(ctx, srv.URL+"/recipes", 5*time.Second)
	if err != nil {
		t.Fatalf("load yaml url: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}

	if _, err := LoadURL(ctx, srv.URL+"/missing.json", 5*time.Second); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestDataConfigFor(t *testing.T) {
	tests := []struct {
		location string
		source   string
	}{
		{"", config.DataSourceEmbedded},
		{"https://example.com/recipes.json", config.DataSourceURL},
		{"http://localhost/recipes.yaml", config.DataSourceURL},
		{"./recipes.yaml", config.DataSourceFile},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			cfg := DataConfigFor(tt.location, time.Second)
			if cfg.Source != tt.source {
				t.Fatalf("expected %s, got %s", tt.source, cfg.Source)
			}
		})
	}
}

func TestLoadSource(t *testing.T) {
	recipes, err := LoadSource(context.Background(), config.DataConfig{Source: config.DataSourceEmbedded})
	if err != nil || len(recipes) == 0 {
		t.Fatalf("embedded source: %d recipes, err %v", len(recipes), err)
	}

	path := filepath.Join(t.TempDir(), "recipes.json")
	if err := os.WriteFile(path, []byte(envelopeJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	recipes, err = LoadSource(context.Background(), config.DataConfig{Source: config.DataSourceFile, Path: path})
	if err != nil || len(recipes) != 2 {
		t.Fatalf("file source: %d recipes, err %v", len(recipes), err)
	}

	if _, err := LoadSource(context.Background(), config.DataConfig{Source: "ftp"}); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}
