// Package browse 組合食譜集合、過濾與快取，產生列表頁與詳細頁所需的資料。
package browse

import (
	"context"
	"fmt"
	"strings"

	"recipe-browser/internal/core/cache"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/pkg/common"

	"go.uber.org/zap"
)

// EmptyMessage 沒有符合條件的食譜時顯示
const EmptyMessage = "No recipes match your filters."

// notAvailable 資料缺漏時的顯示文字
const notAvailable = "N/A"

// DietOption 飲食標籤勾選項
type DietOption struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// ListView 列表頁資料
type ListView struct {
	Recipes      []recipe.Recipe `json:"recipes"`
	Criteria     recipe.Criteria `json:"criteria"`
	DietOptions  []DietOption    `json:"diet_options"`
	Total        int             `json:"total"`
	Empty        bool            `json:"empty"`
	EmptyMessage string          `json:"empty_message,omitempty"`
}

// NutrientRow 詳細頁的營養素列
type NutrientRow struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DetailView 詳細頁資料
type DetailView struct {
	Recipe      recipe.Recipe `json:"recipe"`
	MealLine    string        `json:"meal_line"`
	Servings    string        `json:"servings"`
	CookingTime string        `json:"cooking_time"`
	DietTags    []string      `json:"diet_tags"`
	Nutrients   []NutrientRow `json:"nutrients"`
}

// nutrientSpec 詳細頁顯示的營養素與小數位數
type nutrientSpec struct {
	name      string
	code      string
	unit      string
	precision int
}

var detailNutrients = []nutrientSpec{
	{"Energy", recipe.NutrientEnergy, "kcal", 0},
	{"Protein", recipe.NutrientProtein, "g", 1},
	{"Fat", recipe.NutrientFat, "g", 1},
	{"Carbs", recipe.NutrientCarbs, "g", 1},
	{"Cholesterol", recipe.NutrientCholesterol, "mg", 1},
	{"Sodium", recipe.NutrientSodium, "mg", 1},
}

// Service 瀏覽服務
type Service struct {
	catalog *recipe.Catalog
	cache   cache.Store
}

// NewService 創建瀏覽服務，store 可為 nil
func NewService(catalog *recipe.Catalog, store cache.Store) *Service {
	return &Service{
		catalog: catalog,
		cache:   store,
	}
}

// Catalog 取得食譜集合
func (s *Service) Catalog() *recipe.Catalog {
	return s.catalog
}

// Get 依 ID 取得食譜
func (s *Service) Get(id string) (recipe.Recipe, error) {
	return s.catalog.Get(id)
}

// Visible 依條件過濾，優先使用快取
func (s *Service) Visible(ctx context.Context, criteria recipe.Criteria) []recipe.Recipe {
	if s.cache == nil {
		return recipe.FilterBy(s.catalog.All(), criteria)
	}

	key := criteria.Key()
	if ids, ok := s.cache.Get(ctx, key); ok {
		return s.catalog.Lookup(ids)
	}

	visible := recipe.FilterBy(s.catalog.All(), criteria)
	ids := make([]string, len(visible))
	for i, r := range visible {
		ids[i] = r.ID
	}
	if err := s.cache.Set(ctx, key, ids); err != nil {
		common.LogWarn("過濾結果無法寫入快取",
			zap.Error(err),
			zap.String("key", key),
		)
	}
	return visible
}

// List 產生列表頁資料
func (s *Service) List(ctx context.Context, criteria recipe.Criteria) ListView {
	visible := s.Visible(ctx, criteria)

	options := make([]DietOption, len(recipe.DietLabels))
	for i, label := range recipe.DietLabels {
		options[i] = DietOption{Label: label, Checked: criteria.Checked(label)}
	}

	view := ListView{
		Recipes:     visible,
		Criteria:    criteria,
		DietOptions: options,
		Total:       s.catalog.Len(),
		Empty:       len(visible) == 0,
	}
	if view.Empty {
		view.EmptyMessage = EmptyMessage
	}
	return view
}

// Detail 產生詳細頁資料
func (s *Service) Detail(id string) (DetailView, error) {
	r, err := s.catalog.Get(id)
	if err != nil {
		return DetailView{}, err
	}
	return NewDetailView(r), nil
}

// NewDetailView 格式化單一食譜
func NewDetailView(r recipe.Recipe) DetailView {
	rows := make([]NutrientRow, len(detailNutrients))
	for i, ns := range detailNutrients {
		rows[i] = NutrientRow{Name: ns.name, Value: formatNutrient(r, ns)}
	}

	return DetailView{
		Recipe:      r,
		MealLine:    MealLine(r),
		Servings:    common.FormatNumber(r.Yield),
		CookingTime: CookingTime(r),
		DietTags:    r.DietTags(),
		Nutrients:   rows,
	}
}

// MealLine 餐別與菜式，例如 "lunch/dinner • main course"
func MealLine(r recipe.Recipe) string {
	meal := common.StringSliceToString(r.MealType)
	dish := common.StringSliceToString(r.DishType)
	switch {
	case meal == "" && dish == "":
		return ""
	case meal == "":
		return dish
	case dish == "":
		return meal
	default:
		return meal + " • " + dish
	}
}

// CookingTime 烹煮時間，0 代表未知
func CookingTime(r recipe.Recipe) string {
	if r.TotalTime <= 0 {
		return notAvailable
	}
	return common.FormatNumber(r.TotalTime) + " min"
}

func formatNutrient(r recipe.Recipe, ns nutrientSpec) string {
	n, ok := r.Nutrient(ns.code)
	if !ok {
		return notAvailable
	}
	unit := n.Unit
	if unit == "" {
		unit = ns.unit
	}
	return strings.TrimSpace(fmt.Sprintf("%.*f %s", ns.precision, n.Quantity, unit))
}
