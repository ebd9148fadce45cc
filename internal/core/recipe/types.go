package recipe

import "slices"

// 營養素代碼（沿用資料集的 totalNutrients 鍵名）
const (
	NutrientEnergy      = "ENERC_KCAL"
	NutrientProtein     = "PROCNT"
	NutrientFat         = "FAT"
	NutrientCarbs       = "CHOCDF"
	NutrientCholesterol = "CHOLE"
	NutrientSodium      = "NA"
)

// 飲食標籤
const (
	LabelVegan       = "Vegan"
	LabelVegetarian  = "Vegetarian"
	LabelPescetarian = "Pescetarian"
)

// DietLabels 列表頁提供勾選的飲食標籤，順序即顯示順序
var DietLabels = []string{LabelVegan, LabelVegetarian, LabelPescetarian}

// Nutrient 營養素數值
type Nutrient struct {
	Label    string  `json:"label,omitempty" yaml:"label,omitempty"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Unit     string  `json:"unit" yaml:"unit"`
}

// Recipe 食譜（載入後不再修改）
type Recipe struct {
	ID              string              `json:"id,omitempty" yaml:"id,omitempty"`
	Label           string              `json:"label" yaml:"label"`
	Image           string              `json:"image" yaml:"image"`
	MealType        []string            `json:"mealType" yaml:"mealType"`
	DishType        []string            `json:"dishType" yaml:"dishType"`
	HealthLabels    []string            `json:"healthLabels" yaml:"healthLabels"`
	Yield           float64             `json:"yield" yaml:"yield"`
	TotalTime       float64             `json:"totalTime" yaml:"totalTime"`
	IngredientLines []string            `json:"ingredientLines" yaml:"ingredientLines"`
	TotalNutrients  map[string]Nutrient `json:"totalNutrients" yaml:"totalNutrients"`
}

// HasLabel 檢查是否帶有指定的健康標籤（大小寫需完全相符）
func (r Recipe) HasLabel(label string) bool {
	return slices.Contains(r.HealthLabels, label)
}

// Nutrient 取得營養素，不存在時回傳 false
func (r Recipe) Nutrient(code string) (Nutrient, bool) {
	n, ok := r.TotalNutrients[code]
	return n, ok
}

// DietTags 回傳此食譜符合的飲食標籤（依 DietLabels 順序）
func (r Recipe) DietTags() []string {
	var tags []string
	for _, label := range DietLabels {
		if r.HasLabel(label) {
			tags = append(tags, label)
		}
	}
	return tags
}
