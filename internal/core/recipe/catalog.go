package recipe

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrRecipeNotFound 找不到食譜
var ErrRecipeNotFound = errors.New("recipe not found")

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Catalog 不可變的食譜集合，保留載入順序
type Catalog struct {
	recipes []Recipe
	index   map[string]int
}

// NewCatalog 建立食譜集合並為每筆食譜指派 ID
func NewCatalog(recipes []Recipe) *Catalog {
	c := &Catalog{
		recipes: make([]Recipe, len(recipes)),
		index:   make(map[string]int, len(recipes)),
	}
	for i, r := range recipes {
		base := r.ID
		if base == "" {
			base = slugify(r.Label)
		}
		id := base
		for n := 2; ; n++ {
			if _, taken := c.index[id]; !taken {
				break
			}
			id = fmt.Sprintf("%s-%d", base, n)
		}
		r.ID = id
		c.recipes[i] = r
		c.index[id] = i
	}
	return c
}

// slugify 將名稱轉為網址可用的 ID
func slugify(label string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(label), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "recipe"
	}
	return s
}

// All 回傳全部食譜（呼叫者不可修改）
func (c *Catalog) All() []Recipe {
	return c.recipes
}

// Len 食譜數量
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Get 依 ID 取得食譜
func (c *Catalog) Get(id string) (Recipe, error) {
	i, ok := c.index[id]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}
	return c.recipes[i], nil
}

// Lookup 依 ID 清單取得食譜，忽略不存在的 ID
func (c *Catalog) Lookup(ids []string) []Recipe {
	out := make([]Recipe, 0, len(ids))
	for _, id := range ids {
		if i, ok := c.index[id]; ok {
			out = append(out, c.recipes[i])
		}
	}
	return out
}

// HealthLabels 集合中出現過的所有健康標籤（排序後）
func (c *Catalog) HealthLabels() []string {
	var labels []string
	for _, r := range c.recipes {
		labels = append(labels, r.HealthLabels...)
	}
	slices.Sort(labels)
	return slices.Compact(labels)
}
