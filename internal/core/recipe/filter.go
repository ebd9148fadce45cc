package recipe

import (
	"slices"
	"strings"
)

// Criteria 列表頁的過濾狀態
type Criteria struct {
	Search string   `json:"search"`
	Labels []string `json:"labels"`
}

// IsZero 沒有任何過濾條件
func (c Criteria) IsZero() bool {
	return c.Search == "" && len(c.Labels) == 0
}

// Normalize 排序並去除重複標籤，搜尋字串保持原樣
func (c Criteria) Normalize() Criteria {
	labels := make([]string, 0, len(c.Labels))
	for _, l := range c.Labels {
		if l != "" {
			labels = append(labels, l)
		}
	}
	slices.Sort(labels)
	return Criteria{
		Search: c.Search,
		Labels: slices.Compact(labels),
	}
}

// Key 產生快取鍵
func (c Criteria) Key() string {
	n := c.Normalize()
	return strings.ToLower(n.Search) + "|" + strings.Join(n.Labels, ",")
}

// Checked 標籤是否已勾選
func (c Criteria) Checked(label string) bool {
	return slices.Contains(c.Labels, label)
}

// Toggle 切換標籤勾選狀態，回傳新的 Criteria
func (c Criteria) Toggle(label string) Criteria {
	if c.Checked(label) {
		labels := slices.DeleteFunc(slices.Clone(c.Labels), func(l string) bool { return l == label })
		return Criteria{Search: c.Search, Labels: labels}
	}
	return Criteria{Search: c.Search, Labels: append(slices.Clone(c.Labels), label)}
}

// Matches 判斷食譜是否符合條件：
// 名稱（不分大小寫）包含搜尋字串，且具備所有勾選的標籤。
func (c Criteria) Matches(r Recipe) bool {
	if !strings.Contains(strings.ToLower(r.Label), strings.ToLower(c.Search)) {
		return false
	}
	for _, label := range c.Labels {
		if !r.HasLabel(label) {
			return false
		}
	}
	return true
}

// Filter 依搜尋字串與標籤過濾食譜，保留原始順序
func Filter(recipes []Recipe, search string, labels []string) []Recipe {
	return FilterBy(recipes, Criteria{Search: search, Labels: labels})
}

// FilterBy 同 Filter，以 Criteria 傳入條件
func FilterBy(recipes []Recipe, c Criteria) []Recipe {
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
