package web

import (
	"embed"
	"html/template"
	"strings"

	"recipe-browser/internal/core/browse"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	listTemplate   = "list.tmpl"
	detailTemplate = "detail.tmpl"
)

// Templates 解析內嵌的頁面模板
func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{
			"join":     strings.Join,
			"mealLine": browse.MealLine,
		}).
		ParseFS(templateFS, "templates/*.tmpl")
}
