// Package export 將目前可見的食譜列表匯出為試算表。
package export

import (
	"fmt"
	"io"
	"strings"

	"recipe-browser/internal/core/recipe"

	"github.com/xuri/excelize/v2"
)

// SheetName 匯出的工作表名稱
const SheetName = "Recipes"

// Header 欄位標題
var Header = []interface{}{
	"label", "meal_type", "dish_type", "health_labels", "servings", "total_time_min", "energy_kcal",
}

// WriteXLSX 以串流方式寫出食譜列表
func WriteXLSX(w io.Writer, recipes []recipe.Recipe) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}
	if err := sw.SetRow("A1", Header); err != nil {
		return err
	}

	for i, r := range recipes {
		var energy interface{}
		if n, ok := r.Nutrient(recipe.NutrientEnergy); ok {
			energy = n.Quantity
		}
		var totalTime interface{}
		if r.TotalTime > 0 {
			totalTime = r.TotalTime
		}
		row := []interface{}{
			r.Label,
			strings.Join(r.MealType, ", "),
			strings.Join(r.DishType, ", "),
			strings.Join(r.HealthLabels, ", "),
			r.Yield,
			totalTime,
			energy,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // A2, A3, ...
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
