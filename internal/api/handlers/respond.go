// Package handlers 放置各路由處理器共用的請求解析與錯誤回應。
package handlers

import (
	"errors"
	"fmt"
	"slices"

	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// QuerySearch 搜尋字串參數
	QuerySearch = "q"
	// QueryDiet 飲食標籤參數，可重複
	QueryDiet = "diet"
)

// AbortWithError 將錯誤轉為 JSON 錯誤響應
func AbortWithError(c *gin.Context, err error, debug bool) {
	ce := ToCustomError(err)
	_ = c.Error(err)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", ce.Code),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if ce.Status >= 500 {
		common.LogError("Request failed", fields...)
	} else {
		common.LogDebug("Request rejected", fields...)
	}

	c.AbortWithStatusJSON(ce.Status, ce.Response(debug))
}

// ToCustomError 將核心錯誤對應到 API 錯誤
func ToCustomError(err error) *common.CustomError {
	switch {
	case errors.Is(err, recipe.ErrRecipeNotFound):
		return common.ErrNotFound.Wrap(err)
	case common.IsValidationError(err):
		ce := common.ErrInvalidRequest.Wrap(err)
		ce.Message = err.Error()
		return ce
	default:
		return common.AsCustomError(err)
	}
}

// CriteriaFromQuery 從查詢參數解析過濾條件；present 表示請求是否帶有任何過濾參數
func CriteriaFromQuery(c *gin.Context) (criteria recipe.Criteria, present bool) {
	search, hasSearch := c.GetQuery(QuerySearch)
	labels, hasDiet := c.GetQueryArray(QueryDiet)
	criteria = recipe.Criteria{
		Search: search,
		Labels: labels,
	}.Normalize()
	return criteria, hasSearch || hasDiet
}

// ValidateCriteria 檢查飲食標籤是否為可勾選的選項
func ValidateCriteria(criteria recipe.Criteria) error {
	for _, label := range criteria.Labels {
		if !slices.Contains(recipe.DietLabels, label) {
			return common.NewValidationError(fmt.Sprintf("不支援的飲食標籤: %s", label))
		}
	}
	return nil
}

// KnownLabels 移除不在可勾選選項內的標籤
func KnownLabels(criteria recipe.Criteria) recipe.Criteria {
	labels := slices.DeleteFunc(slices.Clone(criteria.Labels), func(l string) bool {
		return !slices.Contains(recipe.DietLabels, l)
	})
	return recipe.Criteria{Search: criteria.Search, Labels: labels}
}
