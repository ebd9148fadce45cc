// Package web 提供瀏覽器使用的列表頁、詳細頁與相關資源。
package web

import (
	"bytes"
	"errors"
	"net/http"

	"recipe-browser/internal/api/handlers"
	"recipe-browser/internal/api/middleware"
	"recipe-browser/internal/core/browse"
	"recipe-browser/internal/core/export"
	"recipe-browser/internal/core/image"
	"recipe-browser/internal/core/navigation"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	appTitle        = "Recipe Browser"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var errNoSession = errors.New("session middleware not installed")

// Handler 頁面處理器
type Handler struct {
	browse *browse.Service
	images *image.Service // nil 時直接使用原始圖片網址
	debug  bool
}

// NewHandler 創建頁面處理器
func NewHandler(browseSvc *browse.Service, images *image.Service, debug bool) *Handler {
	return &Handler{
		browse: browseSvc,
		images: images,
		debug:  debug,
	}
}

// pageData 模板資料，List 與 Detail 只會有一個
type pageData struct {
	Title  string
	List   *browse.ListView
	Detail *browse.DetailView
	proxy  bool
}

// ImageSrc 卡片與詳細頁的圖片來源
func (p pageData) ImageSrc(r recipe.Recipe) string {
	if p.proxy && r.Image != "" {
		return "/recipes/" + r.ID + "/image"
	}
	return r.Image
}

// Home 顯示目前的頁面
func (h *Handler) Home(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		handlers.AbortWithError(c, errNoSession, h.debug)
		return
	}

	state, criteria := sess.Snapshot()
	if r, ok := state.Selected(); ok {
		h.renderDetail(c, r)
		return
	}
	h.renderList(c, criteria)
}

// ListRecipes 套用查詢參數中的過濾條件並顯示列表頁
func (h *Handler) ListRecipes(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		handlers.AbortWithError(c, errNoSession, h.debug)
		return
	}

	criteria, present := handlers.CriteriaFromQuery(c)
	criteria = handlers.KnownLabels(criteria)
	sess.Do(func(nav *navigation.Controller, current *recipe.Criteria) {
		if present {
			*current = criteria
		} else {
			criteria = *current
		}
		// 顯示列表頁時導覽狀態必須是 LIST
		if nav.View() == navigation.ViewDetail {
			nav.GoBack()
		}
	})
	h.renderList(c, criteria)
}

// SelectRecipe 點選卡片進入詳細頁
func (h *Handler) SelectRecipe(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		handlers.AbortWithError(c, errNoSession, h.debug)
		return
	}

	id := c.Param("id")
	r, err := h.browse.Get(id)
	if err != nil {
		common.LogWarn("Selected recipe not found",
			zap.String("recipe_id", id),
			zap.String("session_id", sess.ID),
		)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	sess.Do(func(nav *navigation.Controller, _ *recipe.Criteria) {
		nav.SelectRecipe(r)
	})
	c.Redirect(http.StatusSeeOther, "/")
}

// GoBack 從詳細頁回到列表頁
func (h *Handler) GoBack(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		handlers.AbortWithError(c, errNoSession, h.debug)
		return
	}

	sess.Do(func(nav *navigation.Controller, _ *recipe.Criteria) {
		nav.GoBack()
	})
	c.Redirect(http.StatusSeeOther, "/")
}

// Image 代理食譜圖片
func (h *Handler) Image(c *gin.Context) {
	r, err := h.browse.Get(c.Param("id"))
	if err != nil {
		handlers.AbortWithError(c, err, h.debug)
		return
	}
	if r.Image == "" {
		handlers.AbortWithError(c, common.ErrNotFound, h.debug)
		return
	}
	if h.images == nil {
		c.Redirect(http.StatusFound, r.Image)
		return
	}

	data, err := h.images.Fetch(c.Request.Context(), r.Image)
	if err != nil {
		handlers.AbortWithError(c, err, h.debug)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/jpeg", data)
}

// Export 匯出目前可見的食譜
func (h *Handler) Export(c *gin.Context) {
	criteria, present := handlers.CriteriaFromQuery(c)
	if !present {
		if sess := middleware.CurrentSession(c); sess != nil {
			_, criteria = sess.Snapshot()
		}
	}

	visible := h.browse.Visible(c.Request.Context(), criteria)

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, visible); err != nil {
		handlers.AbortWithError(c, common.ErrExportFailed.Wrap(err), h.debug)
		return
	}

	common.LogInfo("Recipes exported",
		zap.Int("count", len(visible)),
		zap.String("criteria", criteria.Key()),
	)
	c.Header("Content-Disposition", `attachment; filename="recipes.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) renderList(c *gin.Context, criteria recipe.Criteria) {
	view := h.browse.List(c.Request.Context(), criteria)
	c.HTML(http.StatusOK, listTemplate, pageData{
		Title: appTitle,
		List:  &view,
		proxy: h.images != nil,
	})
}

func (h *Handler) renderDetail(c *gin.Context, r recipe.Recipe) {
	view := browse.NewDetailView(r)
	c.HTML(http.StatusOK, detailTemplate, pageData{
		Title:  r.Label + " · " + appTitle,
		Detail: &view,
		proxy:  h.images != nil,
	})
}
