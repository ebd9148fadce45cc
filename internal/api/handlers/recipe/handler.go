package recipe

import (
	"errors"
	"net/http"

	"recipe-browser/internal/api/handlers"
	"recipe-browser/internal/api/middleware"
	"recipe-browser/internal/core/browse"
	"recipe-browser/internal/core/navigation"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/core/session"

	"github.com/gin-gonic/gin"
)

var errNoSession = errors.New("session middleware not installed")

// Handler 食譜與瀏覽階段的 JSON API
type Handler struct {
	browse *browse.Service
	debug  bool
}

// NewHandler 創建處理器
func NewHandler(browseSvc *browse.Service, debug bool) *Handler {
	return &Handler{
		browse: browseSvc,
		debug:  debug,
	}
}

// SessionResponse 瀏覽階段狀態
type SessionResponse struct {
	SessionID string             `json:"session_id"`
	View      string             `json:"view"`
	RecipeID  string             `json:"recipe_id,omitempty"`
	Criteria  recipe.Criteria    `json:"criteria"`
	Detail    *browse.DetailView `json:"detail,omitempty"`
}

// ListRecipes GET /api/v1/recipes?q=&diet=
func (h *Handler) ListRecipes(c *gin.Context) {
	criteria, _ := handlers.CriteriaFromQuery(c)
	if err := handlers.ValidateCriteria(criteria); err != nil {
		handlers.AbortWithError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, h.browse.List(c.Request.Context(), criteria))
}

// GetRecipe GET /api/v1/recipes/:id
func (h *Handler) GetRecipe(c *gin.Context) {
	view, err := h.browse.Detail(c.Param("id"))
	if err != nil {
		handlers.AbortWithError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetSession GET /api/v1/session
func (h *Handler) GetSession(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		handlers.AbortWithError(c, errNoSession, h.debug)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(sess))
}

// SelectRecipe POST /api/v1/session/select/:id
func (h *Handler) SelectRecipe(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		handlers.AbortWithError(c, errNoSession, h.debug)
		return
	}

	r, err := h.browse.Get(c.Param("id"))
	if err != nil {
		handlers.AbortWithError(c, err, h.debug)
		return
	}

	sess.Do(func(nav *navigation.Controller, _ *recipe.Criteria) {
		nav.SelectRecipe(r)
	})
	c.JSON(http.StatusOK, newSessionResponse(sess))
}

// GoBack POST /api/v1/session/back
func (h *Handler) GoBack(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		handlers.AbortWithError(c, errNoSession, h.debug)
		return
	}

	sess.Do(func(nav *navigation.Controller, _ *recipe.Criteria) {
		nav.GoBack()
	})
	c.JSON(http.StatusOK, newSessionResponse(sess))
}

func newSessionResponse(sess *session.Session) SessionResponse {
	state, criteria := sess.Snapshot()
	resp := SessionResponse{
		SessionID: sess.ID,
		View:      state.View.String(),
		Criteria:  criteria,
	}
	if r, ok := state.Selected(); ok {
		detail := browse.NewDetailView(r)
		resp.RecipeID = r.ID
		resp.Detail = &detail
	}
	return resp
}
