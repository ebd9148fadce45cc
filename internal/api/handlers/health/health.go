package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-browser/internal/core/cache"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/core/session"
	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   CatalogStatus          `json:"catalog"`
	Sessions  int                    `json:"sessions"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// CatalogStatus 資料集狀態
type CatalogStatus struct {
	Source  string `json:"source"`
	Recipes int    `json:"recipes"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg      *config.Config
	catalog  *recipe.Catalog
	cache    cache.Store
	sessions *session.Store
}

// NewHandler 創建健康檢查處理器，store 可為 nil
func NewHandler(cfg *config.Config, catalog *recipe.Catalog, store cache.Store, sessions *session.Store) *Handler {
	return &Handler{
		cfg:      cfg,
		catalog:  catalog,
		cache:    store,
		sessions: sessions,
	}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Catalog: CatalogStatus{
			Source:  h.cfg.Data.Source,
			Recipes: h.catalog.Len(),
		},
		Sessions: h.sessions.Len(),
	}
	if h.cache != nil {
		response.Cache = h.cache.Stats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：資料集已載入
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.catalog == nil || h.catalog.Len() == 0 {
		ce := common.ErrServiceUnavailable
		c.JSON(ce.Status, ce.Response(false))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"recipes": h.catalog.Len(),
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
