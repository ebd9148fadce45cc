package recipe

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/recipes.json
var embeddedDataset []byte

// Format 資料集格式
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
)

// hit 資料集中的單筆命中
type hit struct {
	Recipe Recipe `json:"recipe" yaml:"recipe"`
}

// dataset 資料集外層結構 {"hits": [{"recipe": {...}}]}
type dataset struct {
	Hits []hit `json:"hits" yaml:"hits"`
}

// LoadEmbedded 載入內建資料集
func LoadEmbedded() ([]Recipe, error) {
	return Decode(embeddedDataset, FormatJSON)
}

// LoadFile 依副檔名載入本機資料集
func LoadFile(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	recipes, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	common.LogInfo("Dataset loaded from file",
		zap.String("path", path),
		zap.Int("recipes", len(recipes)),
	)
	return recipes, nil
}

// LoadURL 從遠端網址下載資料集
func LoadURL(ctx context.Context, url string, timeout time.Duration) ([]Recipe, error) {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json, application/yaml")

	resp, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("dataset source returned status %d", resp.StatusCode())
	}

	format := FormatJSON
	if strings.Contains(resp.Header().Get("Content-Type"), "yaml") {
		format = FormatYAML
	} else if f, err := FormatFromPath(url); err == nil {
		format = f
	}

	recipes, err := Decode(resp.Body(), format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset from %s: %w", url, err)
	}
	common.LogInfo("Dataset loaded from url",
		zap.String("url", url),
		zap.Int("recipes", len(recipes)),
	)
	return recipes, nil
}

// FormatFromPath 依副檔名判斷格式
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonc":
		return FormatJSONC, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported dataset format: %q", filepath.Ext(path))
	}
}

// Decode 解析資料集，接受 {"hits": [...]} 外層結構或單純的食譜陣列
func Decode(data []byte, format Format) ([]Recipe, error) {
	switch format {
	case FormatJSONC:
		return decodeJSON(jsonc.ToJSON(data))
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %q", format)
	}
}

func decodeJSON(data []byte) ([]Recipe, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	if trimmed[0] == '[' {
		var recipes []Recipe
		if err := common.ParseJSONBytes(trimmed, &recipes); err != nil {
			return nil, err
		}
		return recipes, nil
	}

	var ds dataset
	if err := common.ParseJSONBytes(trimmed, &ds); err != nil {
		return nil, err
	}
	return ds.recipes(), nil
}

func decodeYAML(data []byte) ([]Recipe, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	if node.Content[0].Kind == yaml.SequenceNode {
		var recipes []Recipe
		if err := node.Decode(&recipes); err != nil {
			return nil, err
		}
		return recipes, nil
	}

	var ds dataset
	if err := node.Decode(&ds); err != nil {
		return nil, err
	}
	return ds.recipes(), nil
}

func (ds dataset) recipes() []Recipe {
	out := make([]Recipe, 0, len(ds.Hits))
	for _, h := range ds.Hits {
		out = append(out, h.Recipe)
	}
	return out
}

// LoadSource 依資料集設定載入食譜
func LoadSource(ctx context.Context, cfg config.DataConfig) ([]Recipe, error) {
	switch cfg.Source {
	case config.DataSourceEmbedded, "":
		return LoadEmbedded()
	case config.DataSourceFile:
		return LoadFile(cfg.Path)
	case config.DataSourceURL:
		return LoadURL(ctx, cfg.URL, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown data source: %q", cfg.Source)
	}
}

// DataConfigFor 由單一位置推斷資料來源：空字串為內建資料集，http(s) 為網址，其餘為檔案
func DataConfigFor(location string, timeout time.Duration) config.DataConfig {
	switch {
	case location == "":
		return config.DataConfig{Source: config.DataSourceEmbedded, Timeout: timeout}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return config.DataConfig{Source: config.DataSourceURL, URL: location, Timeout: timeout}
	default:
		return config.DataConfig{Source: config.DataSourceFile, Path: location, Timeout: timeout}
	}
}
