// browse 以終端介面瀏覽食譜資料集。
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"recipe-browser/internal/core/browse"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/pkg/common"
	"recipe-browser/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		dataLocation string
		logLevel     string
		logFile      string
		timeout      time.Duration
	)

	flagSet := pflag.NewFlagSet("browse", pflag.ContinueOnError)
	flagSet.StringVarP(&dataLocation, "data", "d", "", "dataset file or http(s) URL (default: built-in dataset)")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.StringVar(&logFile, "log-file", "logs/browse.log", "write logs to this file")
	flagSet.DurationVar(&timeout, "timeout", 10*time.Second, "timeout for downloading a remote dataset")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	// 終端介面只寫檔案日誌，避免干擾畫面
	if err := common.InitFileLogger(logLevel, logFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer common.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), timeout+5*time.Second)
	recipes, err := recipe.LoadSource(ctx, recipe.DataConfigFor(dataLocation, timeout))
	cancel()
	if err != nil {
		return err
	}
	catalog := recipe.NewCatalog(recipes)

	common.LogInfo("啟動應用",
		zap.String("mode", "tui"),
		zap.String("data", dataLocation),
		zap.Int("recipes", catalog.Len()),
	)

	program := tea.NewProgram(tui.New(browse.NewService(catalog, nil)), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal browser: %w", err)
	}
	return nil
}
