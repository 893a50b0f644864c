package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/elitebuy/internal/app"
	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiBlue      = "\033[34m"
	ansiCyan      = "\033[36m"
	ansiBrightMag = "\033[95m"
)

func main() {
	printStartupBanner()

	// 解析命令行参数
	var rawMode string
	flag.StringVar(&rawMode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()
	mode, err := app.ParseMode(rawMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ForService(serviceNameForMode(mode)))
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.UserJWT.SecretKey) {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else if isWeakSecret(cfg.UserJWT.SecretKey) {
		stdLog.Printf("警告: JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║                       🛒 EliteBuy API 启动中                        ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + "███████╗██╗     ██╗████████╗███████╗██████╗ ██╗   ██╗██╗   ██╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔════╝██║     ██║╚══██╔══╝██╔════╝██╔══██╗██║   ██║╚██╗ ██╔╝" + ansiReset)
	fmt.Println(ansiCyan + "█████╗  ██║     ██║   ██║   █████╗  ██████╔╝██║   ██║ ╚████╔╝ " + ansiReset)
	fmt.Println(ansiCyan + "██╔══╝  ██║     ██║   ██║   ██╔══╝  ██╔══██╗██║   ██║  ╚██╔╝  " + ansiReset)
	fmt.Println(ansiCyan + "███████╗███████╗██║   ██║   ███████╗██████╔╝╚██████╔╝   ██║   " + ansiReset)
	fmt.Println(ansiCyan + "╚══════╝╚══════╝╚═╝   ╚═╝   ╚══════╝╚═════╝  ╚═════╝    ╚═╝   " + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Storefront API" + ansiReset)
	fmt.Println(ansiBlue + "• Public:  /api/v1/products, /api/v1/categories" + ansiReset)
	fmt.Println(ansiBlue + "• User:    /api/v1/me, /api/v1/cart, /api/v1/checkout" + ansiReset)
	fmt.Println(ansiBlue + "• Admin:   /api/v1/admin" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func serviceNameForMode(mode string) string {
	if mode == app.ModeWorker {
		return "elitebuy-worker"
	}
	return "elitebuy-api"
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
