package app

import (
	"errors"

	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/provider"
	"github.com/elitebuy/internal/router"
	"github.com/elitebuy/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, *provider.Container, error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, nil, err
	}

	db, err := provider.OpenDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	container, err := provider.NewContainer(cfg, db)
	if err != nil {
		return nil, nil, err
	}

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		httpService := NewHTTPService(cfg.Server, router.SetupRouter(cfg, container))
		if err := httpService.Listen(); err != nil {
			container.Close()
			return nil, nil, err
		}
		services = append(services, httpService)
	}

	// 初始化 Worker 服务，all 模式下队列未启用时跳过
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			container.Close()
			return nil, nil, err
		}
		services = append(services, workerService)
	} else if mode == ModeAll {
		logger.Infow("app_worker_skipped", "reason", "queue disabled")
	}

	if len(services) == 0 {
		container.Close()
		return nil, nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), container, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, container, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	defer container.Close()

	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Addr(),
		"mode", opts.Mode,
		"services", runner.Names(),
		"store", opts.Config.Database.Driver,
	)
	return RunWithOptions(runner, opts)
}
