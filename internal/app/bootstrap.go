package app

import (
	"context"
	"errors"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/provider"
	"github.com/autoparts-enquiry/internal/router"
	"github.com/autoparts-enquiry/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	// 容器最先注册、最后停止，HTTP 与 Worker 停止后再释放实时连接和队列客户端
	services := []Service{&containerService{container: container}}

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		httpService := NewHTTPService(cfg.Server, engine)
		services = append(services, httpService)
	}

	// 初始化 Worker 服务（all 模式下队列未启用时跳过，通知改为直接发送）
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, cfg.Worker, consumer)
		if err != nil {
			container.Close(context.Background())
			return nil, err
		}
		services = append(services, workerService)
	} else if mode == ModeAll {
		logger.Infow("app_worker_skipped_queue_disabled")
	}

	if len(services) == 1 {
		container.Close(context.Background())
		return nil, errors.New("no services initialized (check mode and config)")
	}
	return NewRunner(services...), nil
}

// containerService 在运行器停止时释放容器资源（实时连接、队列客户端）
type containerService struct {
	container *provider.Container
}

func (s *containerService) Name() string {
	return "container"
}

func (s *containerService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *containerService) Stop(ctx context.Context) error {
	s.container.Close(ctx)
	return nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
