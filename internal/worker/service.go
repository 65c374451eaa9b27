package worker

import (
	"context"
	"errors"
	"time"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name         string
	server       *asynq.Server
	mux          *asynq.ServeMux
	consumer     *Consumer
	scanInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, workerCfg config.WorkerConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:         "worker",
		server:       server,
		mux:          mux,
		consumer:     consumer,
		scanInterval: time.Duration(workerCfg.LowStockScanMinutes) * time.Minute,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.scanInterval > 0 && s.consumer != nil {
		go s.runLowStockScanLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runLowStockScanLoop(ctx context.Context) {
	runOnce := func() {
		if err := s.consumer.scheduleLowStockAlert(time.Now()); err != nil {
			logger.Warnw("worker_low_stock_scan_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

// scheduleLowStockAlert 按当日日期入队低库存提醒，同日重复调用只会入队一次
func (c *Consumer) scheduleLowStockAlert(now time.Time) error {
	if c == nil || c.QueueClient == nil || c.DashboardService == nil {
		return nil
	}
	return c.QueueClient.EnqueueLowStockAlert(buildLowStockPayload(c.DashboardService.LowStockThreshold(nil), now))
}

func buildLowStockPayload(threshold int, now time.Time) queue.LowStockAlertPayload {
	return queue.LowStockAlertPayload{
		Threshold: threshold,
		Day:       now.Format("2006-01-02"),
	}
}
