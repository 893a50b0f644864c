package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/elitebuy/internal/config"
)

// HTTPService 对外 API 服务
type HTTPService struct {
	server   *http.Server
	listener net.Listener
}

// NewHTTPService 创建 HTTP 服务，写超时需覆盖同步结算的模拟耗时
func NewHTTPService(cfg config.ServerConfig, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: seconds(cfg.ReadTimeoutSeconds),
			ReadTimeout:       seconds(cfg.ReadTimeoutSeconds),
			WriteTimeout:      seconds(cfg.WriteTimeoutSeconds),
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http"
}

// Listen 提前绑定端口，端口占用时在启动阶段报错
func (s *HTTPService) Listen() error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	return nil
}

// Addr 实际监听地址，未监听时返回配置地址
func (s *HTTPService) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Start 阻塞处理请求直到 Stop
func (s *HTTPService) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 等待进行中的请求完成后关闭
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
