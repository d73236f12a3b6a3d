package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ogurasousui/shift-scheduler/internal/adapters/grpc/middleware"
	"github.com/ogurasousui/shift-scheduler/internal/adapters/grpc/schedulingrpc"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zap.Logger
}

// New は SchedulingService とヘルスチェックを登録した gRPC サーバーを構築します。
// 追加の opts は既定のインターセプタと stats handler の後に適用されます。
func New(listenAddr string, scheduling schedulingrpc.SchedulingServiceServer, logger *zap.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	serverOpts := append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			middleware.UnaryRecovery(logger),
			middleware.UnaryLogging(logger),
		),
	}, opts...)

	srv := grpc.NewServer(serverOpts...)
	schedulingrpc.RegisterSchedulingServiceServer(srv, scheduling)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(schedulingrpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     hs,
		logger:     logger,
	}
}

// Run は listenAddr で待ち受け、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は lis で待ち受けます。Run と同じくコンテキストのキャンセルで停止します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			s.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}
	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
