package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	ginhandler "student-records/internal/adapter/gin/handler"
	"student-records/internal/config"
	usecase "student-records/internal/usecase/student"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
	GRPC   *grpc.Server // nil unless GRPC_ENABLED
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, uc usecase.Usecase, handler *ginhandler.StudentHandler) *Server {
	s := &Server{
		Config: cfg,
		Logger: l,
		Gin:    SetupGinServer(handler, cfg, l),
	}
	if cfg.App.GRPCEnabled {
		s.GRPC = SetupGRPC(uc, l)
	}
	return s
}

// Start runs the REST server and, when enabled, the gRPC server. It returns
// as soon as either of them stops; the caller shuts the other one down.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 2)

	if s.GRPC != nil {
		lc := net.ListenConfig{}
		lis, err := lc.Listen(ctx, "tcp", s.Config.App.GRPCAddr())
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", s.Config.App.GRPCAddr(), err)
		}

		go func() {
			s.Logger.Info("gRPC server running", zap.String("address", s.Config.App.GRPCAddr()))
			if err := s.GRPC.Serve(lis); err != nil {
				errCh <- fmt.Errorf("gRPC server: %w", err)
				return
			}
			errCh <- nil
		}()
	}

	go func() {
		s.Logger.Info("REST API running", zap.String("address", s.Gin.Addr))
		if err := s.Gin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("REST server: %w", err)
			return
		}
		errCh <- nil
	}()

	return <-errCh
}
