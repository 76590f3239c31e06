package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcadapter "student-records/internal/adapter/grpc"
	usecase "student-records/internal/usecase/student"
	"student-records/pkg/logger"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(uc usecase.Usecase, l *zap.Logger) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
		),
	)
	grpcadapter.RegisterStudentServiceServer(grpcServer, grpcadapter.NewStudentService(uc, l))

	return grpcServer
}
