package grpc

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported by the health service alongside the
// overall ("") status.
const ServiceName = "payment-gateway"

// Server exposes the operational gRPC surface: the standard health service
// behind the recovery, request id and logging interceptors.
type Server struct {
	srv    *grpc.Server
	health *health.Server
}

func NewServer(opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(),
			RequestIDInterceptor(),
			LoggingInterceptor(),
		),
	}, opts...)

	srv := grpc.NewServer(opts...)
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)

	return &Server{srv: srv, health: healthSrv}
}

func (s *Server) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

// GracefulStop flips every service to NOT_SERVING before draining
// in-flight calls.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}
