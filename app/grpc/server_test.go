package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

func newHealthClientForTest(t *testing.T) (healthpb.HealthClient, *Server) {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := NewServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn), srv
}

func TestHealthCheckServing(t *testing.T) {
	client, _ := newHealthClientForTest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, service := range []string{"", ServiceName} {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			t.Fatalf("check %q failed: %v", service, err)
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			t.Fatalf("expected SERVING for %q, got %v", service, resp.GetStatus())
		}
	}
}

func TestHealthCheckEchoesRequestID(t *testing.T) {
	client, _ := newHealthClientForTest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, requestIDHeader, "grpc-req-1")

	var header metadata.MD
	if _, err := client.Check(ctx, &healthpb.HealthCheckRequest{}, grpc.Header(&header)); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if got := header.Get(requestIDHeader); len(got) != 1 || got[0] != "grpc-req-1" {
		t.Fatalf("expected echoed request id, got %v", got)
	}
}
