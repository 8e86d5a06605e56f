package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/paulohenriquejustino/payment-gateway/app/controller"
	gatewaygrpc "github.com/paulohenriquejustino/payment-gateway/app/grpc"
	"github.com/paulohenriquejustino/payment-gateway/app/metrics"
	"github.com/paulohenriquejustino/payment-gateway/app/network"
	"github.com/paulohenriquejustino/payment-gateway/app/provider"
	"github.com/paulohenriquejustino/payment-gateway/app/service"
	"github.com/paulohenriquejustino/payment-gateway/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const metricsNamespace = "payment_gateway"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  "Start the HTTP (Echo) payment gateway and the gRPC health server.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

var routes = []controller.Route{
	{Method: http.MethodGet, Path: "/", Description: "Status page"},
	{Method: http.MethodGet, Path: "/health", Description: "Health check"},
	{Method: http.MethodPost, Path: "/create-payment-intent", Description: "Create a payment intent"},
	{Method: http.MethodPost, Path: "/webhook", Description: "Stripe webhook receiver"},
	{Method: http.MethodGet, Path: "/metrics", Description: "Prometheus metrics"},
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	warnMissingSecrets(cfg)

	collector := metrics.NewCollector(metricsNamespace, prometheus.NewRegistry())
	paymentService := newPaymentService(cfg, collector)

	info := controller.ServerInfo{
		Address:     newResolver(cfg, network.SystemInterfaces{}).Resolve(),
		Port:        cfg.HTTP.Port,
		Environment: cfg.App.Environment,
		Routes:      routes,
	}

	e := setupHTTPServer(
		controller.NewPaymentController(paymentService),
		controller.NewStatusController(info),
		collector,
	)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	var grpcSrv *gatewaygrpc.Server
	if cfg.GRPC.Enabled {
		var lis net.Listener
		grpcSrv, lis = setupGRPCServer(cfg)
		go func() {
			logrus.WithField("addr", lis.Addr().String()).Info("Starting gRPC server")
			if err := grpcSrv.Serve(lis); err != nil {
				logrus.WithError(err).Fatal("gRPC server error")
			}
		}()
	}

	printBanner(cmd.OutOrStdout(), info)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}

	logrus.Info("Server stopped")
}

func newPaymentService(cfg *config.Config, collector *metrics.Collector) *service.PaymentService {
	stripeProvider := provider.NewStripeProvider(provider.StripeConfig{
		SecretKey:                 cfg.Stripe.SecretKey,
		WebhookSecret:             cfg.Stripe.WebhookSecret,
		APIBaseURL:                cfg.Stripe.APIBaseURL,
		SignatureToleranceSeconds: cfg.Stripe.SignatureToleranceSeconds,
	})
	return service.NewPaymentService(stripeProvider, collector, cfg.Payments)
}

func warnMissingSecrets(cfg *config.Config) {
	if strings.TrimSpace(cfg.Stripe.SecretKey) == "" {
		logrus.Warn("STRIPE_SECRET_KEY is not set; payment intent creation will fail")
	}
	if strings.TrimSpace(cfg.Stripe.WebhookSecret) == "" {
		logrus.Warn("STRIPE_WEBHOOK_SECRET is not set; every webhook will be rejected")
	}
}

func setupHTTPServer(
	paymentController *controller.PaymentController,
	statusController *controller.StatusController,
	collector *metrics.Collector,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": v.RequestID,
				"timestamp":  v.StartTime.UTC().Format(time.RFC3339Nano),
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(collector.Middleware())

	e.GET("/", statusController.Index)
	e.GET("/health", statusController.Health)
	e.POST("/create-payment-intent", paymentController.CreatePaymentIntent)
	e.POST("/webhook", paymentController.HandleWebhook)
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))

	return e
}

func setupGRPCServer(cfg *config.Config) (*gatewaygrpc.Server, net.Listener) {
	grpcAddr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	return gatewaygrpc.NewServer(), lis
}

func printBanner(w io.Writer, info controller.ServerInfo) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Payment gateway is running")
	fmt.Fprintf(w, "  Environment: %s\n", info.Environment)
	fmt.Fprintf(w, "  Local:       http://localhost:%s\n", info.Port)
	fmt.Fprintf(w, "  Network:     http://%s:%s\n", info.Address, info.Port)
	fmt.Fprintln(w, "  Routes:")
	for _, r := range info.Routes {
		fmt.Fprintf(w, "    %-6s %-24s %s\n", r.Method, r.Path, r.Description)
	}
	fmt.Fprintln(w)
}
