package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/pokedex-api/internal/health"
)

var (
	healthAddr    string
	healthService string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the gateway's gRPC health service",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthAddr, "grpc-addr", "localhost:50051", "gRPC health service address")
	healthCmd.Flags().StringVar(&healthService, "service", health.ServiceName, "Service to check, empty for overall status")
}

func runHealth(_ *cobra.Command, _ []string) error {
	conn, err := createConnection(healthAddr)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: healthService,
	})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Println(resp.GetStatus().String())
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("gateway is %s", resp.GetStatus())
	}
	return nil
}
