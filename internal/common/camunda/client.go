// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"grocery-assistant/internal/common/config"
)

// Client wraps the Zeebe gRPC client.
type Client struct {
	client         zbc.Client
	requestTimeout time.Duration
}

// RetryConfig defines how many times the initial connection is attempted.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = RetryConfig{
	MaxRetries: 10,
	BaseDelay:  time.Second,
	MaxDelay:   10 * time.Second,
}

// Connect dials the broker and waits until a topology request succeeds,
// backing off exponentially between attempts.
func Connect(ctx context.Context, cfg config.CamundaConfig, retry RetryConfig) (*Client, error) {
	requestTimeout := config.GetDuration(cfg.RequestTimeout)
	var lastErr error

	for attempt := 0; attempt <= retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := retry.BaseDelay * time.Duration(1<<(attempt-1))
			if delay > retry.MaxDelay {
				delay = retry.MaxDelay
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connect to zeebe cancelled after %d attempts: %w", attempt, ctx.Err())
			}
		}

		zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.BrokerAddress,
			UsePlaintextConnection: true,
		})
		if err != nil {
			lastErr = err
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		_, err = zeebeClient.NewTopologyCommand().Send(probeCtx)
		cancel()
		if err == nil {
			return &Client{client: zeebeClient, requestTimeout: requestTimeout}, nil
		}

		zeebeClient.Close()
		lastErr = err
		if !isRetryableZeebeError(err) {
			break
		}
	}

	return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.BrokerAddress, lastErr)
}

// Zeebe returns the raw client for opening job workers.
func (c *Client) Zeebe() zbc.Client {
	return c.client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck performs a topology request against the broker.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

func isRetryableZeebeError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"unavailable",
		"unreachable",
		"broken pipe",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
