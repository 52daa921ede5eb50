package entityapi

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/platform/httpclient"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// CommandsPath is the peer endpoint accepting downstream commands.
const CommandsPath = "/api/v1/commands"

var (
	_ ports.CommandDispatcher = (*Dispatcher)(nil)
	_ ports.HealthChecker     = (*Dispatcher)(nil)
)

// Dispatcher posts downstream commands to the peer through an
// httpclient.Client. A command POST carries no Idempotency-Key, so the client
// only retries it when the peer cannot have applied it: a failed dial, 429
// or 503.
type Dispatcher struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewDispatcher returns a Dispatcher sending through client. The client's
// BaseURL points at the peer root.
func NewDispatcher(client *httpclient.Client, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{client: client, logger: logger}
}

// Dispatch implements ports.CommandDispatcher. The peer accepts a command
// with 202 once the owning entity has applied it.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd command.Downstream, meta command.Metadata) error {
	env, err := command.Encode(cmd, meta)
	if err != nil {
		return err
	}
	body, err := sonic.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", cmd.Kind(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.client.BaseURL()+CommandsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", cmd.Kind(), err)
	}
	req.Header.Set("Content-Type", "application/json")

	return d.execute(req, cmd.Kind())
}

// execute sends the request and checks for 202. It ensures resp.Body is
// always closed.
func (d *Dispatcher) execute(req *http.Request, kind command.Kind) error {
	ctx := req.Context()

	resp, err := d.client.Do(ctx, req)
	if err != nil {
		// httpclient.Do returns both resp and err when retries are exhausted
		// on a retryable status; translate the response in that case.
		if resp != nil {
			defer d.closeBody(ctx, resp)
			if resp.StatusCode != http.StatusAccepted {
				return TranslateHTTPError(resp)
			}
		}
		d.logger.ErrorContext(ctx, "command dispatch failed",
			slog.String("operation", "entityapi.Dispatch"),
			slog.String("command", kind.String()),
			slog.Any("error", err),
		)
		return fmt.Errorf("dispatching %s: %w", kind, err)
	}
	defer d.closeBody(ctx, resp)

	if resp.StatusCode != http.StatusAccepted {
		d.logger.WarnContext(ctx, "command rejected by entity api",
			slog.String("operation", "entityapi.Dispatch"),
			slog.String("command", kind.String()),
			slog.Int("status", resp.StatusCode),
		)
		return TranslateHTTPError(resp)
	}
	return nil
}

func (d *Dispatcher) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		d.logger.WarnContext(ctx, "failed to close response body",
			slog.Any("error", err),
		)
	}
}

// Name implements ports.HealthChecker.
func (d *Dispatcher) Name() string {
	return "entity-api"
}

// HealthCheck reports the peer's availability from the circuit breaker
// state. No network call is made.
func (d *Dispatcher) HealthCheck(ctx context.Context) error {
	return d.client.HealthCheck(ctx)
}
