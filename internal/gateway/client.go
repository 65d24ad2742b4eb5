package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/gateway/dto/response"
	"github.com/agrimarket/escrow-client/internal/infrastructure/metrics"
	"github.com/agrimarket/escrow-client/internal/session"
)

// Client talks to the marketplace gateway. Every response is wrapped in the
// isSuccess envelope; every mutating call returns the fresh authoritative
// snapshot.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	metrics *metrics.EscrowMetrics
}

func NewClient(baseURL string, timeout time.Duration, sess *session.Session, m *metrics.EscrowMetrics) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		session: sess,
		metrics: m,
	}
}

// do sends one request and decodes the envelope. On a 401 it refreshes the
// session token and retries exactly once; there are no other retries here,
// financial operations must not be retried blindly.
func (c *Client) do(ctx context.Context, method, path, endpoint string, body any, out any) error {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return &domain.TransportError{Op: endpoint, Err: err}
		}
	}

	started := time.Now()
	defer func() {
		c.metrics.ObserveGatewayRequest(endpoint, time.Since(started))
	}()

	token := c.session.Token()
	for attempt := 0; ; attempt++ {
		var reader io.Reader
		if bodyBytes != nil {
			reader = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return &domain.TransportError{Op: endpoint, Err: err}
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return &domain.TransportError{Op: endpoint, Err: err}
		}
		respBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return &domain.TransportError{Op: endpoint, Err: err}
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			token, err = c.session.Refresh(ctx)
			if err != nil {
				return &domain.TransportError{Op: endpoint, Err: fmt.Errorf("token refresh: %w", err)}
			}
			continue
		}

		return c.decode(endpoint, resp.StatusCode, respBytes, out)
	}
}

func (c *Client) decode(endpoint string, statusCode int, respBytes []byte, out any) error {
	var env response.Envelope
	if err := json.Unmarshal(respBytes, &env); err != nil {
		if statusCode >= 400 {
			return &domain.TransportError{Op: endpoint, Err: fmt.Errorf("http %d with undecodable body", statusCode)}
		}
		return &domain.TransportError{Op: endpoint, Err: err}
	}

	if !env.IsSuccess {
		reason := env.Error
		if reason == "" {
			reason = fmt.Sprintf("http %d", statusCode)
		}
		return domain.NewRemoteError(reason)
	}

	if out != nil {
		if len(env.Data) == 0 {
			return &domain.TransportError{Op: endpoint, Err: fmt.Errorf("missing response data")}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &domain.TransportError{Op: endpoint, Err: err}
		}
	}
	return nil
}
