// Package notify publishes ingestion run summaries to an operator-owned
// webhook. Delivery is best effort; ingestion never depends on it.
package notify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/sbathletics/gridiron-ingest/internal/platform/resilience"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookPublisherConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	Retries        int
	CircuitBreaker resilience.CircuitBreakerConfig
}

type WebhookPublisher struct {
	client         *fasthttp.Client
	url            string
	token          string
	timeout        time.Duration
	retries        int
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *slog.Logger) *WebhookPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookPublisher{
		client:         &fasthttp.Client{},
		url:            strings.TrimSpace(cfg.URL),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		retries:        cfg.Retries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Publish posts the payload as JSON. Transient failures are retried with a
// short pause; the circuit breaker sheds calls once the endpoint is clearly
// down.
func (p *WebhookPublisher) Publish(ctx context.Context, payload any) error {
	if p.url == "" {
		return crerr.New("webhook url is required")
	}
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook circuit breaker rejected request", "state", p.breaker.State())
			return crerr.Wrap(err, "webhook is temporarily unavailable")
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return crerr.Wrap(err, "marshal webhook payload")
	}

	var lastErr error
	attempts := p.retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		lastErr = p.post(buf.Bytes())
		if lastErr == nil {
			p.recordCircuitResult(nil)
			p.logger.InfoContext(ctx, "webhook delivered", "url", p.url, "attempt", attempt+1)
			return nil
		}
		if !crerr.Is(lastErr, errWebhookTransient) {
			break
		}
		p.logger.WarnContext(ctx, "webhook delivery failed", "url", p.url, "attempt", attempt+1, "error", lastErr)
	}

	p.recordCircuitResult(lastErr)
	return lastErr
}

func (p *WebhookPublisher) post(body []byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(body)

	if err := p.client.DoDeadline(req, resp, time.Now().Add(p.timeout)); err != nil {
		return crerr.Wrapf(errWebhookTransient, "post webhook: %v", err)
	}

	status := resp.StatusCode()
	switch {
	case status/100 == 2:
		return nil
	case status == fasthttp.StatusTooManyRequests || status/100 == 5:
		return crerr.Wrapf(errWebhookTransient, "post webhook: status=%d body=%s", status, truncate(resp.Body(), 512))
	default:
		return crerr.Newf("post webhook: status=%d body=%s", status, truncate(resp.Body(), 512))
	}
}

func (p *WebhookPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled {
		return
	}
	if err != nil {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func truncate(body []byte, limit int) string {
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
