package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	CorrelationHeader = "X-Correlation-ID"
	DefaultTimeout    = 5 * time.Second
)

type DeliveryRequest struct {
	URL           string
	Payload       any
	CorrelationID string
	Timeout       time.Duration
}

// DeliveryOutcome é o resultado de uma tentativa. Só Success importa para quem chama;
// o resto é para log e métricas.
type DeliveryOutcome struct {
	Success       bool
	CorrelationID string
	StatusCode    int
	Duration      time.Duration
	Err           error
}

// Observer recebe todo outcome (métricas, testes).
type Observer func(DeliveryOutcome)

type Options struct {
	Transport http.RoundTripper
	Observer  Observer
	Logger    *log.Logger
}

type Dispatcher struct {
	transport http.RoundTripper
	observer  Observer
	logger    *log.Logger
}

func NewDispatcher(opts Options) *Dispatcher {
	transport := opts.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.DisableKeepAlives = true
		transport = t
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		transport: transport,
		observer:  opts.Observer,
		logger:    logger,
	}
}

// Deliver faz um único POST JSON e nunca devolve erro: toda falha vira Success=false.
// Não tenta de novo.
func (d *Dispatcher) Deliver(ctx context.Context, req DeliveryRequest) DeliveryOutcome {
	d.logger.Printf("📤 [WEBHOOK] enviando para %s correlation_id=%s", redactURL(req.URL), req.CorrelationID)

	start := time.Now()
	outcome := d.send(ctx, req)
	outcome.CorrelationID = req.CorrelationID
	outcome.Duration = time.Since(start)

	d.report(req, outcome)
	return outcome
}

// Dispatch roda Deliver desacoplado do request que disparou. O canal recebe
// exatamente um outcome e depois é fechado; quem não quiser esperar ignora.
func (d *Dispatcher) Dispatch(ctx context.Context, req DeliveryRequest) <-chan DeliveryOutcome {
	done := make(chan DeliveryOutcome, 1)
	detached := context.WithoutCancel(ctx)

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				outcome := DeliveryOutcome{
					CorrelationID: req.CorrelationID,
					Err:           fmt.Errorf("webhook panic: %v", r),
				}
				d.report(req, outcome)
				done <- outcome
			}
		}()
		done <- d.Deliver(detached, req)
	}()

	return done
}

func (d *Dispatcher) send(ctx context.Context, req DeliveryRequest) DeliveryOutcome {
	target, err := url.Parse(req.URL)
	if err != nil || !target.IsAbs() || target.Host == "" {
		return DeliveryOutcome{Err: fmt.Errorf("invalid webhook url %q", req.URL)}
	}

	body, err := json.Marshal(req.Payload)
	if err != nil {
		return DeliveryOutcome{Err: fmt.Errorf("erro ao serializar payload: %w", err)}
	}

	timeout := effectiveTimeout(req)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return DeliveryOutcome{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.CorrelationID != "" {
		httpReq.Header.Set(CorrelationHeader, req.CorrelationID)
	}

	// Client por chamada: nada compartilhado entre entregas. Redirect conta como falha.
	client := &http.Client{
		Timeout:   timeout,
		Transport: d.transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return DeliveryOutcome{Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	outcome := DeliveryOutcome{StatusCode: resp.StatusCode}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		outcome.Success = true
	} else {
		outcome.Err = fmt.Errorf("webhook respondeu status %d", resp.StatusCode)
	}
	return outcome
}

func (d *Dispatcher) report(req DeliveryRequest, outcome DeliveryOutcome) {
	switch {
	case outcome.Success:
		d.logger.Printf("✅ [WEBHOOK] entregue url=%s status=%d duration=%s correlation_id=%s",
			redactURL(req.URL), outcome.StatusCode, outcome.Duration.Round(time.Millisecond), outcome.CorrelationID)
	case outcome.StatusCode != 0:
		d.logger.Printf("⚠️ [WEBHOOK] falhou url=%s status=%d correlation_id=%s",
			redactURL(req.URL), outcome.StatusCode, outcome.CorrelationID)
	default:
		d.logger.Printf("❌ [WEBHOOK] erro url=%s correlation_id=%s: %v",
			redactURL(req.URL), outcome.CorrelationID, outcome.Err)
	}

	d.observe(outcome)
}

// observe entrega o outcome ao Observer; panic no Observer não sai do Deliver.
func (d *Dispatcher) observe(outcome DeliveryOutcome) {
	if d.observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Printf("❌ [WEBHOOK] observer panic correlation_id=%s: %v", outcome.CorrelationID, r)
		}
	}()
	d.observer(outcome)
}

// effectiveTimeout aplica o DefaultTimeout quando o chamador não define um.
func effectiveTimeout(req DeliveryRequest) time.Duration {
	if req.Timeout <= 0 {
		return DefaultTimeout
	}
	return req.Timeout
}

// Logic App URLs carregam a assinatura (sig=...) na query; não vai para o log.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
