package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statusHealthy       = "healthy"
	statusNotConfigured = "not configured"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type QueueStatus interface {
	Healthy() bool
}

type HealthHandler struct {
	DB        Pinger
	RabbitMQ  QueueStatus
	Redis     redis.Cmdable
	Version   string
	StartTime time.Time
	timeout   time.Duration
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler aceita nil em qualquer dependência (vira "not configured").
func NewHealthHandler(db Pinger, rabbitMQ QueueStatus, rdb redis.Cmdable, version string) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		Redis:     rdb,
		Version:   version,
		StartTime: time.Now(),
		timeout:   2 * time.Second,
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	deps := make(map[string]string)

	// Check Database
	if h.DB != nil {
		if err := h.DB.Ping(ctx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = statusHealthy
		}
	} else {
		deps["database"] = statusNotConfigured
	}

	// Check RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.Healthy() {
			deps["rabbitmq"] = statusHealthy
		} else {
			deps["rabbitmq"] = "unhealthy: connection closed"
		}
	} else {
		deps["rabbitmq"] = statusNotConfigured
	}

	// Check Redis (rate limiter)
	if h.Redis != nil {
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			deps["redis"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["redis"] = statusHealthy
		}
	} else {
		deps["redis"] = statusNotConfigured
	}

	status := statusHealthy
	for _, v := range deps {
		if v != statusHealthy && v != statusNotConfigured {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Message:      "Integrations API is running",
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
