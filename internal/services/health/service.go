package health

import (
	"context"
	"time"
)

const (
	ServiceName = "ai-engine-service"
	Version     = "1.0.0"

	StatusUp      = "UP"
	StatusDown    = "DOWN"
	StatusUnknown = "UNKNOWN"

	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"

	StatusReady    = "READY"
	StatusNotReady = "NOT_READY"

	statusTimeLayout = "2006-01-02 15:04:05"

	messageOperational = "AI Engine Service is operational with database connectivity"
	messageDegraded    = "AI Engine Service is degraded - database connectivity issue: "
)

// HealthResponse is the liveness payload served on /health.
type HealthResponse struct {
	Status   string  `json:"status"`
	Version  string  `json:"version"`
	Uptime   float64 `json:"uptime"`
	Service  string  `json:"service"`
	Database string  `json:"database"`
}

// ServiceStatusResponse reports the outcome of an on-demand database probe.
type ServiceStatusResponse struct {
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// ReadinessResponse is served on /ready.
type ReadinessResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	CheckedAt string `json:"checked_at"`
	Error     string `json:"error,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	started time.Time
	now     func() time.Time
	prober  *Prober
}

// NewService constructs a health service. started is the process boot time.
func NewService(prober *Prober, started time.Time, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{started: started, now: now, prober: prober}
}

// Health returns the liveness payload. The database field mirrors the
// prober cache and never triggers a probe of its own.
func (s *Service) Health() HealthResponse {
	uptime := s.now().Sub(s.started).Seconds()
	if uptime < 0 {
		uptime = 0
	}
	return HealthResponse{
		Status:   StatusUp,
		Version:  Version,
		Uptime:   uptime,
		Service:  ServiceName,
		Database: s.prober.Last().Status,
	}
}

// ServiceStatus probes the database once and describes the outcome.
func (s *Service) ServiceStatus(ctx context.Context) ServiceStatusResponse {
	res := s.prober.CheckNow(ctx)

	out := ServiceStatusResponse{
		Service:   ServiceName,
		Timestamp: s.now().Format(statusTimeLayout),
		Database:  StatusUp,
		Status:    StatusSuccess,
		Message:   messageOperational,
	}
	if res.Status != StatusUp {
		out.Database = StatusDown
		out.Status = StatusFailure
		out.Message = messageDegraded + res.Err
	}
	return out
}

// Readiness probes the database once and reports whether traffic should be routed here.
func (s *Service) Readiness(ctx context.Context) (ReadinessResponse, bool) {
	res := s.prober.CheckNow(ctx)
	out := ReadinessResponse{
		Status:    StatusReady,
		Database:  res.Status,
		CheckedAt: res.CheckedAt.UTC().Format(time.RFC3339),
	}
	if res.Status != StatusUp {
		out.Status = StatusNotReady
		out.Error = res.Err
		return out, false
	}
	return out, true
}
