package inference

import (
	"context"
	"fmt"
	"time"

	"ai-engine/internal/shared/metrics"
)

// Service times provider calls and assembles responses.
type Service struct {
	Provider Provider
	now      func() time.Time
}

func NewService(provider Provider, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{Provider: provider, now: now}
}

// Predict runs the provider for req. ProcessingTimeMs covers only the
// provider call.
func (s *Service) Predict(ctx context.Context, req InferenceRequest) (InferenceResponse, error) {
	metrics.IncPredictRequests()

	start := s.now()
	pred, err := s.Provider.Predict(ctx, req.ModelName, req.Features)
	elapsedMs := float64(s.now().Sub(start).Microseconds()) / 1000.0
	metrics.ObservePredictDurationMs(elapsedMs)
	if err != nil {
		metrics.IncPredictFailures()
		return InferenceResponse{}, fmt.Errorf("predict %s: %w", req.ModelName, err)
	}

	return InferenceResponse{
		ModelName:        req.ModelName,
		Prediction:       pred.Value,
		Confidence:       pred.Confidence,
		Timestamp:        s.now().Unix(),
		ProcessingTimeMs: elapsedMs,
	}, nil
}
