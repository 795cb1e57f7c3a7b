package inference

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// Provider turns a model name and its features into a prediction.
type Provider interface {
	Predict(ctx context.Context, modelName string, features map[string]any) (Prediction, error)
}

const (
	LabelNormal  = "normal"
	LabelAnomaly = "anomaly"
)

// Bounds is a closed interval used for generated values.
type Bounds struct {
	Min float64
	Max float64
}

func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

var (
	AnomalyConfidence  = Bounds{Min: 0.7, Max: 0.99}
	ForecastConfidence = Bounds{Min: 0.6, Max: 0.95}
	ScalarConfidence   = Bounds{Min: 0.5, Max: 0.99}

	NextHourRange = Bounds{Min: 80, Max: 120}
	NextDayRange  = Bounds{Min: 70, Max: 130}
	NextWeekRange = Bounds{Min: 60, Max: 140}
	ScalarRange   = Bounds{Min: 0, Max: 100}
)

// Family is the response shape selected from a model name.
type Family int

const (
	FamilyScalar Family = iota
	FamilyAnomaly
	FamilyForecast
)

// FamilyOf classifies a model name by case-sensitive substring.
// "anomaly" wins over "forecast" when both appear.
func FamilyOf(modelName string) Family {
	switch {
	case strings.Contains(modelName, "anomaly"):
		return FamilyAnomaly
	case strings.Contains(modelName, "forecast"):
		return FamilyForecast
	default:
		return FamilyScalar
	}
}

// RandomProvider fabricates predictions without looking at features.
type RandomProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomProvider seeds a provider; equal seeds yield equal sequences.
func NewRandomProvider(seed uint64) *RandomProvider {
	return &RandomProvider{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededProvider seeds from the wall clock.
func NewTimeSeededProvider() *RandomProvider {
	return NewRandomProvider(uint64(time.Now().UnixNano()))
}

func (p *RandomProvider) Predict(ctx context.Context, modelName string, _ map[string]any) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch FamilyOf(modelName) {
	case FamilyAnomaly:
		label := LabelNormal
		if p.rng.IntN(2) == 1 {
			label = LabelAnomaly
		}
		return Prediction{Value: label, Confidence: p.uniform(AnomalyConfidence)}, nil
	case FamilyForecast:
		forecast := Forecast{
			NextHour: p.uniform(NextHourRange),
			NextDay:  p.uniform(NextDayRange),
			NextWeek: p.uniform(NextWeekRange),
		}
		return Prediction{Value: forecast, Confidence: p.uniform(ForecastConfidence)}, nil
	default:
		return Prediction{Value: p.uniform(ScalarRange), Confidence: p.uniform(ScalarConfidence)}, nil
	}
}

// uniform must be called with p.mu held.
func (p *RandomProvider) uniform(b Bounds) float64 {
	return b.Min + p.rng.Float64()*(b.Max-b.Min)
}
