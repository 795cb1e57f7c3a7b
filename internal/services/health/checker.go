package health

import (
	"context"
	"errors"

	"ai-engine/internal/shared/metrics"
	"ai-engine/internal/shared/storage/db"
	"ai-engine/internal/shared/util"
)

// Checker verifies that a dependency is reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// DBChecker probes Postgres with a fresh connection per check.
// Password is masked in returned errors since they end up in response bodies.
type DBChecker struct {
	DSN      string
	Options  db.Options
	Password string
}

func (c DBChecker) Check(ctx context.Context) error {
	err := db.Probe(ctx, c.DSN, c.Options)
	metrics.ObserveDBProbe(err != nil)
	if err != nil && c.Password != "" {
		return errors.New(util.RedactPassword(err.Error(), c.Password))
	}
	return err
}
