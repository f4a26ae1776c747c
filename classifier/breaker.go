package classifier

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sentify/contract"
	"sentify/domain"
	"sentify/observability"

	gobreaker "github.com/sony/gobreaker/v2"
)

type BreakerConfig struct {
	FailureThreshold uint32
	Timeout          time.Duration
	MaxRequests      uint32
}

// Breaker stops calling a failing classifier until Timeout has elapsed.
type Breaker struct {
	next    contract.Classifier
	backend string
	cb      *gobreaker.CircuitBreaker[[]domain.Observation]
}

func NewBreaker(next contract.Classifier, backend string, cfg BreakerConfig, log *slog.Logger) *Breaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	settings := gobreaker.Settings{
		Name:        backend,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Classifier breaker state changed", "backend", name, "from", from.String(), "to", to.String())
			observability.SetBreakerState(name, to.String())
		},
		// A caller giving up says nothing about the classifier health.
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	}
	observability.SetBreakerState(backend, gobreaker.StateClosed.String())
	return &Breaker{
		next:    next,
		backend: backend,
		cb:      gobreaker.NewCircuitBreaker[[]domain.Observation](settings),
	}
}

func (b *Breaker) Classify(ctx context.Context, text string) ([]domain.Observation, error) {
	return b.cb.Execute(func() ([]domain.Observation, error) {
		return b.next.Classify(ctx, text)
	})
}

func (b *Breaker) State() string {
	return b.cb.State().String()
}
