package classifier

import (
	"context"
	"time"

	"sentify/contract"
	"sentify/domain"
	"sentify/observability"
)

// Instrumented records the duration and failures of every call.
type Instrumented struct {
	next    contract.Classifier
	backend string
}

func NewInstrumented(next contract.Classifier, backend string) *Instrumented {
	return &Instrumented{next: next, backend: backend}
}

func (i *Instrumented) Classify(ctx context.Context, text string) ([]domain.Observation, error) {
	start := time.Now()
	observations, err := i.next.Classify(ctx, text)
	observability.RecordClassifierCall(i.backend, time.Since(start), err)
	return observations, err
}
