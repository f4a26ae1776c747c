//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"sentify/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Classifier scores a text on the 1..5 star scale.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]domain.Observation, error)
}

// RandomSource must be safe for concurrent use.
type RandomSource interface {
	IntN(n int) int
}

type AnalysisSink interface {
	Consume(ctx context.Context, analysis domain.MoodAnalysis) error
	Flush(ctx context.Context) error
}
