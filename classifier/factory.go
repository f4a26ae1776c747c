package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sentify/ai"
	"sentify/contract"
	"sentify/errors"
	"sentify/infrastructure/grpc/client"
	"sentify/infrastructure/huggingface"
	"sentify/specialist"
)

type Backend string

const (
	BackendLexicon     Backend = "lexicon"
	BackendGRPC        Backend = "grpc"
	BackendHuggingFace Backend = "huggingface"
)

type Options struct {
	Backend          Backend
	Timeout          time.Duration
	BinPath          string
	Host             string
	Port             int
	LogLevel         string
	BootTimeout      time.Duration
	HuggingFaceURL   string
	HuggingFaceModel string
	HuggingFaceToken string
	Breaker          BreakerConfig
}

// Handle is the classifier the service talks to, wrapped with metrics and a circuit breaker.
type Handle struct {
	contract.Classifier
	Backend Backend
	Sidecar *specialist.Sidecar
	breaker *Breaker
}

// New builds the configured backend. The grpc backend launches the sidecar binary when BinPath is set,
// otherwise it connects to an already running classifier.
func New(ctx context.Context, opts Options, log *slog.Logger) (*Handle, error) {
	var (
		engine  contract.Classifier
		sidecar *specialist.Sidecar
	)

	switch opts.Backend {
	case BackendLexicon, "":
		opts.Backend = BackendLexicon
		engine = ai.NewLexicon()
	case BackendHuggingFace:
		engine = huggingface.NewClient(opts.HuggingFaceURL, opts.HuggingFaceModel, opts.HuggingFaceToken, opts.Timeout)
	case BackendGRPC:
		cfg := specialist.Config{
			ID:           string(BackendGRPC),
			BinPath:      opts.BinPath,
			Host:         opts.Host,
			Port:         opts.Port,
			LogLevel:     opts.LogLevel,
			ReadyTimeout: opts.BootTimeout,
		}
		if cfg.ReadyTimeout <= 0 {
			cfg.ReadyTimeout = 5 * time.Second
		}
		var err error
		if opts.BinPath != "" {
			sidecar, err = specialist.StartSpecialist(ctx, cfg, log)
		} else {
			sidecar, err = specialist.Connect(ctx, cfg, log)
		}
		if err != nil {
			return nil, err
		}
		engine = client.NewClassifierClient(sidecar.Conn)
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownBackend, opts.Backend)
	}

	backend := string(opts.Backend)
	breaker := NewBreaker(NewInstrumented(engine, backend), backend, opts.Breaker, log)
	log.Info("Classifier ready", "backend", backend)
	return &Handle{Classifier: breaker, Backend: opts.Backend, Sidecar: sidecar, breaker: breaker}, nil
}

func (h *Handle) State() string {
	return h.breaker.State()
}

func (h *Handle) Close() {
	if h.Sidecar != nil {
		h.Sidecar.Stop()
	}
}
