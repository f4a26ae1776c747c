package specialist

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"

	"sentify/errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
)

type Config struct {
	ID           string
	BinPath      string
	Host         string
	Port         int
	LogLevel     string
	ReadyTimeout time.Duration
}

// Sidecar is a classifier process launched by the server and the connection to it.
type Sidecar struct {
	ID        string
	Conn      *grpc.ClientConn
	Port      int
	StartedAt time.Time
	cmd       *exec.Cmd
	log       *slog.Logger
}

// StartSpecialist launches the classifier binary as a child process linked to ctx
// and returns once its gRPC server is ready.
func StartSpecialist(ctx context.Context, cfg Config, log *slog.Logger) (*Sidecar, error) {
	if _, err := os.Stat(cfg.BinPath); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrSpecialistStartFailed, cfg.BinPath)
	}

	cmd := exec.CommandContext(ctx, cfg.BinPath, "--port", strconv.Itoa(cfg.Port), "--level", cfg.LogLevel)
	cmd.Stdout = &sidecarLogWriter{logger: log, id: cfg.ID}
	cmd.Stderr = &sidecarLogWriter{logger: log, id: cfg.ID, isError: true}
	setPlatformSpecificAttrs(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrSpecialistStartFailed, err)
	}

	conn, err := dialWithRetry(ctx, cfg.Host, cfg.Port, cfg.ReadyTimeout)
	if err != nil {
		// No zombie when the handshake fails.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, fmt.Errorf("%w on %s port %d: %v", errors.ErrSpecialistUnavailable, cfg.Host, cfg.Port, err)
	}

	log.Info("Classifier sidecar ready", "id", cfg.ID, "pid", cmd.Process.Pid, "port", cfg.Port)
	return &Sidecar{ID: cfg.ID, Conn: conn, Port: cfg.Port, StartedAt: time.Now(), cmd: cmd, log: log}, nil
}

// Connect attaches to a classifier that is already running, Stop then only closes the connection.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*Sidecar, error) {
	conn, err := dialWithRetry(ctx, cfg.Host, cfg.Port, cfg.ReadyTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w on %s port %d: %v", errors.ErrSpecialistUnavailable, cfg.Host, cfg.Port, err)
	}
	log.Info("Connected to classifier", "id", cfg.ID, "host", cfg.Host, "port", cfg.Port)
	return &Sidecar{ID: cfg.ID, Conn: conn, Port: cfg.Port, StartedAt: time.Now(), log: log}, nil
}

// PID is 0 when the process is not owned by this server.
func (s *Sidecar) PID() int {
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Stop closes the connection, then terminates and reaps the process.
func (s *Sidecar) Stop() {
	if err := s.Conn.Close(); err != nil {
		s.log.Warn("Closing sidecar connection", "id", s.ID, "error", err)
	}
	if s.cmd != nil {
		_ = s.cmd.Process.Kill()
		_ = s.cmd.Wait()
	}
	s.log.Info("Classifier sidecar stopped", "id", s.ID)
}

// dialWithRetry watches the connection state until it is READY instead of relying on the deprecated WithBlock,
// so no request reaches the sidecar before its engine is loaded.
func dialWithRetry(ctx context.Context, host string, port int, timeout time.Duration) (*grpc.ClientConn, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff: backoff.Config{
				BaseDelay:  100 * time.Millisecond,
				Multiplier: 1.6,
				Jitter:     0.2,
				MaxDelay:   3 * time.Second,
			},
		}),
	)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return conn, waitReady(ctx, conn, timeout)
}

func waitReady(ctx context.Context, conn *grpc.ClientConn, timeout time.Duration) error {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return nil
		}
		if !conn.WaitForStateChange(dialCtx, state) {
			_ = conn.Close()
			return errors.ErrSpecialistUnavailable
		}
	}
}
