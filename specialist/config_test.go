package specialist

import (
	"context"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"

	"sentify/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func TestStartSpecialist_MissingBinary(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	_, err := StartSpecialist(context.Background(), Config{
		ID:      "classifier",
		BinPath: filepath.Join(t.TempDir(), "nope"),
		Host:    "127.0.0.1",
		Port:    1,
	}, log)
	req.ErrorIs(err, errors.ErrSpecialistStartFailed)
}

func TestDialWithRetry_Ready(t *testing.T) {
	req := require.New(t)

	// Given a gRPC server listening on a random port
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	req.NoError(err)
	s := grpc.NewServer()
	go func() { _ = s.Serve(lis) }()
	defer s.Stop()

	// Then the connection becomes ready
	port := lis.Addr().(*net.TCPAddr).Port
	conn, err := dialWithRetry(context.Background(), "127.0.0.1", port, 2*time.Second)
	req.NoError(err)
	req.NoError(conn.Close())
}

func TestDialWithRetry_NobodyListening(t *testing.T) {
	req := require.New(t)

	// Given a port nobody listens on
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	req.NoError(err)
	port := lis.Addr().(*net.TCPAddr).Port
	req.NoError(lis.Close())

	_, err = dialWithRetry(context.Background(), "127.0.0.1", port, 300*time.Millisecond)
	req.ErrorIs(err, errors.ErrSpecialistUnavailable)
}

func TestConnect_ExistingServer(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	req.NoError(err)
	s := grpc.NewServer()
	go func() { _ = s.Serve(lis) }()
	defer s.Stop()

	sidecar, err := Connect(context.Background(), Config{
		ID:           "remote",
		Host:         "127.0.0.1",
		Port:         lis.Addr().(*net.TCPAddr).Port,
		ReadyTimeout: 2 * time.Second,
	}, log)
	req.NoError(err)
	req.Zero(sidecar.PID())
	sidecar.Stop()
}
