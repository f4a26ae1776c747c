package client

import (
	"context"
	"log/slog"
	"net"
	"testing"

	"sentify/ai"
	"sentify/contract"
	"sentify/domain"
	"sentify/errors"
	"sentify/infrastructure/grpc/server"
	"sentify/infrastructure/grpc/wire"
	"sentify/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// startBufServer serves engine on an in-memory listener and returns a client connected to it.
func startBufServer(t *testing.T, engine contract.Classifier) *ClassifierClient {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	lis := bufconn.Listen(1024 * 1024)

	s := grpc.NewServer()
	wire.RegisterClassifierServer(s, server.NewClassifierServer("test", engine, log))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewClassifierClient(conn)
}

func TestClassifierClient_RoundTrip(t *testing.T) {
	req := require.New(t)
	client := startBufServer(t, ai.NewLexicon())

	// When the remote lexicon classifies a positive text
	observations, err := client.Classify(context.Background(), "I love it, absolutely amazing")

	// Then the five star labels come back in order
	req.NoError(err)
	req.Len(observations, 5)
	req.Equal("1 star", observations[0].Label)
	req.Equal("5 stars", observations[4].Label)
	req.Greater(observations[4].Probability, observations[0].Probability)
}

func TestClassifierClient_EngineFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockClassifier(ctrl)

	// Given an engine that fails
	engine.EXPECT().Classify(gomock.Any(), "hello").Return(nil, context.DeadlineExceeded)
	client := startBufServer(t, engine)

	// Then the client reports the classifier as unavailable
	_, err := client.Classify(context.Background(), "hello")
	req.ErrorIs(err, errors.ErrClassifierUnavailable)
}

func TestClassifierClient_PassesObservationsThrough(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockClassifier(ctrl)

	expected := []domain.Observation{{Label: "LABEL_4", Probability: 0.7}, {Label: "LABEL_1", Probability: 0.3}}
	engine.EXPECT().Classify(gomock.Any(), "ok").Return(expected, nil)
	client := startBufServer(t, engine)

	observations, err := client.Classify(context.Background(), "ok")
	req.NoError(err)
	req.Equal(expected, observations)
}

func TestDecodeObservations_Malformed(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "Missing list", payload: map[string]any{}},
		{name: "Score is a string", payload: map[string]any{"observations": []any{map[string]any{"label": "5 stars", "score": "high"}}}},
		{name: "Missing label", payload: map[string]any{"observations": []any{map[string]any{"score": 0.4}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := structpb.NewStruct(tt.payload)
			req.NoError(err)
			_, err = wire.DecodeObservations(resp)
			req.ErrorIs(err, errors.ErrMalformedObservation)
		})
	}
}

func TestDecodeRequest(t *testing.T) {
	req := require.New(t)

	encoded, err := wire.EncodeRequest("hola")
	req.NoError(err)
	text, err := wire.DecodeRequest(encoded)
	req.NoError(err)
	req.Equal("hola", text)

	empty, err := structpb.NewStruct(map[string]any{"text": 12})
	req.NoError(err)
	_, err = wire.DecodeRequest(empty)
	req.ErrorIs(err, errors.ErrInvalidInput)
}
