package server

import (
	"context"
	"log/slog"
	"time"

	"sentify/contract"
	"sentify/infrastructure/grpc/wire"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ClassifierServer exposes a local classifier engine over gRPC.
type ClassifierServer struct {
	Id     string
	engine contract.Classifier
	log    *slog.Logger
}

func NewClassifierServer(id string, engine contract.Classifier, log *slog.Logger) *ClassifierServer {
	return &ClassifierServer{Id: id, engine: engine, log: log}
}

var _ wire.ClassifierServer = (*ClassifierServer)(nil)

func (s *ClassifierServer) Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	start := time.Now()
	text, err := wire.DecodeRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	observations, err := s.engine.Classify(ctx, text)
	if err != nil {
		s.log.Error("Classification failed", "id", s.Id, "error", err)
		return nil, status.FromContextError(err).Err()
	}

	resp, err := wire.EncodeObservations(observations)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.log.Debug("Classifier called", "id", s.Id, "observations", len(observations), "duration", time.Since(start))
	return resp, nil
}
