package client

import (
	"context"
	"fmt"

	"sentify/domain"
	"sentify/errors"
	"sentify/infrastructure/grpc/wire"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ClassifierClient calls a remote classifier through a gRPC connection.
type ClassifierClient struct {
	conn grpc.ClientConnInterface
}

func NewClassifierClient(conn grpc.ClientConnInterface) *ClassifierClient {
	return &ClassifierClient{conn: conn}
}

func (c *ClassifierClient) Classify(ctx context.Context, text string) ([]domain.Observation, error) {
	req, err := wire.EncodeRequest(text)
	if err != nil {
		return nil, err
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, wire.ClassifyMethod, req, resp); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrClassifierUnavailable, err)
	}
	return wire.DecodeObservations(resp)
}
