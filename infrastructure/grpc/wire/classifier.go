// Package wire declares the classifier gRPC service.
// Messages travel as google.protobuf.Struct so no generated stubs are needed.
package wire

import (
	"context"
	"fmt"

	"sentify/domain"
	"sentify/errors"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName    = "sentify.classifier.v1.ClassifierService"
	ClassifyMethod = "/" + ServiceName + "/Classify"

	fieldText         = "text"
	fieldObservations = "observations"
	fieldLabel        = "label"
	fieldScore        = "score"
)

// ClassifierServer is implemented by the sidecar.
type ClassifierServer interface {
	Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClassifierServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Classify", Handler: classifyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sentify/classifier.proto",
}

func RegisterClassifierServer(s grpc.ServiceRegistrar, srv ClassifierServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func classifyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClassifierServer).Classify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ClassifyMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ClassifierServer).Classify(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func EncodeRequest(text string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldText: text})
}

func DecodeRequest(req *structpb.Struct) (string, error) {
	v, ok := req.GetFields()[fieldText]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", errors.ErrInvalidInput, fieldText)
	}
	kind, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", errors.ErrInvalidInput, fieldText)
	}
	return kind.StringValue, nil
}

func EncodeObservations(observations []domain.Observation) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldObservations: lo.Map(observations, func(o domain.Observation, _ int) any {
			return map[string]any{fieldLabel: o.Label, fieldScore: o.Probability}
		}),
	})
}

// DecodeObservations fails on any entry without a string label and a numeric score.
func DecodeObservations(resp *structpb.Struct) ([]domain.Observation, error) {
	list, ok := resp.GetFields()[fieldObservations].GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", errors.ErrMalformedObservation, fieldObservations)
	}
	observations := make([]domain.Observation, 0, len(list.ListValue.GetValues()))
	for i, v := range list.ListValue.GetValues() {
		fields := v.GetStructValue().GetFields()
		label, okLabel := fields[fieldLabel].GetKind().(*structpb.Value_StringValue)
		score, okScore := fields[fieldScore].GetKind().(*structpb.Value_NumberValue)
		if !okLabel || !okScore {
			return nil, fmt.Errorf("%w: entry %d", errors.ErrMalformedObservation, i)
		}
		observations = append(observations, domain.Observation{Label: label.StringValue, Probability: score.NumberValue})
	}
	return observations, nil
}
