// Package grpcapi serves the simulation engine over gRPC.
//
// Messages are google.protobuf.Struct values, so the service needs no
// generated code: the descriptor below plays the role of a *_grpc.pb.go file.
package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "simulajuls.simulation.v1.SimulationService"

const (
	runMethod             = "/" + ServiceName + "/Run"
	listExperimentsMethod = "/" + ServiceName + "/ListExperiments"
)

// SimulationServer is the server API for the simulation service.
type SimulationServer interface {
	// Run executes one simulation. Request fields: domain, experiment,
	// parameters (object) and an optional locale.
	Run(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// ListExperiments returns the experiment catalog and the registered
	// simulations. Request fields: optional category.
	ListExperiments(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSimulationServer registers srv on s.
func RegisterSimulationServer(s grpc.ServiceRegistrar, srv SimulationServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the simulation service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SimulationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Run", Handler: runHandler},
		{MethodName: "ListExperiments", Handler: listExperimentsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "simulajuls/simulation/v1/simulation.proto",
}

func runHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulationServer).Run(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: runMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulationServer).Run(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listExperimentsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulationServer).ListExperiments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listExperimentsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulationServer).ListExperiments(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
