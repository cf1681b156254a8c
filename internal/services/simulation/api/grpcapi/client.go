package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote simulation service.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Run executes domain/experiment remotely and returns the result object.
// locale may be empty.
func (c *Client) Run(ctx context.Context, domain, experiment string, params map[string]any, locale string, opts ...grpc.CallOption) (map[string]any, error) {
	if params == nil {
		params = map[string]any{}
	}
	in, err := structpb.NewStruct(map[string]any{
		FieldDomain:     domain,
		FieldExperiment: experiment,
		FieldParameters: params,
		FieldLocale:     locale,
	})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, runMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// ListExperiments returns {experiments, simulations}, filtering experiments
// by category when it is not empty.
func (c *Client) ListExperiments(ctx context.Context, category string, opts ...grpc.CallOption) (map[string]any, error) {
	in, err := structpb.NewStruct(map[string]any{FieldCategory: category})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, listExperimentsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
