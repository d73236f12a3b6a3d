package schedulingrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client は SchedulingService のクライアントです。
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient は Client を生成します。
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call は method を呼び出します。fields は nil でも構いません。
func (c *Client) Call(ctx context.Context, method string, fields map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
