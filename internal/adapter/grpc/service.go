package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name
	ServiceName = "exactsplit.v1.SplitService"

	// AllocateFullMethod is the full RPC path of SplitService.Allocate
	AllocateFullMethod = "/" + ServiceName + "/Allocate"
)

// SplitServiceServer is the server API for the SplitService
// Requests and responses are google.protobuf.Struct messages; see server.go for the field layout.
type SplitServiceServer interface {
	Allocate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// SplitServiceDesc describes the SplitService for grpc.Server.RegisterService
var SplitServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SplitServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Allocate",
			Handler:    allocateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "exactsplit/v1/split.proto",
}

// RegisterSplitServiceServer registers srv with the given registrar
func RegisterSplitServiceServer(s grpc.ServiceRegistrar, srv SplitServiceServer) {
	s.RegisterService(&SplitServiceDesc, srv)
}

func allocateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(SplitServiceServer).Allocate(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AllocateFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SplitServiceServer).Allocate(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

// SplitClient is the client API for the SplitService
type SplitClient struct {
	cc grpc.ClientConnInterface
}

// NewSplitClient creates a client on top of an existing connection
func NewSplitClient(cc grpc.ClientConnInterface) *SplitClient {
	return &SplitClient{cc: cc}
}

// Allocate calls SplitService.Allocate
func (c *SplitClient) Allocate(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AllocateFullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
