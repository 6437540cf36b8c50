package annealerd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/GoSim-25-26J-441/annealing-core/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// TourServiceName is the fully qualified gRPC service name
const TourServiceName = "annealing.v1.TourService"

const solveTourMethod = "/" + TourServiceName + "/SolveTour"

// TourServiceServer solves tours over gRPC. Messages are google.protobuf.Struct
// carrying the same fields as the JSON API.
type TourServiceServer interface {
	SolveTour(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var tourServiceDesc = grpc.ServiceDesc{
	ServiceName: TourServiceName,
	HandlerType: (*TourServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SolveTour", Handler: solveTourHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "annealing/v1/tour.proto",
}

func solveTourHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TourServiceServer).SolveTour(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: solveTourMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TourServiceServer).SolveTour(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterTourServiceServer registers srv and marks it serving on the health service
func RegisterTourServiceServer(s *grpc.Server, srv TourServiceServer) *health.Server {
	s.RegisterService(&tourServiceDesc, srv)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(TourServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return hs
}

// TourServiceClient calls a remote TourService
type TourServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTourServiceClient(cc grpc.ClientConnInterface) *TourServiceClient {
	return &TourServiceClient{cc: cc}
}

func (c *TourServiceClient) SolveTour(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, solveTourMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// TourGRPCServer implements TourServiceServer on top of a Solver
type TourGRPCServer struct {
	solver *Solver
}

func NewTourGRPCServer(solver *Solver) *TourGRPCServer {
	return &TourGRPCServer{solver: solver}
}

func (s *TourGRPCServer) SolveTour(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req TourRequest
	if in != nil {
		if err := FromStruct(in, &req); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}

	resp, err := s.solver.Solve(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, status.FromContextError(err).Err()
		}
		logger.Error("solve failed", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}

	out, err := ToStruct(resp)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// FromStruct decodes a Struct into v through its JSON form, rejecting keys v
// does not declare. Struct numbers are doubles, so seeds above 2^53 lose precision.
func FromStruct(in *structpb.Struct, v any) error {
	raw, err := json.Marshal(in.AsMap())
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ToStruct encodes v through its JSON form
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}
