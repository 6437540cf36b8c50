package annealerd

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func dialBufconn(t *testing.T, solver *Solver) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterTourServiceServer(srv, NewTourGRPCServer(solver))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestGRPCSolveTourMatchesHTTPSolver(t *testing.T) {
	solver := NewSolver(smallConfig(), nil)
	client := NewTourServiceClient(dialBufconn(t, solver))

	in, err := ToStruct(TourRequest{Seed: 31, MaxTemps: 4, ItersPerTemp: 25})
	require.NoError(t, err)

	out, err := client.SolveTour(context.Background(), in)
	require.NoError(t, err)

	var got TourResponse
	require.NoError(t, FromStruct(out, &got))

	want, err := solver.Solve(context.Background(), TourRequest{Seed: 31, MaxTemps: 4, ItersPerTemp: 25})
	require.NoError(t, err)

	assert.Equal(t, want.Tour, got.Tour)
	assert.Equal(t, want.Length, got.Length)
	assert.Equal(t, 100, got.FunctionEvals)
	assert.Equal(t, int64(31), got.Seed)
	assert.NotEmpty(t, got.RunID)
}

func TestGRPCSolveTourInvalidArgument(t *testing.T) {
	client := NewTourServiceClient(dialBufconn(t, NewSolver(smallConfig(), nil)))

	in, err := structpb.NewStruct(map[string]any{"alpha": 2.0})
	require.NoError(t, err)

	_, err = client.SolveTour(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	in, err = structpb.NewStruct(map[string]any{"max_temps": "many"})
	require.NoError(t, err)
	_, err = client.SolveTour(context.Background(), in)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPCSolveTourRejectsOversizedBudget(t *testing.T) {
	client := NewTourServiceClient(dialBufconn(t, NewSolver(smallConfig(), nil)))

	in, err := structpb.NewStruct(map[string]any{"max_temps": 2e6, "iters_per_temp": 1000.0})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = client.SolveTour(ctx, in)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPCSolveTourRejectsUnknownFields(t *testing.T) {
	client := NewTourServiceClient(dialBufconn(t, NewSolver(smallConfig(), nil)))

	in, err := structpb.NewStruct(map[string]any{"max_temp": 5.0})
	require.NoError(t, err)

	_, err = client.SolveTour(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "max_temp")
}

func TestFromStructRejectsUnknownFields(t *testing.T) {
	in, err := structpb.NewStruct(map[string]any{"seed": 4.0, "iters_per_temps": 10.0})
	require.NoError(t, err)

	var req TourRequest
	assert.Error(t, FromStruct(in, &req))

	in, err = structpb.NewStruct(map[string]any{"seed": 4.0, "iters_per_temp": 10.0})
	require.NoError(t, err)
	require.NoError(t, FromStruct(in, &req))
	assert.Equal(t, TourRequest{Seed: 4, ItersPerTemp: 10}, req)
}

func TestGRPCHealth(t *testing.T) {
	conn := dialBufconn(t, NewSolver(smallConfig(), nil))

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: TourServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
