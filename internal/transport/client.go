package transport

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/engine"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/match"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
)

// #region client-struct
// Client calls a remote scorer service.
type Client struct {
	conn   *grpc.ClientConn
	cc     grpc.ClientConnInterface
	health healthpb.HealthClient
}

// #endregion client-struct

// #region constructor
// NewClient connects to the scorer gRPC server at addr.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	c := NewClientWithConn(conn)
	c.conn = conn
	return c, nil
}

// NewClientWithConn wraps an existing connection. Close is then a no-op and
// the caller keeps ownership of cc.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc, health: healthpb.NewHealthClient(cc)}
}

// Close shuts down a connection opened by NewClient.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion constructor

// #region calls
func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out); err != nil {
		return err
	}
	return fromStruct(out, resp)
}

// Calculate scores two trait vectors with the weighted-segment formula.
func (c *Client) Calculate(ctx context.Context, traitsA, traitsB []float64) (match.Score, error) {
	var score match.Score
	if err := c.invoke(ctx, "Calculate", CalculateRequest{TraitsA: traitsA, TraitsB: traitsB}, &score); err != nil {
		return match.Score{}, fmt.Errorf("calculate rpc: %w", err)
	}
	return score, nil
}

// Total runs the resonance formula remotely.
func (c *Client) Total(ctx context.Context, req TotalRequest) (TotalResponse, error) {
	var resp TotalResponse
	if err := c.invoke(ctx, "Total", req, &resp); err != nil {
		return TotalResponse{}, fmt.Errorf("total rpc: %w", err)
	}
	return resp, nil
}

// Score asks the server for a snapshot.
func (c *Client) Score(ctx context.Context, req ScoreRequest) (snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	if err := c.invoke(ctx, "Score", req, &snap); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("score rpc: %w", err)
	}
	return snap, nil
}

// Tier classifies a score remotely.
func (c *Client) Tier(ctx context.Context, score float64) (tier.Classification, error) {
	var cl tier.Classification
	if err := c.invoke(ctx, "Tier", TierRequest{Score: score}, &cl); err != nil {
		return tier.Classification{}, fmt.Errorf("tier rpc: %w", err)
	}
	return cl, nil
}

// Rank orders candidates remotely.
func (c *Client) Rank(ctx context.Context, req RankRequest) ([]engine.Ranked, error) {
	var resp RankResponse
	if err := c.invoke(ctx, "Rank", req, &resp); err != nil {
		return nil, fmt.Errorf("rank rpc: %w", err)
	}
	return resp.Results, nil
}

// Healthy reports whether the scorer service is SERVING.
func (c *Client) Healthy(ctx context.Context) (bool, error) {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return false, fmt.Errorf("health rpc: %w", err)
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

// #endregion calls
