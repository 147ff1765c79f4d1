// Package transport exposes the scorer over gRPC. Messages are
// google.protobuf.Struct values carrying the JSON shape of the Go types, so
// the service needs no generated code.
package transport

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/birthdate"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/engine"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/match"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/resonance"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/vecmath"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "soulmates.scorer.v1.Scorer"

var errDecode = errors.New("transport: malformed request")

// #region service-desc
type scorerServer interface {
	Calculate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Total(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Score(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Tier(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Rank(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*scorerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Calculate", Handler: unaryHandler("Calculate", scorerServer.Calculate)},
		{MethodName: "Total", Handler: unaryHandler("Total", scorerServer.Total)},
		{MethodName: "Score", Handler: unaryHandler("Score", scorerServer.Score)},
		{MethodName: "Tier", Handler: unaryHandler("Tier", scorerServer.Tier)},
		{MethodName: "Rank", Handler: unaryHandler("Rank", scorerServer.Rank)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "soulmates/scorer/v1/scorer.proto",
}

type unaryCall func(scorerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(scorerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(scorerServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// #endregion service-desc

// #region server
// Server implements the scorer service on top of an engine.
type Server struct {
	engine *engine.Engine
	log    zerolog.Logger
}

// NewServer creates a scorer service.
func NewServer(e *engine.Engine, log zerolog.Logger) *Server {
	return &Server{engine: e, log: log}
}

// Register adds the scorer service to gs.
func Register(gs *grpc.Server, s *Server) {
	gs.RegisterService(&serviceDesc, s)
}

// #endregion server

// #region handlers
// Calculate runs the weighted-segment formula on two trait vectors.
func (s *Server) Calculate(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CalculateRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	score, err := match.Calculate(req.TraitsA, req.TraitsB)
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(score)
}

// Total runs the resonance formula and returns dimension alignments with it.
func (s *Server) Total(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req TotalRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	a, err := profile.NewTraitVector(req.TraitsA)
	if err != nil {
		return nil, toStatus(err)
	}
	b, err := profile.NewTraitVector(req.TraitsB)
	if err != nil {
		return nil, toStatus(err)
	}
	r, err := profile.NewResonanceVector(req.Resonance)
	if err != nil {
		return nil, toStatus(err)
	}
	feasibility := 1.0
	if req.Feasibility != nil {
		feasibility = *req.Feasibility
	}
	res, err := s.engine.Model().Total(a, b, r, feasibility)
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(TotalResponse{Result: res, Alignments: resonance.DimensionAlignments(a, b)})
}

// Score builds and persists a snapshot for a pair.
func (s *Server) Score(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ScoreRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	snap, err := s.engine.Score(ctx, engine.Request{
		UserA:           req.UserA,
		UserB:           req.UserB,
		TraitsA:         req.TraitsA,
		TraitsB:         req.TraitsB,
		Resonance:       req.Resonance,
		Feasibility:     req.Feasibility,
		BirthdateA:      req.BirthdateA,
		BirthdateB:      req.BirthdateB,
		Strategy:        engine.StrategyID(req.Strategy),
		AllowAstrology:  req.AllowAstrology,
		AllowNumerology: req.AllowNumerology,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	s.log.Debug().
		Str("snapshot_id", snap.SnapshotID).
		Str("strategy", snap.Strategy).
		Float64("overall", snap.Overall).
		Msg("snapshot scored")
	return reply(snap)
}

// Tier classifies a raw score.
func (s *Server) Tier(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req TierRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	return reply(tier.Classify(req.Score))
}

// Rank orders candidates for one user.
func (s *Server) Rank(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req RankRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	ranked, err := s.engine.Rank(ctx, engine.RankRequest{
		UserID:          req.UserID,
		Traits:          req.Traits,
		Birthdate:       req.Birthdate,
		Candidates:      req.Candidates,
		Strategy:        engine.StrategyID(req.Strategy),
		Feasibility:     req.Feasibility,
		AllowAstrology:  req.AllowAstrology,
		AllowNumerology: req.AllowNumerology,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(RankResponse{Results: ranked})
}

func reply(v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// #endregion handlers

// #region errors
var invalidArgument = []error{
	errDecode,
	vecmath.ErrDimensionMismatch,
	vecmath.ErrEmptyVector,
	birthdate.ErrInvalidDate,
	engine.ErrUnknownStrategy,
	engine.ErrMissingResonance,
	engine.ErrInputRejected,
	resonance.ErrInvalidFeasibility,
	tier.ErrInvalidTopPercent,
}

// toStatus maps domain errors onto gRPC codes. Caller mistakes are
// InvalidArgument, store misses NotFound, everything else Internal.
func toStatus(err error) error {
	for _, target := range invalidArgument {
		if errors.Is(err, target) {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	switch {
	case errors.Is(err, profile.ErrNotFound), errors.Is(err, snapshot.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// #endregion errors

// #region grpc-server
// NewGRPCServer builds a gRPC server with the scorer and health services
// registered. Every RPC is logged; m may be nil to skip metrics.
func NewGRPCServer(svc *Server, log zerolog.Logger, m *Metrics) (*grpc.Server, *health.Server) {
	interceptors := []grpc.UnaryServerInterceptor{LoggingInterceptor(log)}
	if m != nil {
		interceptors = append(interceptors, m.UnaryInterceptor())
	}
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	Register(gs, svc)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return gs, hs
}

// #endregion grpc-server
