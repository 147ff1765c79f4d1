package transport

import (
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/engine"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/resonance"
)

// #region requests
type CalculateRequest struct {
	TraitsA []float64 `json:"traits_a"`
	TraitsB []float64 `json:"traits_b"`
}

type TotalRequest struct {
	TraitsA     []float64 `json:"traits_a"`
	TraitsB     []float64 `json:"traits_b"`
	Resonance   []float64 `json:"resonance"`
	Feasibility *float64  `json:"feasibility,omitempty"`
}

type TotalResponse struct {
	Result     resonance.Result     `json:"result"`
	Alignments resonance.Alignments `json:"alignments"`
}

type ScoreRequest struct {
	UserA           string    `json:"user_a"`
	UserB           string    `json:"user_b,omitempty"`
	TraitsA         []float64 `json:"traits_a"`
	TraitsB         []float64 `json:"traits_b"`
	Resonance       []float64 `json:"resonance,omitempty"`
	Feasibility     *float64  `json:"feasibility,omitempty"`
	BirthdateA      string    `json:"birthdate_a,omitempty"`
	BirthdateB      string    `json:"birthdate_b,omitempty"`
	Strategy        string    `json:"strategy,omitempty"`
	AllowAstrology  bool      `json:"allow_astrology"`
	AllowNumerology bool      `json:"allow_numerology"`
}

type TierRequest struct {
	Score float64 `json:"score"`
}

type RankRequest struct {
	UserID          string             `json:"user_id"`
	Traits          []float64          `json:"traits"`
	Birthdate       string             `json:"birthdate,omitempty"`
	Candidates      []engine.Candidate `json:"candidates"`
	Strategy        string             `json:"strategy,omitempty"`
	Feasibility     *float64           `json:"feasibility,omitempty"`
	AllowAstrology  bool               `json:"allow_astrology"`
	AllowNumerology bool               `json:"allow_numerology"`
}

type RankResponse struct {
	Results []engine.Ranked `json:"results"`
}

// #endregion requests

// #region struct-codec
// toStruct converts any JSON-shaped Go value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return s, nil
}

// fromStruct decodes a protobuf Struct into v.
func fromStruct(s *structpb.Struct, v any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errDecode, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", errDecode, err)
	}
	return nil
}

// #endregion struct-codec
