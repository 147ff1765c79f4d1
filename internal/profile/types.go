package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/vecmath"
)

// #region dimensions
const (
	// TraitDims is the fixed width of a trait vector.
	TraitDims = 32
	// ResonanceDims is the fixed width of a resonance vector.
	ResonanceDims = 7
)

// ErrInvalidDimension is returned when an input vector has the wrong length.
// It wraps vecmath.ErrDimensionMismatch so callers can match either.
var ErrInvalidDimension = fmt.Errorf("profile: invalid dimension: %w", vecmath.ErrDimensionMismatch)

// ErrNotFound is returned by the store when a profile or version does not exist.
var ErrNotFound = errors.New("profile: not found")

// #endregion dimensions

// #region vectors
// TraitVector is a 32-dimensional personality profile, values nominally in [0, 1].
type TraitVector [TraitDims]float64

// ResonanceVector is a 7-dimensional behavioral profile for a pair.
type ResonanceVector [ResonanceDims]float64

// NewTraitVector copies v into a TraitVector. Values are not clamped.
func NewTraitVector(v []float64) (TraitVector, error) {
	var t TraitVector
	if len(v) != TraitDims {
		return t, fmt.Errorf("%w: trait vector has %d values, want %d", ErrInvalidDimension, len(v), TraitDims)
	}
	copy(t[:], v)
	return t, nil
}

// NewResonanceVector copies v into a ResonanceVector. Values are not clamped.
func NewResonanceVector(v []float64) (ResonanceVector, error) {
	var r ResonanceVector
	if len(v) != ResonanceDims {
		return r, fmt.Errorf("%w: resonance vector has %d values, want %d", ErrInvalidDimension, len(v), ResonanceDims)
	}
	copy(r[:], v)
	return r, nil
}

// Slice returns a fresh slice holding the vector's values.
func (t TraitVector) Slice() []float64 {
	out := make([]float64, TraitDims)
	copy(out, t[:])
	return out
}

// Segment returns the values of one named segment.
func (t TraitVector) Segment(s Segment) []float64 {
	out := make([]float64, s.Width())
	copy(out, t[s.Start:s.End])
	return out
}

// Slice returns a fresh slice holding the vector's values.
func (r ResonanceVector) Slice() []float64 {
	out := make([]float64, ResonanceDims)
	copy(out, r[:])
	return out
}

// #endregion vectors

// #region segments
// SegmentID names a contiguous block of the trait vector.
type SegmentID string

const (
	SegmentAttachment    SegmentID = "attachment"
	SegmentConflict      SegmentID = "conflict"
	SegmentCognitive     SegmentID = "cognitive"
	SegmentValues        SegmentID = "values"
	SegmentSocial        SegmentID = "social"
	SegmentSexual        SegmentID = "sexual"
	SegmentLifeStructure SegmentID = "life_structure"
)

// Segment is a half-open index range [Start, End) of the trait vector.
type Segment struct {
	ID    SegmentID `json:"id"`
	Label string    `json:"label"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// Width returns the number of dimensions in the segment.
func (s Segment) Width() int { return s.End - s.Start }

// Last returns the inclusive upper index.
func (s Segment) Last() int { return s.End - 1 }

// Segments is the fixed seven-segment layout, in index order.
var Segments = []Segment{
	{ID: SegmentAttachment, Label: "Attachment & Regulation", Start: 0, End: 5},
	{ID: SegmentConflict, Label: "Conflict & Communication", Start: 5, End: 10},
	{ID: SegmentCognitive, Label: "Cognitive & Decision Style", Start: 10, End: 15},
	{ID: SegmentValues, Label: "Value Architecture", Start: 15, End: 21},
	{ID: SegmentSocial, Label: "Social & Interpersonal Style", Start: 21, End: 26},
	{ID: SegmentSexual, Label: "Sexual System", Start: 26, End: 29},
	{ID: SegmentLifeStructure, Label: "Life Structure", Start: 29, End: 32},
}

// SegmentByID looks up a segment by name.
func SegmentByID(id SegmentID) (Segment, bool) {
	for _, s := range Segments {
		if s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}

// #endregion segments

// #region records
// Source records where a trait version came from.
type Source string

const (
	SourceQuestionnaire Source = "questionnaire"
	SourceStoryQuest    Source = "story_quest"
	SourceManual        Source = "manual"
)

// Profile is a person whose trait vector can be scored.
type Profile struct {
	ProfileID string    `json:"profile_id"`
	Name      string    `json:"name"`
	Birthdate string    `json:"birthdate,omitempty"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}

// TraitRecord is one immutable version of a profile's trait vector.
type TraitRecord struct {
	VersionID string      `json:"version_id"`
	ParentID  string      `json:"parent_id,omitempty"`
	ProfileID string      `json:"profile_id"`
	Traits    TraitVector `json:"traits"`
	Source    Source      `json:"source"`
	CreatedAt time.Time   `json:"created_at"`
}

// #endregion records
