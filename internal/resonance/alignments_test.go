package resonance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
)

func TestAlignmentsIdentical(t *testing.T) {
	got := DimensionAlignments(traits(0.4), traits(0.4))
	require.Len(t, got, len(profile.Segments))
	for id, v := range got {
		assert.Equal(t, 1.0, v, id)
	}
}

func TestAlignmentsOpposite(t *testing.T) {
	got := DimensionAlignments(traits(0), traits(1))
	for id, v := range got {
		assert.Equal(t, 0.0, v, id)
	}
}

func TestAlignmentsPerSegment(t *testing.T) {
	a := traits(0.5)
	b := traits(0.5)
	for i := 15; i < 21; i++ {
		b[i] = 0.75
	}

	got := DimensionAlignments(a, b)
	assert.Equal(t, 0.75, got[profile.SegmentValues])
	assert.Equal(t, 1.0, got[profile.SegmentSocial])
	assert.Equal(t, 1.0, got[profile.SegmentAttachment])
}

func TestAlignmentsClampOutOfRangeInputs(t *testing.T) {
	got := DimensionAlignments(traits(-1), traits(2))
	assert.Equal(t, 0.0, got[profile.SegmentSexual])
}

func TestCalculateDimensionAlignmentsRejectsWrongDimensions(t *testing.T) {
	_, err := CalculateDimensionAlignments(fill(31, 0), fill(32, 0))
	assert.ErrorIs(t, err, profile.ErrInvalidDimension)

	got, err := CalculateDimensionAlignments(fill(32, 0.2), fill(32, 0.2))
	require.NoError(t, err)
	assert.Len(t, got, 7)
}
