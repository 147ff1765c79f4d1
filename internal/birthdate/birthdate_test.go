package birthdate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifePathNumber(t *testing.T) {
	cases := map[string]int{
		"1990-01-01": 3, // 21 -> 3
		"1987-07-29": 7, // 43 -> 7
		"1999-09-09": 1, // 46 -> 10 -> 1
		"2000-01-02": 5,
		"2000-01-01": 4,
	}
	for date, want := range cases {
		got, err := LifePathNumber(date)
		require.NoError(t, err, date)
		assert.Equal(t, want, got, date)
	}
}

func TestNumerologyCompatibility(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"1990-01-01", "1990-01-01", 1.0},
		{"1990-01-01", "2000-01-02", 0.7}, // 3 vs 5
		{"1990-01-01", "2000-01-01", 0.7}, // 3 vs 4
		{"1990-01-01", "1987-07-29", 0.3}, // 3 vs 7
	}
	for _, tc := range cases {
		got, err := NumerologyCompatibility(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s vs %s", tc.a, tc.b)
	}
}

func TestZodiacSign(t *testing.T) {
	cases := map[string]Sign{
		"2000-03-25": Aries,
		"2000-06-15": Gemini,
		"2000-01-05": Capricorn,
		"2000-12-25": Capricorn,
		"2000-01-20": Aquarius,
		"2000-02-19": Pisces,
		"2000-12-21": Sagittarius,
		"2000-08-23": Virgo,
		"2000-10-22": Libra,
	}
	for date, want := range cases {
		got, err := ZodiacSign(date)
		require.NoError(t, err, date)
		assert.Equal(t, want, got, date)
	}
}

func TestElementOf(t *testing.T) {
	assert.Equal(t, Fire, ElementOf(Sagittarius))
	assert.Equal(t, Earth, ElementOf(Capricorn))
	assert.Equal(t, Air, ElementOf(Aquarius))
	assert.Equal(t, Water, ElementOf(Pisces))
}

func TestAstrologyCompatibility(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"2000-03-25", "2000-06-15", 0.7}, // Aries/Gemini, fire and air
		{"2000-03-25", "2000-08-01", 1.0}, // Aries/Leo
		{"2000-03-25", "2000-07-01", 0.4}, // Aries/Cancer
		{"2000-05-01", "2000-11-01", 0.7}, // Taurus/Scorpio, earth and water
		{"2000-05-01", "2000-06-15", 0.4}, // Taurus/Gemini
	}
	for _, tc := range cases {
		got, err := AstrologyCompatibility(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s vs %s", tc.a, tc.b)

		swapped, err := AstrologyCompatibility(tc.b, tc.a)
		require.NoError(t, err)
		assert.Equal(t, got, swapped)
	}
}

func TestInvalidDates(t *testing.T) {
	for _, bad := range []string{"", "not-a-date", "1990-13-01", "1990-02-30", "1990/01/01"} {
		_, err := LifePathNumber(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)

		_, err = ZodiacSign(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)

		_, err = NumerologyCompatibility("1990-01-01", bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)

		_, err = AstrologyCompatibility(bad, "1990-01-01")
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}
