package birthdate

// #region signs
// Sign is a tropical zodiac sign.
type Sign string

const (
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
)

// Element groups signs into four classical elements.
type Element string

const (
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Air   Element = "Air"
	Water Element = "Water"
)

type signRange struct {
	sign                 Sign
	startMonth, startDay int
	endMonth, endDay     int
}

// Checked in order; the first match wins.
var signRanges = []signRange{
	{Aquarius, 1, 20, 2, 18},
	{Pisces, 2, 19, 3, 20},
	{Aries, 3, 21, 4, 19},
	{Taurus, 4, 20, 5, 20},
	{Gemini, 5, 21, 6, 20},
	{Cancer, 6, 21, 7, 22},
	{Leo, 7, 23, 8, 22},
	{Virgo, 8, 23, 9, 22},
	{Libra, 9, 23, 10, 22},
	{Scorpio, 10, 23, 11, 21},
	{Sagittarius, 11, 22, 12, 21},
	{Capricorn, 12, 22, 1, 19},
}

// #endregion signs

// #region lookup
// ZodiacSign maps a YYYY-MM-DD date to its sign.
func ZodiacSign(date string) (Sign, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	month, day := int(t.Month()), t.Day()
	for _, r := range signRanges {
		if (month == r.startMonth && day >= r.startDay) ||
			(month == r.endMonth && day <= r.endDay) ||
			(r.startMonth > r.endMonth && (month == r.startMonth || month == r.endMonth)) {
			return r.sign, nil
		}
	}
	return Capricorn, nil
}

// ElementOf returns the sign's element. Unknown signs are Water.
func ElementOf(s Sign) Element {
	switch s {
	case Aries, Leo, Sagittarius:
		return Fire
	case Taurus, Virgo, Capricorn:
		return Earth
	case Gemini, Libra, Aquarius:
		return Air
	default:
		return Water
	}
}

// #endregion lookup

// #region compatibility
// AstrologyCompatibility is 1.0 for the same element, 0.7 for Fire/Air or
// Earth/Water, and 0.4 otherwise.
func AstrologyCompatibility(date1, date2 string) (float64, error) {
	s1, err := ZodiacSign(date1)
	if err != nil {
		return 0, err
	}
	s2, err := ZodiacSign(date2)
	if err != nil {
		return 0, err
	}
	return ElementCompatibility(ElementOf(s1), ElementOf(s2)), nil
}

// ElementCompatibility scores two elements.
func ElementCompatibility(e1, e2 Element) float64 {
	switch {
	case e1 == e2:
		return 1.0
	case pair(e1, e2, Fire, Air), pair(e1, e2, Earth, Water):
		return 0.7
	default:
		return 0.4
	}
}

func pair(a, b, x, y Element) bool {
	return (a == x && b == y) || (a == y && b == x)
}

// #endregion compatibility
