package shared

import "fmt"

// Season is one of the four discrete time steps per year.
type Season int

const (
	SeasonSpring Season = iota
	SeasonSummer
	SeasonAutumn
	SeasonWinter
)

// String returns a human-readable season name.
func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// Date is a point on the season calendar.
type Date struct {
	Year   int    `json:"year"`
	Season Season `json:"season"`
}

// Next returns the following season, rolling the year on winter.
func (d Date) Next() Date {
	if d.Season == SeasonWinter {
		return Date{Year: d.Year + 1, Season: SeasonSpring}
	}
	return Date{Year: d.Year, Season: d.Season + 1}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	return d.Season < other.Season
}

// Equal reports whether d and other are the same season of the same year.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Season == other.Season
}

// String formats the date for logs and journal entries.
func (d Date) String() string {
	return fmt.Sprintf("%s %d", d.Season, d.Year)
}
