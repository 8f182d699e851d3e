package model

import "regexp"

// EmptySentinel is what the scraped sites print when they have no value for a cell.
const EmptySentinel = "-"

var leadingDigits = regexp.MustCompile(`^\d+`)

// Field is a scraped cell value plus whether it looked numeric at extraction time.
type Field struct {
	Value   string
	Numeric bool
}

// NewField tags value as numeric when it starts with one or more digits.
// Only the leading run is checked, so "12abc" is numeric and "N/A123" is not.
func NewField(value string) Field {
	return Field{Value: value, Numeric: leadingDigits.MatchString(value)}
}

// IsEmpty reports whether the field carries the sentinel marker.
func (f Field) IsEmpty() bool { return f.Value == EmptySentinel }

// Quote is a buy/sell pair published by a bank or exchange house.
type Quote struct {
	Bank string
	Buy  Field
	Sell Field
}

// FutureQuote is one row of the dollar futures board.
type FutureQuote struct {
	Contract string
	Buy      Field
	Sell     Field
}

// FuturesBoard keeps the table header next to its rows, both in page order.
type FuturesBoard struct {
	Header [3]string
	Rows   []FutureQuote
}

// Standing is a row of the league table.
type Standing struct {
	Position string
	Team     string
	Points   string
	Played   string
}

// LineStatus is the reported state of a subway line.
type LineStatus struct {
	Line   string
	Status string
}

// RankedTitle is an entry of a ranking, numbered from 1 in page order.
type RankedTitle struct {
	Rank  int
	Title string
	Link  string
}

// MatchInfo describes the next (or last) match of the team.
type MatchInfo struct {
	LogoURL string
	Lines   []string
}

// Movie is the subset of a movie search hit we show to users.
type Movie struct {
	ID          int64
	Title       string
	ReleaseDate string
	Rating      float64
	Votes       int
	Overview    string
	PosterURL   string
	PageURL     string
}
