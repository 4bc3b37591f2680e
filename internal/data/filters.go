package data

import (
	"strconv"
	"strings"

	"github.com/ericksjp703/moviesapi/internal/validator"
)

// Filter narrows a listing. Empty fields are ignored and the rest are ANDed.
type Filter struct {
	Genre string
	Title string
	Year  *int
}

// builds a filter from the decoded query string, recording a bad year on v
func ReadFilter(qs map[string]string, v *validator.Validator) Filter {
	f := Filter{
		Genre: strings.TrimSpace(qs["genre"]),
		Title: strings.TrimSpace(qs["title"]),
	}

	if s := strings.TrimSpace(qs["year"]); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			v.AddError("year", "must be an integer value")
		} else {
			f.Year = &year
		}
	}

	return f
}

// returns true when no criteria is set
func (f Filter) Empty() bool {
	return f.Genre == "" && f.Title == "" && f.Year == nil
}

// genre is an exact case-insensitive match, title a case-insensitive substring
func (f Filter) Match(m Movie) bool {
	if f.Genre != "" && !strings.EqualFold(strings.TrimSpace(m.Genre), f.Genre) {
		return false
	}
	if f.Year != nil && m.Year != *f.Year {
		return false
	}
	if f.Title != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(f.Title)) {
		return false
	}
	return true
}

// keeps the movies matching the filter, in their original order
func (f Filter) Apply(movies []Movie) []Movie {
	matched := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if f.Match(m) {
			matched = append(matched, m)
		}
	}
	return matched
}
