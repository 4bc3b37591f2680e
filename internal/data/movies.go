package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ericksjp703/moviesapi/internal/validator"
)

// the year the first film was shot
const MinYear = 1888

type Movie struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
	Genre string `json:"genre"`
}

// MovieInput carries a draft (every field set) or a patch (any subset).
// nil means the field was not sent.
type MovieInput struct {
	Title *string
	Year  *int
	Genre *string
}

// latest accepted year, one year in the future
func maxYear() int {
	return time.Now().Year() + 1
}

func validYear(year int) bool {
	return year >= MinYear && year <= maxYear()
}

// MovieSchema is the closed field set accepted on the wire, with the strict
// rules the write paths rely on.
var MovieSchema = validator.Schema{
	"title": {
		Kind:  validator.KindString,
		Rules: []validator.Rule{validator.StringRule("must not be empty", validator.NotBlank)},
	},
	"year": {
		Kind: validator.KindNumber,
		Rules: []validator.Rule{
			validator.NumberRule("must be an integer", validator.Integral),
			validator.NumberRule(fmt.Sprintf("must be between %d and next year", MinYear), func(f float64) bool {
				return f >= MinYear && f <= float64(maxYear())
			}),
		},
	},
	"genre": {
		Kind:  validator.KindString,
		Rules: []validator.Rule{validator.StringRule("must not be empty", validator.NotBlank)},
	},
}

// ValidateMovie is the validation entry point used by the request pipeline.
func ValidateMovie(candidate any, partial bool) bool {
	return MovieSchema.Validate(candidate, partial)
}

// builds an input from a document that already passed MovieSchema
func MovieInputFromDocument(doc map[string]any) MovieInput {
	var input MovieInput

	if title, ok := doc["title"].(string); ok {
		input.Title = &title
	}
	if year, ok := doc["year"].(float64); ok {
		y := int(year)
		input.Year = &y
	}
	if genre, ok := doc["genre"].(string); ok {
		input.Genre = &genre
	}

	return input
}

// Validate is the final gate before anything is persisted. With partial set
// only the fields present are checked.
func (in MovieInput) Validate(v *validator.Validator, partial bool) {
	if in.Title != nil {
		v.Check(!validator.NotBlank(*in.Title), "title", "must not be empty")
	} else {
		v.Check(!partial, "title", "must be provided")
	}

	if in.Year != nil {
		v.Check(!validYear(*in.Year), "year", fmt.Sprintf("must be between %d and %d", MinYear, maxYear()))
	} else {
		v.Check(!partial, "year", "must be provided")
	}

	if in.Genre != nil {
		v.Check(!validator.NotBlank(*in.Genre), "genre", "must not be empty")
	} else {
		v.Check(!partial, "genre", "must be provided")
	}
}

// copies every field present in the input over the movie. the id is never touched
func (in MovieInput) ApplyUpdates(movie *Movie) {
	if in.Title != nil {
		movie.Title = strings.TrimSpace(*in.Title)
	}
	if in.Year != nil {
		movie.Year = *in.Year
	}
	if in.Genre != nil {
		movie.Genre = strings.TrimSpace(*in.Genre)
	}
}

// ParseID accepts only plain decimal digits. A digit string too large for an
// int64 parses to -1, which no record can carry.
func ParseID(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidID
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidID
		}
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1, nil
	}

	return id, nil
}

// titles are compared trimmed and case folded
func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
