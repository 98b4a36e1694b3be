// Package scale turns raw input numbers into bar heights for rendering.
package scale

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinMagnitude = 10.0
	MaxMagnitude = 90.0
	// Midpoint is used for every element when no input value is positive.
	Midpoint = (MinMagnitude + MaxMagnitude) / 2

	DefaultMaxSize    = 30
	DefaultRandomSize = 15
	DefaultRandomMax  = 100
)

var ErrInvalidInput = errors.New("scale: invalid input")

// InvalidInputError describes why an input sequence was rejected.
type InvalidInputError struct {
	Reason string
	Token  string
	Size   int
}

func (e *InvalidInputError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (%q)", ErrInvalidInput, e.Reason, e.Token)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

var separators = regexp.MustCompile(`[,\s]+`)

// Parse splits text on commas and whitespace and parses each non-blank token.
func Parse(text string, maxSize int) ([]float64, error) {
	tokens := separators.Split(strings.TrimSpace(text), -1)
	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &InvalidInputError{Reason: "please enter valid numbers separated by commas", Token: tok}
		}
		values = append(values, v)
	}
	if err := Validate(values, maxSize); err != nil {
		return nil, err
	}
	return values, nil
}

// Validate checks size bounds and rejects NaN and infinities.
func Validate(values []float64, maxSize int) error {
	if len(values) == 0 {
		return &InvalidInputError{Reason: "please enter at least one number"}
	}
	if maxSize > 0 && len(values) > maxSize {
		return &InvalidInputError{Reason: fmt.Sprintf("maximum %d numbers allowed", maxSize), Size: len(values)}
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidInputError{Reason: "numbers must be finite", Token: strconv.FormatFloat(v, 'g', -1, 64)}
		}
	}
	return nil
}

// Scale maps values into [MinMagnitude, MaxMagnitude] relative to the largest
// value. When the largest value is not positive, every magnitude is Midpoint.
func Scale(values []float64, maxSize int) ([]float64, error) {
	if err := Validate(values, maxSize); err != nil {
		return nil, err
	}
	top := values[0]
	for _, v := range values[1:] {
		if v > top {
			top = v
		}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = Magnitude(v, top)
	}
	return out, nil
}

// Magnitude scales a single value against top.
func Magnitude(v, top float64) float64 {
	if top <= 0 {
		return Midpoint
	}
	m := MinMagnitude + (MaxMagnitude-MinMagnitude)*(v/top)
	return math.Max(MinMagnitude, math.Min(MaxMagnitude, m))
}

// Random returns size integers drawn uniformly from [0, limit).
func Random(rng *rand.Rand, size, limit int) []float64 {
	if size <= 0 {
		size = DefaultRandomSize
	}
	if limit <= 0 {
		limit = DefaultRandomMax
	}
	values := make([]float64, size)
	for i := range values {
		values[i] = float64(rng.Intn(limit))
	}
	return values
}
