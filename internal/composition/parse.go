package composition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/phasekit/internal/species"
)

var (
	ErrSyntax = errors.New("composition: malformed name:value pair")

	// ErrUnknownSpecies wraps species.ErrNameNotFound so callers can test
	// for either.
	ErrUnknownSpecies = fmt.Errorf("composition: unknown species: %w", species.ErrNameNotFound)
)

// ParseError reports the pair that could not be applied.
type ParseError struct {
	Text string
	Pair string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q in %q", e.Err, e.Pair, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads "name:value" pairs separated by commas, semicolons, slashes
// or whitespace and stores them in m. Every name must already be a key of
// m. On error m is left unchanged.
func Parse(text string, m Map) error {
	parsed := make(map[string]float64)
	for _, pair := range splitPairs(text) {
		i := strings.LastIndexByte(pair, ':')
		if i <= 0 || i == len(pair)-1 {
			return &ParseError{Text: text, Pair: pair, Err: ErrSyntax}
		}
		name := pair[:i]
		v, err := strconv.ParseFloat(pair[i+1:], 64)
		if err != nil {
			return &ParseError{Text: text, Pair: pair, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		}
		if !m.Has(name) {
			return &ParseError{Text: text, Pair: pair, Err: ErrUnknownSpecies}
		}
		parsed[name] = v
	}

	for name, v := range parsed {
		m[name] = v
	}
	return nil
}

// splitPairs tokenizes on separators and rejoins "A: 0.3" into "A:0.3".
func splitPairs(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', ';', '/', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})

	pairs := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if strings.HasSuffix(f, ":") && i+1 < len(fields) && !strings.Contains(fields[i+1], ":") {
			f += fields[i+1]
			i++
		}
		pairs = append(pairs, f)
	}
	return pairs
}
