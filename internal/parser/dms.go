package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxComponents = 3

// axis holds the per-field rules for angular input.
type axis struct {
	field    Field
	positive rune    // hemisphere letter for positive values
	negative rune    // hemisphere letter for negative values
	limit    float64 // maximum magnitude in degrees
}

var (
	latitudeAxis  = axis{field: FieldLatitude, positive: 'N', negative: 'S', limit: 90}
	longitudeAxis = axis{field: FieldLongitude, positive: 'E', negative: 'W', limit: 180}
)

// isSeparator reports whether r separates degree, minute and second components.
func isSeparator(r rune) bool {
	switch r {
	case '°', 'º', '\'', '′', '’', '‘', '"', '″', '”', '“', ':':
		return true
	}
	return unicode.IsSpace(r)
}

func isHemisphere(r rune) bool {
	switch unicode.ToUpper(r) {
	case 'N', 'S', 'E', 'W':
		return true
	}
	return false
}

// parse converts angular text into signed decimal degrees.
//
// Accepted forms include "15.22", "-15.22", "15 13 12.1252 N", `15°13'12.1252"N` and
// "S 33 52.128". Components are combined as degrees + minutes/60 + seconds/3600.
func (ax axis) parse(text string) (float64, error) {
	tokens := strings.FieldsFunc(text, isSeparator)
	if len(tokens) == 0 {
		return 0, newParseError(ax.field, ErrEmptyField, text, "", nil)
	}

	hemisphere, tokens, err := ax.splitHemisphere(text, tokens)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, newParseError(ax.field, ErrEmptyField, text, "no numeric value", nil)
	}
	if len(tokens) > maxComponents {
		return 0, newParseError(ax.field, ErrMalformedDMS, text,
			fmt.Sprintf("expected at most %d components, got %d", maxComponents, len(tokens)), nil)
	}

	negative := strings.HasPrefix(tokens[0], "-")
	if negative && hemisphere != 0 {
		return 0, newParseError(ax.field, ErrMalformedDMS, text, "negative sign conflicts with hemisphere letter", nil)
	}

	components, err := ax.components(text, tokens)
	if err != nil {
		return 0, err
	}

	value := math.Abs(components[0]) + components[1]/60 + components[2]/3600
	if negative || unicode.ToUpper(hemisphere) == ax.negative {
		value = -value
	}

	if math.Abs(value) > ax.limit {
		return 0, newParseError(ax.field, ErrOutOfRange, text,
			fmt.Sprintf("%s must be within ±%g°", ax.field, ax.limit), nil)
	}

	return value, nil
}

// splitHemisphere strips a hemisphere letter leading the first token or trailing the last one.
// It returns the letter (0 when absent) and the remaining non-empty tokens.
func (ax axis) splitHemisphere(text string, tokens []string) (rune, []string, error) {
	var hemisphere rune

	if r, size := utf8.DecodeRuneInString(tokens[0]); unicode.IsLetter(r) {
		if err := ax.checkHemisphere(text, tokens[0], r); err != nil {
			return 0, nil, err
		}
		hemisphere = r
		tokens[0] = tokens[0][size:]
	}

	last := len(tokens) - 1
	if r, size := utf8.DecodeLastRuneInString(tokens[last]); unicode.IsLetter(r) {
		if err := ax.checkHemisphere(text, tokens[last], r); err != nil {
			return 0, nil, err
		}
		if hemisphere != 0 {
			return 0, nil, newParseError(ax.field, ErrMalformedDMS, text, "more than one hemisphere letter", nil)
		}
		hemisphere = r
		tokens[last] = tokens[last][:len(tokens[last])-size]
	}

	rest := tokens[:0]
	for _, tok := range tokens {
		if tok != "" {
			rest = append(rest, tok)
		}
	}

	return hemisphere, rest, nil
}

func (ax axis) checkHemisphere(text, token string, r rune) error {
	switch upper := unicode.ToUpper(r); {
	case upper == ax.positive || upper == ax.negative:
		return nil
	case isHemisphere(r):
		return newParseError(ax.field, ErrMalformedDMS, text,
			fmt.Sprintf("hemisphere %c does not apply to %s", upper, ax.field), nil)
	default:
		return newParseError(ax.field, ErrNumericParse, text, strconv.Quote(token)+" is not a number", nil)
	}
}

// components parses up to three numeric tokens into degrees, minutes and seconds.
func (ax axis) components(text string, tokens []string) ([maxComponents]float64, error) {
	var out [maxComponents]float64

	for i, tok := range tokens {
		if r, _ := utf8.DecodeRuneInString(tok); len(tok) == 1 && isHemisphere(r) {
			return out, newParseError(ax.field, ErrMalformedDMS, text,
				"hemisphere letter must lead or trail the value", nil)
		}

		value, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return out, newParseError(ax.field, ErrNumericParse, text, strconv.Quote(tok)+" is not a number", err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return out, newParseError(ax.field, ErrNumericParse, text, strconv.Quote(tok)+" is not finite", nil)
		}

		if i > 0 {
			if strings.HasPrefix(tok, "-") || strings.HasPrefix(tok, "+") {
				return out, newParseError(ax.field, ErrMalformedDMS, text, "minutes and seconds must be unsigned", nil)
			}
			if value >= 60 {
				return out, newParseError(ax.field, ErrMalformedDMS, text,
					fmt.Sprintf("%s must be less than 60", componentName(i)), nil)
			}
		}
		if i < len(tokens)-1 && value != math.Trunc(value) {
			return out, newParseError(ax.field, ErrMalformedDMS, text,
				"only the last component may have a fractional part", nil)
		}

		out[i] = value
	}

	return out, nil
}

func componentName(i int) string {
	switch i {
	case 0:
		return "degrees"
	case 1:
		return "minutes"
	default:
		return "seconds"
	}
}
