// Package parser turns free-form coordinate text into validated numeric coordinates.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/ecefconv/internal/models"
	"github.com/hashicorp/go-multierror"
)

// ParseGeodetic parses latitude, longitude and height text into a GeodeticCoordinate.
// Latitude and longitude accept decimal degrees or degree-minute-second notation with an
// optional hemisphere letter; height is a plain decimal number of meters.
// Fields are checked in the order latitude, longitude, height and the first failure is returned.
func ParseGeodetic(lat, lon, height string) (models.GeodeticCoordinate, error) {
	latitude, err := ParseLatitude(lat)
	if err != nil {
		return models.GeodeticCoordinate{}, err
	}

	longitude, err := ParseLongitude(lon)
	if err != nil {
		return models.GeodeticCoordinate{}, err
	}

	hgt, err := parseDecimal(FieldHeight, height)
	if err != nil {
		return models.GeodeticCoordinate{}, err
	}

	return models.GeodeticCoordinate{Latitude: latitude, Longitude: longitude, Height: hgt}, nil
}

// ParseECEF parses three plain decimal numbers (meters) into an ECEFCoordinate.
// There is no range restriction. Fields are checked in the order y, x, z, matching the
// error ordering users of the desktop tool are used to; the first failure is returned.
func ParseECEF(x, y, z string) (models.ECEFCoordinate, error) {
	yVal, err := parseDecimal(FieldY, y)
	if err != nil {
		return models.ECEFCoordinate{}, err
	}

	xVal, err := parseDecimal(FieldX, x)
	if err != nil {
		return models.ECEFCoordinate{}, err
	}

	zVal, err := parseDecimal(FieldZ, z)
	if err != nil {
		return models.ECEFCoordinate{}, err
	}

	return models.ECEFCoordinate{X: xVal, Y: yVal, Z: zVal}, nil
}

// ParseLatitude parses latitude text in decimal or DMS notation. N and S hemisphere letters are accepted.
func ParseLatitude(text string) (float64, error) {
	return latitudeAxis.parse(text)
}

// ParseLongitude parses longitude text in decimal or DMS notation. E and W hemisphere letters are accepted.
func ParseLongitude(text string) (float64, error) {
	return longitudeAxis.parse(text)
}

// ValidateGeodetic applies the ParseGeodetic rules but reports every failing field.
// The returned error is a *multierror.Error of *ParseError values, or nil.
func ValidateGeodetic(lat, lon, height string) error {
	var result *multierror.Error

	if _, err := ParseLatitude(lat); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := ParseLongitude(lon); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := parseDecimal(FieldHeight, height); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// ValidateECEF applies the ParseECEF rules but reports every failing field, in x, y, z order.
func ValidateECEF(x, y, z string) error {
	var result *multierror.Error

	for _, f := range []struct {
		field Field
		text  string
	}{{FieldX, x}, {FieldY, y}, {FieldZ, z}} {
		if _, err := parseDecimal(f.field, f.text); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// parseDecimal parses a plain finite decimal number. Surrounding whitespace is ignored.
func parseDecimal(field Field, text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, newParseError(field, ErrEmptyField, text, "", nil)
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, newParseError(field, ErrNumericParse, text, strconv.Quote(trimmed)+" is not a decimal number", err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, newParseError(field, ErrNumericParse, text, "value must be finite", nil)
	}

	return value, nil
}
