package models

import (
	"errors"
	"fmt"
	"strings"
)

// Direction selects which conversion runs and how the three input fields are interpreted.
type Direction int

const (
	// Geo2ECEF reads latitude, longitude and height and produces X, Y, Z.
	Geo2ECEF Direction = iota + 1
	// ECEF2Geo reads X, Y, Z and produces latitude, longitude and height.
	ECEF2Geo
)

// ErrUnknownDirection is returned when a direction name is not recognized.
var ErrUnknownDirection = errors.New("unknown conversion direction")

// ParseDirection maps a direction name ("geo2ecef" or "ecef2geo") to a Direction.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "geo2ecef":
		return Geo2ECEF, nil
	case "ecef2geo":
		return ECEF2Geo, nil
	default:
		return 0, fmt.Errorf("%w: %q (available: geo2ecef, ecef2geo)", ErrUnknownDirection, name)
	}
}

func (d Direction) String() string {
	switch d {
	case Geo2ECEF:
		return "geo2ecef"
	case ECEF2Geo:
		return "ecef2geo"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d != Geo2ECEF && d != ECEF2Geo {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
