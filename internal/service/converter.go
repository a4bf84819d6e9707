package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/ecefconv/internal/metrics"
	"github.com/UnknownOlympus/ecefconv/internal/models"
	"github.com/UnknownOlympus/ecefconv/internal/parser"
	"github.com/UnknownOlympus/ecefconv/internal/wgs84"
)

// Display precision of the formatted output.
const (
	angleDecimals  = 8
	lengthDecimals = 4
)

// Request is a single conversion request: a direction and its three raw input fields.
// For Geo2ECEF the fields are latitude, longitude and height; for ECEF2Geo they are X, Y and Z.
type Request struct {
	Direction models.Direction
	Input     [3]string
}

// Result holds the converted coordinate formatted for display.
// For Geo2ECEF the output is X, Y, Z; for ECEF2Geo it is latitude, longitude, height.
type Result struct {
	Direction  models.Direction
	Output     [3]string
	Geodetic   models.GeodeticCoordinate
	ECEF       models.ECEFCoordinate
	Iterations int // latitude refinement steps, ECEF2Geo only
}

// Joined returns the output fields separated by commas, ready to be pasted elsewhere.
func (r Result) Joined() string {
	return strings.Join(r.Output[:], ",")
}

// Converter runs the parse-then-transform pipeline and records metrics about it.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	log     *slog.Logger     // Logger for conversion events
	metrics *metrics.Metrics // Metrics for conversion outcomes and latency
}

// NewConverter creates a Converter that logs to log and records to metrics.
func NewConverter(log *slog.Logger, metrics *metrics.Metrics) *Converter {
	return &Converter{log: log, metrics: metrics}
}

// Convert parses the request input and converts it in the requested direction.
// Any error comes from parsing and is returned before a conversion is attempted; it is
// a *parser.ParseError whose message is suitable for showing to the user verbatim.
func (c *Converter) Convert(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	in := req.Input
	res := Result{Direction: req.Direction}

	switch req.Direction {
	case models.Geo2ECEF:
		geo, err := parser.ParseGeodetic(in[0], in[1], in[2])
		if err != nil {
			return Result{}, c.reject(ctx, req, err)
		}
		res.Geodetic = geo
		res.ECEF = wgs84.GeodeticToECEF(geo.Latitude, geo.Longitude, geo.Height)
		res.Output = FormatECEF(res.ECEF)

	case models.ECEF2Geo:
		ecef, err := parser.ParseECEF(in[0], in[1], in[2])
		if err != nil {
			return Result{}, c.reject(ctx, req, err)
		}
		res.ECEF = ecef
		res.Geodetic, res.Iterations = wgs84.ECEFToGeodeticIterations(ecef.X, ecef.Y, ecef.Z)
		res.Output = FormatGeodetic(res.Geodetic)
		c.metrics.LatitudeIterations.Observe(float64(res.Iterations))

	default:
		return Result{}, fmt.Errorf("%w: %d", models.ErrUnknownDirection, int(req.Direction))
	}

	c.metrics.ConversionSeconds.WithLabelValues(req.Direction.String()).Observe(time.Since(start).Seconds())
	c.metrics.Conversions.WithLabelValues(req.Direction.String(), "success").Inc()
	c.log.DebugContext(ctx, "Conversion completed",
		"direction", req.Direction,
		"input", in,
		"output", res.Output,
		"iterations", res.Iterations,
	)

	return res, nil
}

// Validate checks every input field of the request and reports all failures at once.
// The returned error, if any, is a *multierror.Error of *parser.ParseError values.
func (c *Converter) Validate(ctx context.Context, req Request) error {
	in := req.Input

	var err error
	switch req.Direction {
	case models.Geo2ECEF:
		err = parser.ValidateGeodetic(in[0], in[1], in[2])
	case models.ECEF2Geo:
		err = parser.ValidateECEF(in[0], in[1], in[2])
	default:
		return fmt.Errorf("%w: %d", models.ErrUnknownDirection, int(req.Direction))
	}

	if err != nil {
		c.log.DebugContext(ctx, "Validation failed", "direction", req.Direction, "error", err)
	}
	return err
}

func (c *Converter) reject(ctx context.Context, req Request, err error) error {
	c.metrics.Conversions.WithLabelValues(req.Direction.String(), "failure").Inc()

	var perr *parser.ParseError
	if errors.As(err, &perr) {
		c.metrics.ParseErrors.WithLabelValues(string(perr.Field), perr.KindName()).Inc()
	}

	c.log.InfoContext(ctx, "Rejected conversion input", "direction", req.Direction, "error", err)
	return err
}

// FormatGeodetic renders latitude and longitude with 8 decimals and height with 4.
func FormatGeodetic(g models.GeodeticCoordinate) [3]string {
	return [3]string{
		strconv.FormatFloat(g.Latitude, 'f', angleDecimals, 64),
		strconv.FormatFloat(g.Longitude, 'f', angleDecimals, 64),
		strconv.FormatFloat(g.Height, 'f', lengthDecimals, 64),
	}
}

// FormatECEF renders each ECEF component in meters with 4 decimals.
func FormatECEF(e models.ECEFCoordinate) [3]string {
	return [3]string{
		strconv.FormatFloat(e.X, 'f', lengthDecimals, 64),
		strconv.FormatFloat(e.Y, 'f', lengthDecimals, 64),
		strconv.FormatFloat(e.Z, 'f', lengthDecimals, 64),
	}
}
