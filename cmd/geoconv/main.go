// Command geoconv converts a single coordinate between WGS84 geodetic and ECEF form.
//
//	geoconv -d geo2ecef "15°13'12.1252\"N" "100 12 12.3256 E" 5.202
//	geoconv -d ecef2geo -- -1070053.3249 6068573.9676 1640100.7872
//	geoconv -d ecef2geo --example --dms
//
// Negative values must follow "--" so they are not read as flags.
// A single argument holding three comma-separated fields is accepted as well.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/UnknownOlympus/ecefconv/internal/logger"
	"github.com/UnknownOlympus/ecefconv/internal/metrics"
	"github.com/UnknownOlympus/ecefconv/internal/models"
	"github.com/UnknownOlympus/ecefconv/internal/parser"
	"github.com/UnknownOlympus/ecefconv/internal/service"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

var (
	geodeticLabels = [3]string{"latitude", "longitude", "height"}
	ecefLabels     = [3]string{"x", "y", "z"}
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("geoconv", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: geoconv [-d geo2ecef|ecef2geo] [flags] [--] A B C")
		fs.PrintDefaults()
	}

	direction := fs.StringP("direction", "d", models.Geo2ECEF.String(), "conversion direction: geo2ecef or ecef2geo")
	example := fs.Bool("example", false, "convert the built-in example input for the direction")
	joined := fs.Bool("joined", false, "print the output as one comma-separated line")
	dms := fs.Bool("dms", false, "print latitude and longitude as degrees, minutes and seconds")
	validate := fs.Bool("validate", false, "report every invalid input field without converting")
	verbose := fs.BoolP("verbose", "v", false, "log conversion details to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	dir, err := models.ParseDirection(*direction)
	if err != nil {
		fmt.Fprintln(stderr, "geoconv:", err)
		return 2
	}

	input, err := inputFields(dir, fs.Args(), *example)
	if err != nil {
		fmt.Fprintln(stderr, "geoconv:", err)
		fs.Usage()
		return 2
	}

	env := logger.EnvProd
	if *verbose {
		env = logger.EnvLocal
	}
	converter := service.NewConverter(logger.Setup(env, stderr), metrics.NewMetrics(prometheus.NewRegistry()))
	req := service.Request{Direction: dir, Input: input}

	if *validate {
		return reportValidation(converter.Validate(context.Background(), req), stdout, stderr)
	}

	res, err := converter.Convert(context.Background(), req)
	if err != nil {
		fmt.Fprintln(stderr, "geoconv:", err)
		return 1
	}

	if *dms && dir == models.ECEF2Geo {
		res.Output[0] = parser.FormatLatitudeDMS(res.Geodetic.Latitude)
		res.Output[1] = parser.FormatLongitudeDMS(res.Geodetic.Longitude)
	}

	if *joined {
		fmt.Fprintln(stdout, res.Joined())
		return 0
	}

	labels := ecefLabels
	if dir == models.ECEF2Geo {
		labels = geodeticLabels
	}
	for i, v := range res.Output {
		fmt.Fprintf(stdout, "%-10s %s\n", labels[i]+":", v)
	}
	return 0
}

// inputFields picks the three raw input fields from the positional arguments or the example set.
func inputFields(dir models.Direction, args []string, example bool) ([3]string, error) {
	var in [3]string

	if example {
		if len(args) > 0 {
			return in, errors.New("--example takes no positional arguments")
		}
		if dir == models.ECEF2Geo {
			return models.ExampleECEFInput, nil
		}
		return models.ExampleGeodeticInput, nil
	}

	if len(args) == 1 && strings.Count(args[0], ",") == 2 {
		args = strings.Split(args[0], ",")
	}
	if len(args) != len(in) {
		return in, fmt.Errorf("expected 3 input fields, got %d", len(args))
	}
	copy(in[:], args)
	return in, nil
}

func reportValidation(err error, stdout, stderr io.Writer) int {
	if err == nil {
		fmt.Fprintln(stdout, "valid")
		return 0
	}

	errs := []error{err}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.WrappedErrors()
	}
	for _, e := range errs {
		fmt.Fprintln(stderr, "geoconv:", e)
	}
	return 1
}
