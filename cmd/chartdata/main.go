// Command chartdata computes the quartet and precipitation chart data once and
// prints it to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/wxcharts/internal/charts"
	"github.com/chrissnell/wxcharts/internal/dataset"
	"github.com/chrissnell/wxcharts/internal/log"
	"github.com/chrissnell/wxcharts/pkg/precip"
	"github.com/chrissnell/wxcharts/pkg/responseformat"
)

type output struct {
	Anscombe      []charts.AnscombeChart   `json:"anscombe,omitempty"`
	Precipitation *charts.PrecipChart      `json:"precipitation,omitempty"`
	Temperature   *charts.TemperatureChart `json:"temperature,omitempty"`
}

func main() {
	var anscombePath, weatherPath, layout, format string
	var from, to, step float64
	var debug bool
	flag.StringVar(&anscombePath, "anscombe", "", "CSV file with dataset,x,y columns")
	flag.StringVar(&weatherPath, "weather", "", "CSV file with date,min_temp,max_temp,precip columns")
	flag.StringVar(&layout, "date-layout", precip.DefaultDateLayout, "Go time layout of the weather date column")
	flag.StringVar(&format, "format", "json", "Output format: json or msgpack")
	flag.Float64Var(&from, "sample-from", 1, "First x value of the sampled regression line")
	flag.Float64Var(&to, "sample-to", 20, "Last x value of the sampled regression line")
	flag.Float64Var(&step, "sample-step", 1, "Step between sampled x values")
	flag.BoolVar(&debug, "debug", false, "Turn on debugging output")
	flag.Parse()

	if anscombePath == "" && weatherPath == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one of -anscombe or -weather is required")
		flag.Usage()
		os.Exit(1)
	}
	if format != string(responseformat.JSON) && format != string(responseformat.MsgPack) {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %q\n", format)
		os.Exit(1)
	}

	if err := log.Init(debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	var out output

	if anscombePath != "" {
		svc := charts.NewService(dataset.NewCSVAnscombeSource(anscombePath), nil, charts.SampleRange{From: from, To: to, Step: step})
		result, err := svc.AnscombeAll(ctx)
		if err != nil {
			log.Errorf("computing quartet charts: %v", err)
			os.Exit(1)
		}
		for _, c := range result {
			log.Debugw("fitted dataset", "dataset", c.Dataset, "slope", c.Line.Slope, "intercept", c.Line.Intercept)
		}
		out.Anscombe = result
	}

	if weatherPath != "" {
		svc := charts.NewService(nil, dataset.NewCSVSource(weatherPath, layout), charts.SampleRange{})
		p, err := svc.Precipitation(ctx)
		if err != nil {
			log.Errorf("computing precipitation chart: %v", err)
			os.Exit(1)
		}
		t, err := svc.Temperature(ctx)
		if err != nil {
			log.Errorf("computing temperature chart: %v", err)
			os.Exit(1)
		}
		log.Debugw("aggregated weather", "days", p.Days, "series", len(p.Series))
		out.Precipitation = &p
		out.Temperature = &t
	}

	if err := responseformat.Encode(os.Stdout, responseformat.Format(format), out); err != nil {
		log.Errorf("writing output: %v", err)
		os.Exit(1)
	}
}
