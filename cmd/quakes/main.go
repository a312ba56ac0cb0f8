// Command quakes runs a single query against the USGS earthquake feed and
// prints the matching events.
//
// Examples:
//
//	quakes -start 2024-01-01 -end 2024-02-01 -min-mag 5
//	quakes -country JP -min-mag 4.5 -order magnitude -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/quake-feed/internal/adapter/usgs"
	"github.com/couchcryptid/quake-feed/internal/boundary"
	"github.com/couchcryptid/quake-feed/internal/client"
	"github.com/couchcryptid/quake-feed/internal/config"
	"github.com/couchcryptid/quake-feed/internal/domain"
	"github.com/couchcryptid/quake-feed/internal/observability"
)

func main() {
	_ = godotenv.Load(".env")

	var (
		start   = flag.String("start", "", "range start, 2006-01-02 or 2006-01-02T15:04 (UTC)")
		end     = flag.String("end", "", "range end, same layouts as -start")
		minMag  = flag.Float64("min-mag", -1, "minimum magnitude")
		maxMag  = flag.Float64("max-mag", -1, "maximum magnitude")
		alert   = flag.String("alert", "", "PAGER alert level: green, yellow, orange, red")
		order   = flag.String("order", "", "ordering: time, time-asc, magnitude, magnitude-asc")
		country = flag.String("country", "", "ISO-3166 alpha-2 country code, filtered client-side")
		asJSON  = flag.Bool("json", false, "print the result set as JSON")
		timeout = flag.Duration("timeout", 30*time.Second, "overall request timeout")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetrics()

	index, err := boundary.Default()
	if err != nil {
		fmt.Fprintln(os.Stderr, "boundary dataset:", err)
		os.Exit(1)
	}

	transport := usgs.NewClient(cfg.USGSBaseURL, cfg.USGSTimeout, metrics, logger)
	qc := client.New(transport, usgs.Codec{}, index, metrics, logger)

	b := qc.Query()
	if *start != "" {
		t, err := parseTime(*start)
		if err != nil {
			fmt.Fprintln(os.Stderr, "-start:", err)
			os.Exit(2)
		}
		b = b.StartAt(t)
	}
	if *end != "" {
		t, err := parseTime(*end)
		if err != nil {
			fmt.Fprintln(os.Stderr, "-end:", err)
			os.Exit(2)
		}
		b = b.EndAt(t)
	}
	if *minMag >= 0 {
		b = b.MinMagnitude(*minMag)
	}
	if *maxMag >= 0 {
		b = b.MaxMagnitude(*maxMag)
	}
	if *alert != "" {
		b = b.AlertLevel(domain.AlertLevel(*alert))
	}
	if *order != "" {
		b = b.OrderBy(domain.OrderBy(*order))
	}
	if *country != "" {
		b = b.Country(*country)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rs, err := b.Fetch(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	printTable(rs)
}

// parseTime accepts a date or a date with minutes, both read as UTC.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func printTable(rs domain.ResultSet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tMAG\tDEPTH(KM)\tALERT\tPLACE")
	for _, ev := range rs.Events {
		mag := "-"
		if ev.Magnitude != nil {
			mag = fmt.Sprintf("%.1f", *ev.Magnitude)
		}
		alert := "-"
		if ev.Alert != nil {
			alert = string(*ev.Alert)
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\n",
			ev.Time.Format(time.RFC3339), mag, ev.DepthKM, alert, ev.Place)
	}
	w.Flush()
	fmt.Printf("%d events", rs.Count)
	if !rs.Generated.IsZero() {
		fmt.Printf(" (feed generated %s)", rs.Generated.Format(time.RFC3339))
	}
	fmt.Println()
}
