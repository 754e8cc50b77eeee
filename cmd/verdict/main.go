package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"stock-verdict/internal/app"
	"stock-verdict/internal/trace"
	"stock-verdict/internal/verdict"
)

// docFlags collects repeated -doc values
type docFlags []string

func (d *docFlags) String() string { return strings.Join(*d, ",") }

func (d *docFlags) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	var (
		configPath string
		ticker     string
		format     string
		docs       docFlags
	)
	flag.StringVar(&configPath, "config", "config.yaml", "path to config file")
	flag.StringVar(&ticker, "ticker", "", "ticker to analyze, e.g. RELIANCE.NS")
	flag.StringVar(&format, "format", "json", "output format: json or text")
	flag.Var(&docs, "doc", "report or article URL to mine for excerpts (repeatable)")
	flag.Parse()

	if strings.TrimSpace(ticker) == "" {
		fmt.Fprintln(os.Stderr, "-ticker is required")
		flag.Usage()
		os.Exit(2)
	}
	if format != "json" && format != "text" {
		fmt.Fprintf(os.Stderr, "unknown -format %q\n", format)
		os.Exit(2)
	}

	if err := app.InitializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer trace.Shutdown(context.Background())

	cfg, err := app.LoadConfig(ctx, configPath)
	if err != nil {
		os.Exit(1)
	}

	a := app.Build(ctx, cfg)
	report, err := a.Verdicts.Analyze(ctx, ticker, docs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze %s: %v\n", ticker, err)
		os.Exit(1)
	}

	if err := render(os.Stdout, format, report); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

func render(w io.Writer, format string, r *verdict.Report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	v := r.Verdict
	fmt.Fprintf(w, "%s  %s (confidence %d%%)\n", r.Ticker, v.Signal, v.Confidence)
	if r.Market.CurrentPrice != nil {
		fmt.Fprintf(w, "Price:      %s%.2f\n", r.Currency, *r.Market.CurrentPrice)
	}
	fmt.Fprintf(w, "Sentiment:  %.2f (%s)\n", r.Sentiment.OverallScore, r.Sentiment.OverallLabel)
	if v.RiskLevel != "" {
		fmt.Fprintf(w, "Risk:       %s\n", v.RiskLevel)
	}
	if v.Timeframe != "" {
		fmt.Fprintf(w, "Timeframe:  %s\n", v.Timeframe)
	}
	if v.TargetPrice != nil {
		fmt.Fprintf(w, "Target:     %s%.2f\n", r.Currency, *v.TargetPrice)
	}
	fmt.Fprintln(w, "Reasons:")
	for _, reason := range v.Reasons {
		fmt.Fprintf(w, "  - %s\n", reason)
	}
	fmt.Fprintf(w, "\n%s\n", v.AIExplanation)
	for source, reason := range r.Unavailable {
		fmt.Fprintf(w, "(%s unavailable: %s)\n", source, reason)
	}
	return nil
}
