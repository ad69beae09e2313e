package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akvise/trends-checker/internal/config"
	"github.com/akvise/trends-checker/pkg/checker"
	"github.com/akvise/trends-checker/pkg/keywords"
	"github.com/akvise/trends-checker/pkg/logger"
	"github.com/akvise/trends-checker/pkg/report"
	"github.com/akvise/trends-checker/pkg/trends"
)

const (
	exitOK          = 0
	exitNoData      = 1
	exitConfig      = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	v := config.NewViper()

	// Flag defaults come from viper (built-ins layered with TRENDS_* env);
	// explicitly set flags win over the config file too.
	var (
		configFile  = flag.String("config", "", "Optional YAML config file path")
		kwsFlag     = flag.String("keywords", v.GetString("keywords"), "Comma-separated list of up to 5 keywords (env: TRENDS_KEYWORDS)")
		kwsFileFlag = flag.String("keywords-file", v.GetString("keywords_file"), "Path to file with keywords, one per line; # comments and blanks skipped (env: TRENDS_KEYWORDS_FILE)")
		geoFlag     = flag.String("geo", v.GetString("geo"), "Comma-separated regions (ISO country code) or WW for worldwide (env: TRENDS_GEO)")
		tfFlag      = flag.String("timeframe", v.GetString("timeframe"), "Trends timeframe, e.g. 'today 12-m', 'today 5-y' (env: TRENDS_TIMEFRAME)")
		hlFlag      = flag.String("hl", v.GetString("hl"), "UI language tag, e.g. en-US or ru-RU (env: TRENDS_HL)")
		sleepFlag   = flag.Float64("sleep", v.GetFloat64("sleep"), "Sleep seconds between region requests (env: TRENDS_SLEEP)")
		retriesFlag = flag.Int("retries", v.GetInt("retries"), "Retries on 429/temporary errors per region (env: TRENDS_RETRIES)")
		backoffFlag = flag.Float64("backoff", v.GetFloat64("backoff"), "Exponential backoff base seconds (env: TRENDS_BACKOFF)")
		jitterFlag  = flag.Float64("jitter", v.GetFloat64("jitter"), "Random jitter seconds added to backoff and sleeps (env: TRENDS_JITTER)")
		proxyFlag   = flag.String("proxy", v.GetString("proxy"), "Comma-separated HTTP/HTTPS proxy URLs (env: TRENDS_PROXY)")
		cookieFlag  = flag.String("cookie", v.GetString("cookie"), "Raw Cookie header value (env: TRENDS_COOKIE)")
		cookieFile  = flag.String("cookie-file", v.GetString("cookie_file"), "Path to a file with the Cookie header value; wins over -cookie (env: TRENDS_COOKIE_FILE)")
		displayFlag = flag.String("display", v.GetString("display"), "Table layout: 'vertical' (default) or 'wide' (env: TRENDS_DISPLAY)")
		outputFlag  = flag.String("output", v.GetString("output"), "Write summary CSV to this path (env: TRENDS_OUTPUT)")
		relatedFlag = flag.Bool("related", v.GetBool("related"), "Fetch rising related queries per keyword per region (env: TRENDS_RELATED)")
		debugFlag   = flag.Bool("debug", v.GetBool("debug"), "Enable debug logging (env: TRENDS_DEBUG)")
	)
	flag.Usage = printUsage
	flag.Parse()

	if err := config.LoadFile(v, *configFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfig
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return exitConfig
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "keywords":
			cfg.Keywords = *kwsFlag
		case "keywords-file":
			cfg.KeywordsFile = *kwsFileFlag
		case "geo":
			cfg.Geo = *geoFlag
		case "timeframe":
			cfg.Timeframe = *tfFlag
		case "hl":
			cfg.HL = *hlFlag
		case "sleep":
			cfg.Sleep = *sleepFlag
		case "retries":
			cfg.Retries = *retriesFlag
		case "backoff":
			cfg.Backoff = *backoffFlag
		case "jitter":
			cfg.Jitter = *jitterFlag
		case "proxy":
			cfg.Proxy = *proxyFlag
		case "cookie":
			cfg.Cookie = *cookieFlag
		case "cookie-file":
			cfg.CookieFile = *cookieFile
		case "display":
			cfg.Display = *displayFlag
		case "output":
			cfg.Output = *outputFlag
		case "related":
			cfg.Related = *relatedFlag
		case "debug":
			cfg.Debug = *debugFlag
		}
	})

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	logger.SetLogger(logger.New(logger.Config{Level: level, Format: "console", Output: "stderr"}))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfig
	}

	kws, err := keywords.Resolve(cfg.Keywords, cfg.KeywordsFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfig
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := checker.NewTrendsFetcher(kws, cfg.Timeframe, trends.Options{
		HL:      cfg.HL,
		TZ:      0,
		Cookie:  cfg.ResolveCookie(),
		Proxies: trends.NewProxyPool(cfg.Proxy),
	})
	chk := checker.New(checker.Config{
		Keywords: kws,
		Geos:     cfg.Geos(),
		Sleep:    cfg.Sleep,
		Policy: checker.RetryPolicy{
			Retries: cfg.Retries,
			Backoff: cfg.Backoff,
			Jitter:  cfg.Jitter,
		},
		Related: cfg.Related,
	}, fetcher)

	result, err := chk.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			fmt.Println("Interrupted")
			return exitInterrupted
		}
		if errors.Is(err, checker.ErrNoData) {
			fmt.Println("No summary data produced.")
			return exitNoData
		}
		fmt.Fprintln(os.Stderr, err)
		return exitNoData
	}

	if cfg.Related {
		report.RenderRelated(os.Stdout, result)
	}

	if err := report.Render(os.Stdout, result, cfg.Display); err != nil {
		logger.WithError(err).Warn("falling back to plain rendering")
		report.RenderPlain(os.Stdout, result, cfg.Display)
	}

	if cfg.Output != "" {
		if err := report.WriteCSV(cfg.Output, result); err != nil {
			logger.WithError(err).Warn("failed to save CSV")
		} else {
			fmt.Printf("\nSaved CSV: %s\n", cfg.Output)
		}
	}

	return exitOK
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `trends-checker - probe Google Trends (YouTube Search) for keyword interest

Usage:
  trends-checker [flags]

Every flag has an environment fallback with the TRENDS_ prefix; explicitly
set flags win over the environment and over an optional -config file.

Flags:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Exit codes:
  0   at least one region produced data
  1   no region produced data
  2   configuration error
  130 interrupted

Examples:
  trends-checker -geo US,BR -display wide -output summary.csv
  trends-checker -keywords-file kws.txt -related
`)
}
