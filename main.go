package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"ytdiff-go/internal/config"
	"ytdiff-go/internal/handler"
	"ytdiff-go/pkg/differ"
	"ytdiff-go/pkg/extractor"
	"ytdiff-go/pkg/logger"
	"ytdiff-go/pkg/storage"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func main() {
	// A .env in the working directory supplies env vars for local runs.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "diff":
		err = runDiff(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "help", "-h", "-help", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration and applies the logger settings.
func loadConfig(configPath string, debug bool) (*config.Config, error) {
	cfg, err := config.NewManager().Load(configPath)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Logger
	if debug {
		logCfg.Level = "debug"
	}
	logger.Configure(logCfg)

	return cfg, nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	var (
		configPath = fs.String("config", getEnvOrDefault("YTDIFF_CONFIG", ""), "Config file path (env: YTDIFF_CONFIG)")
		output     = fs.String("out", "", "Output record path (default from config: videos.json)")
		source     = fs.String("source", "", "Source label stored in the record (default: input file name)")
		limit      = fs.Int("limit", 0, "Maximum entries to keep, 0 = config default")
		debug      = fs.Bool("debug", getEnvBoolOrDefault("DEBUG", false), "Enable debug logging (env: DEBUG)")
	)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("extract: missing input HTML path (usage: ytdiff extract <page.html> [record.json])")
	}
	input := fs.Arg(0)

	cfg, err := loadConfig(*configPath, *debug)
	if err != nil {
		return err
	}

	outPath := *output
	if outPath == "" {
		if fs.NArg() > 1 {
			outPath = fs.Arg(1)
		} else {
			outPath = cfg.Extract.DefaultOutput
		}
	}

	label := *source
	if label == "" {
		label = filepath.Base(input)
	}

	maxEntries := *limit
	if maxEntries <= 0 {
		maxEntries = cfg.Extract.MaxEntries
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}
	defer f.Close()

	ext := extractor.NewChannelExtractor()
	ext.SetFilters([]extractor.Filter{
		extractor.NewDuplicateFilter("dedup"),
		extractor.NewLimitFilter("limit", maxEntries),
	})

	ctx := context.Background()
	record, err := ext.Extract(ctx, f, label)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	store := storage.NewFileStore()
	if err := store.SaveRecord(ctx, outPath, record); err != nil {
		return err
	}

	fmt.Printf("Extracted %d video URLs from %s -> %s\n", record.Count, input, outPath)
	for i, entry := range record.Entries {
		if i == 5 {
			fmt.Printf("  ... and %d more\n", record.Count-5)
			break
		}
		fmt.Printf("  %s\n", entry.URL)
	}

	return nil
}

func runDiff(args []string) error {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	var (
		configPath = fs.String("config", getEnvOrDefault("YTDIFF_CONFIG", ""), "Config file path (env: YTDIFF_CONFIG)")
		output     = fs.String("out", "", "Write the comparison result to this JSON file")
		quiet      = fs.Bool("quiet", getEnvBoolOrDefault("YTDIFF_QUIET", false), "Only print counts (env: YTDIFF_QUIET)")
		debug      = fs.Bool("debug", getEnvBoolOrDefault("DEBUG", false), "Enable debug logging (env: DEBUG)")
	)
	fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("diff: two record paths are required (usage: ytdiff diff <a.json> <b.json>)")
	}

	cfg, err := loadConfig(*configPath, *debug)
	if err != nil {
		return err
	}
	beQuiet := *quiet || cfg.Diff.Quiet

	ctx := context.Background()
	store := storage.NewFileStore()

	first, err := store.LoadRecord(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	second, err := store.LoadRecord(ctx, fs.Arg(1))
	if err != nil {
		return err
	}

	result, err := differ.NewURLDiffer().Compare(ctx, first, second, differ.Options{Quiet: beQuiet})
	if err != nil {
		return err
	}

	printComparison(result, first.Count, second.Count, beQuiet)

	if *output != "" {
		if err := store.SaveResult(ctx, *output, result); err != nil {
			return err
		}
		fmt.Printf("Result saved to %s\n", *output)
	}

	return nil
}

func printComparison(result *differ.ComparisonResult, firstCount, secondCount int, quiet bool) {
	fmt.Printf("=== Video URL Comparison ===\n")
	fmt.Printf("First:  %s (%d URLs)\n", result.First, firstCount)
	fmt.Printf("Second: %s (%d URLs)\n", result.Second, secondCount)
	fmt.Printf("Common: %d   Total unique: %d\n", result.CommonCount, result.TotalUnique)

	if quiet {
		fmt.Printf("Only in first: %d\n", result.OnlyInFirstCount)
		fmt.Printf("Only in second: %d\n", result.OnlyInSecondCount)
		return
	}

	if len(result.OnlyInFirst) > 0 {
		fmt.Printf("\nOnly in %s (%d):\n", result.First, result.OnlyInFirstCount)
		for _, u := range result.OnlyInFirst {
			fmt.Printf("  %s\n", u)
		}
	}
	if len(result.OnlyInSecond) > 0 {
		fmt.Printf("\nOnly in %s (%d):\n", result.Second, result.OnlyInSecondCount)
		for _, u := range result.OnlyInSecond {
			fmt.Printf("  %s\n", u)
		}
	}
	if !result.HasDifferences() {
		fmt.Printf("\nNo differences found.\n")
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		configPath = fs.String("config", getEnvOrDefault("YTDIFF_CONFIG", ""), "Config file path (env: YTDIFF_CONFIG)")
		host       = fs.String("host", "", "Listen host (default from config)")
		port       = fs.Int("port", 0, "Listen port (default from config)")
		debug      = fs.Bool("debug", getEnvBoolOrDefault("DEBUG", false), "Enable debug logging (env: DEBUG)")
	)
	fs.Parse(args)

	cfg, err := loadConfig(*configPath, *debug)
	if err != nil {
		return err
	}
	if *host == "" {
		*host = cfg.Server.Host
	}
	if *port == 0 {
		*port = cfg.Server.Port
	}

	log := logger.GetLogger().WithField("component", "serve")

	app := fiber.New(fiber.Config{
		AppName:               "ytdiff",
		DisableStartupMessage: true,
	})
	ctrl := handler.NewController(
		extractor.NewChannelExtractor(),
		differ.NewURLDiffer(),
		storage.NewMemoryStore(),
	)
	ctrl.Register(app)

	addr := fmt.Sprintf("%s:%d", *host, *port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.WithField("addr", addr).Info("Review API listening")

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info("Shutdown signal received")
		return app.ShutdownWithTimeout(5 * time.Second)
	}
}

func printUsage() {
	fmt.Println("ytdiff - extract and compare video URL listings from saved YouTube channel pages")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ytdiff extract <page.html> [record.json] [OPTIONS]")
	fmt.Println("    ytdiff diff <a.json> <b.json> [OPTIONS]")
	fmt.Println("    ytdiff serve [OPTIONS]")
	fmt.Println("")
	fmt.Println("EXTRACT OPTIONS:")
	fmt.Println("    -out string      Output record path (default: videos.json)")
	fmt.Println("    -source string   Source label stored in the record (default: input file name)")
	fmt.Println("    -limit int       Maximum entries to keep (default from config)")
	fmt.Println("")
	fmt.Println("DIFF OPTIONS:")
	fmt.Println("    -out string      Also write the comparison result to this JSON file")
	fmt.Println("    -quiet           Only print counts (env: YTDIFF_QUIET)")
	fmt.Println("")
	fmt.Println("SERVE OPTIONS:")
	fmt.Println("    -host string     Listen host (default: 127.0.0.1)")
	fmt.Println("    -port int        Listen port (default: 8750)")
	fmt.Println("")
	fmt.Println("COMMON OPTIONS:")
	fmt.Println("    -config string   Config file path (default: ./ytdiff.yaml if present, env: YTDIFF_CONFIG)")
	fmt.Println("    -debug           Enable debug logging (env: DEBUG)")
	fmt.Println("")
	fmt.Println("A typical session compares a restricted-mode snapshot against a normal one:")
	fmt.Println("    ytdiff extract channel_restricted.html restricted.json")
	fmt.Println("    ytdiff extract channel_normal.html normal.json")
	fmt.Println("    ytdiff diff normal.json restricted.json")
	fmt.Println("Videos listed under 'only in first' are hidden by restricted mode.")
}
