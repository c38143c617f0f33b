package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/pagetrim/internal/batch"
	"github.com/ironsheep/pagetrim/internal/config"
	"github.com/ironsheep/pagetrim/internal/server"
	"github.com/ironsheep/pagetrim/internal/source"
	"github.com/ironsheep/pagetrim/internal/system"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pagetrim %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol in serve mode)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("PAGETRIM_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("pagetrim v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "serve" {
		if err := serve(args[1:]); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := trim(ctx, args, debug); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("Error: %v", err)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "pagetrim - remove uniform margins from page images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pagetrim [options] <directory|file.pdf>   Trim every page")
	fmt.Fprintln(w, "  pagetrim serve [-config file.yaml]        Run as an MCP server on stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	newFlagSet(config.Default(), w).fs.PrintDefaults()
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  PAGETRIM_LOG_LEVEL=debug    Enable debug logging")
}

// serve runs the MCP server with defaults from an optional config file.
func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file with detection defaults")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	return server.New(cfg, Version).Run()
}

// trim runs batch mode over a directory or PDF.
func trim(ctx context.Context, args []string, debug bool) error {
	cfg, err := parseConfig(args, os.Stderr)
	if err != nil {
		return err
	}

	opts, err := cfg.CutOptions()
	if err != nil {
		return err
	}

	src, err := source.Open(cfg.Source, cfg.DPI)
	if err != nil {
		return err
	}
	defer src.Close()

	workers := cfg.Workers
	if workers == 0 {
		workers = system.DefaultWorkers()
	}

	runner := &batch.Runner{
		Source:    src,
		OutputDir: cfg.ResolveOutputDir(),
		Format:    cfg.Format,
		Options:   opts,
		Workers:   workers,
	}
	if debug {
		log.Printf("Trimming %d pages from %s into %s with %d workers",
			src.PageCount(), cfg.Source, runner.OutputDir, workers)
	}

	report, runErr := runner.Run(ctx)
	if report != nil {
		log.Printf("Trimmed %d of %d pages (%d failed) in %s",
			report.Processed, report.Total, report.Failed, report.Elapsed)
		if cfg.Report != "" {
			if err := batch.WriteReport(report, cfg.Report); err != nil {
				return err
			}
		}
	}
	return runErr
}
