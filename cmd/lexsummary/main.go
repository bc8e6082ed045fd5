package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/localrivet/lexsummary"
	"github.com/localrivet/lexsummary/internal/config"
	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/summarizer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	title      string
	max        int
	format     string
	serve      bool
	write      bool
	input      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("lexsummary", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", config.DefaultConfigFilename, "path to the configuration file")
	fs.StringVar(&opts.title, "title", "", "summary title")
	fs.IntVar(&opts.max, "max", 0, "maximum number of sentences (0 uses the configured default)")
	fs.StringVar(&opts.format, "format", "json", "output format: json or yaml")
	fs.BoolVar(&opts.serve, "serve", false, "run the MCP server on stdio")
	fs.BoolVar(&opts.write, "write-config", false, "write the effective configuration to the -config path and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: lexsummary [flags] [file]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 1 {
		return opts, errors.New("at most one input file may be given")
	}
	opts.input = fs.Arg(0)
	if opts.format != "json" && opts.format != "yaml" {
		return opts, fmt.Errorf("unknown format %q", opts.format)
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// A missing .env file is fine.
	_ = godotenv.Load()

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.LoadConfigWithPath(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load configuration:", err)
		return 1
	}

	if opts.write {
		if err := cfg.Save(); err != nil {
			fmt.Fprintln(stderr, "failed to write configuration:", err)
			return 1
		}
		fmt.Fprintln(stderr, "configuration written to", cfg.GetConfigPath())
		return 0
	}

	// stdout carries MCP messages or the summary, so logs never go there.
	logger, closeLog := config.NewLogger(cfg, stderr)
	defer closeLog()
	slog.SetDefault(logger)

	if opts.serve {
		if err := serve(cfg, logger); err != nil {
			errortypes.LogError(logger, err)
			return 1
		}
		return 0
	}

	if err := summarizeInput(cfg, opts, stdin, stdout, logger); err != nil {
		errortypes.LogError(logger, err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	srv, err := lexsummary.NewServer(lexsummary.ServerOptions{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	setupSignalHandler(srv, logger)

	logger.Info("Starting MCP server...")
	if err := srv.Start(); err != nil {
		srv.Stop()
		return errortypes.InternalError(err, "MCP server failed")
	}
	return srv.Stop()
}

// setupSignalHandler sets up a signal handler for graceful shutdown.
func setupSignalHandler(srv *lexsummary.Server, logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Received shutdown signal, terminating gracefully...")

		if err := srv.Stop(); err != nil {
			errortypes.LogError(logger, errortypes.DatabaseError(err, "Error closing store during shutdown"))
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errortypes.InternalError(err, "failed to read standard input")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errortypes.ValidationError(err, "failed to read input file").WithField("path", path)
	}
	return string(data), nil
}

func summarizeInput(cfg *config.Config, opts options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	text, err := readInput(opts.input, stdin)
	if err != nil {
		return err
	}

	store, sum, err := lexsummary.CreateComponents(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := sum.Summarize(ctx, summarizer.Request{
		Text:         text,
		Title:        opts.title,
		MaxSentences: opts.max,
	})
	if err != nil {
		return err
	}

	return writeResult(stdout, opts.format, summary.Result)
}

func writeResult(w io.Writer, format string, result lexsummary.SummaryResult) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return errortypes.EncodingError(err, "failed to encode summary as YAML")
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return errortypes.EncodingError(err, "failed to encode summary as JSON")
		}
		return nil
	}
}
