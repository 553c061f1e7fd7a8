package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/ritzau/practice-graph/pkg/catalog"
	"github.com/ritzau/practice-graph/pkg/config"
	"github.com/ritzau/practice-graph/pkg/logging"
	"github.com/ritzau/practice-graph/pkg/model"
	"github.com/ritzau/practice-graph/pkg/output"
	"github.com/ritzau/practice-graph/pkg/validate"
	"github.com/ritzau/practice-graph/pkg/watcher"
	"github.com/ritzau/practice-graph/pkg/web"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("practice-graph", pflag.ExitOnError)
	flags.String("catalog", "practices.json", "Path to the practice catalog JSON document")
	flags.Bool("web", false, "Serve the HTTP API instead of printing a report")
	flags.Int("port", 8080, "Port for the HTTP API (with --web)")
	flags.Bool("watch", false, "Reload the catalog when the file changes (with --web)")
	flags.Bool("open", false, "Open the browser after the server starts (with --web)")
	flags.String("root-policy", "error", "Treat a missing root practice as \"error\" or \"warn\"")
	flags.CountP("verbose", "v", "Increase log verbosity")
	flags.Bool("json-logs", false, "Emit JSON log records")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	setupLogging(cfg)

	opts := validate.Options{RootPolicy: validate.RootPolicy(cfg.RootPolicy)}
	report, err := loadAndValidate(cfg.Catalog, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !cfg.WebMode {
		output.PrintValidationReport(cfg.Catalog, report)
		if !report.IsValid {
			os.Exit(1)
		}
		return
	}

	serve(cfg, opts, report)
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.Verbose > 0 {
		level = slog.LevelDebug
	}
	if cfg.JSONLogs {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}
}

func loadAndValidate(path string, opts validate.Options) (*model.ValidationReport, error) {
	doc, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	return catalog.Validate(doc, opts), nil
}

func serve(cfg *config.Config, opts validate.Options, report *model.ValidationReport) {
	server := web.NewServer()
	server.SetReport(report)

	if cfg.Watch {
		reload := func() {
			fresh, err := loadAndValidate(cfg.Catalog, opts)
			if err != nil {
				logging.Error("catalog reload failed", "error", err)
				return
			}
			server.SetReport(fresh)
		}
		cw, err := watcher.New(cfg.Catalog, reload)
		if err != nil {
			logging.Error("failed to create watcher", "error", err)
			os.Exit(1)
		}
		if err := cw.Start(context.Background()); err != nil {
			logging.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
	}

	if cfg.Open {
		go func() {
			// Give the listener a moment before pointing a browser at it.
			time.Sleep(500 * time.Millisecond)
			openBrowser(fmt.Sprintf("http://localhost:%d", cfg.Port))
		}()
	}

	if err := server.Start(cfg.Port); err != nil {
		logging.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		logging.Warn("cannot open browser on platform", "platform", runtime.GOOS)
		return
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		logging.Warn("failed to open browser", "error", err)
	}
}
