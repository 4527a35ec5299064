package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/frontendfusion/signup/internal/smoketest"
	"github.com/frontendfusion/signup/pkg/logger"
)

// Default configuration constants.
const (
	defaultSubmissions  = 100
	defaultInvalidEvery = 5
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 15 * time.Second
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		submissions  = flag.Int("n", defaultSubmissions, "Number of submissions")
		invalidEvery = flag.Int("invalid-every", defaultInvalidEvery, "Make every Nth submission malformed, 0 to disable")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		jsonLogs     = flag.Bool("json", false, "Log as JSON lines")
		verbose      = flag.Bool("verbose", false, "Log every response")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoketest.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(logger.WithJSON(*jsonLogs)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	_, err := smoketest.Run(ctx, &smoketest.Config{
		BaseURL:      *baseURL,
		Submissions:  *submissions,
		InvalidEvery: *invalidEvery,
		Workers:      *workers,
		Timeout:      *timeout,
		Verbose:      *verbose,
	})
	if err != nil {
		logger.Get().Error(ctx, "smoke run failed", logger.Error(err))
		os.Exit(1)
	}
}
