package smoketest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frontendfusion/signup/pkg/logger"
)

// ErrMismatch reports that some responses contradicted the generated expectation.
var ErrMismatch = errors.New("smoke run found mismatched outcomes")

const percentageMultiplier = 100

// Run executes the complete smoke run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("smoke")

	log.Info(ctx, "starting signup smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("submissions", config.Submissions),
		logger.Int("invalidEvery", config.InvalidEvery),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
	)

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config.BaseURL); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate submissions over the live vacancy list
	vacancies, err := client.fetchVacancies(ctx, config.BaseURL)
	if err != nil {
		return stats, fmt.Errorf("vacancy lookup failed: %w", err)
	}
	subs := generateSubmissions(config.Submissions, config.InvalidEvery, vacancies)
	stats.Generated = len(subs)

	// Step 3: Submit concurrently
	submitAll(ctx, client, config, subs, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	// Step 4: Verify
	if err := verify(stats); err != nil {
		return stats, err
	}
	log.Info(ctx, "smoke run completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient, baseURL string) error {
	resp, err := client.get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	// the service answers with Prometheus metrics
	if resp.StatusCode != statusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

// submitAll fans subs out to a worker pool and tallies the outcomes.
func submitAll(ctx context.Context, client *httpClient, config *Config, subs []Submission, stats *Stats) {
	url := config.BaseURL + "/api/submissions"
	workers := max(config.Workers, 1)
	log := logger.Named("smoke")

	var submitted, accepted, apiErrors, rejected, conflicts, failed, mismatched atomic.Int64

	work := make(chan Submission, workers*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range work {
				if ctx.Err() != nil {
					return
				}
				got, resp := client.submitOne(ctx, url, s)
				submitted.Add(1)

				switch got {
				case outcomeAccepted:
					accepted.Add(1)
				case outcomeAPIError:
					apiErrors.Add(1)
				case outcomeRejected:
					rejected.Add(1)
				case outcomeConflict:
					conflicts.Add(1)
				default:
					failed.Add(1)
				}
				if !matches(s, got) {
					mismatched.Add(1)
				}

				if config.Verbose {
					log.Info(ctx, "submission",
						logger.String("outcome", string(got)),
						logger.String("session", resp.SessionID),
						logger.Int("fieldErrors", len(resp.Errors)),
					)
				}
			}
		}()
	}

	go func() {
		defer close(work)
		for _, s := range subs {
			select {
			case <-ctx.Done():
				return
			case work <- s:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Accepted = int(accepted.Load())
	stats.APIErrors = int(apiErrors.Load())
	stats.Rejected = int(rejected.Load())
	stats.Conflicts = int(conflicts.Load())
	stats.Failed = int(failed.Load())
	stats.Mismatched = int(mismatched.Load())
}

// matches reports whether got is an acceptable answer to s. A valid payload
// may still meet a failing users API, so both banners count.
func matches(s Submission, got outcome) bool {
	if s.expectInvalid {
		return got == outcomeRejected
	}
	return got == outcomeAccepted || got == outcomeAPIError
}

func verify(stats *Stats) error {
	if stats.Submitted != stats.Generated {
		return fmt.Errorf("%w: submitted %d of %d", ErrMismatch, stats.Submitted, stats.Generated)
	}
	if stats.Mismatched > 0 {
		return fmt.Errorf("%w: %d", ErrMismatch, stats.Mismatched)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, perSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Accepted) / float64(stats.Submitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("apiErrors", stats.APIErrors),
		logger.Int("rejected", stats.Rejected),
		logger.Int("conflicts", stats.Conflicts),
		logger.Int("failed", stats.Failed),
		logger.Int("mismatched", stats.Mismatched),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("submissionsPerSecond", perSecond),
	)
}
