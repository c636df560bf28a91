package smoke

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// periods are the buckets exercised on every run, including one unknown
// value that must behave like "all".
var periods = []string{"all", "first-half", "second-half", "first-quarter", "last-quarter", "bogus-period"}

// Run executes the full smoke suite against config.BaseURL. It returns an
// error when any check fails.
func Run(ctx context.Context, config *Config) error {
	runID := uuid.NewString()
	stats := &Stats{StartTime: time.Now()}
	c := newClient(config.BaseURL, config.Timeout)

	log.Printf("starting smoke run %s against %s", runID, config.BaseURL)

	record := func(name string, err error) {
		stats.ChecksRun++
		if err != nil {
			stats.ChecksFailed++
			log.Printf("FAIL %s: %v", name, err)
			return
		}
		stats.ChecksPassed++
		if config.Verbose {
			log.Printf("ok   %s", name)
		}
	}

	record("health", checkHealth(ctx, c))

	categories, err := checkCategories(ctx, c)
	record("categories", err)

	// One specific category, when the warehouse has any, exercises the
	// per-product breakdown path.
	targets := []string{"all"}
	if len(categories) > 0 {
		targets = append(targets, categories[0])
	}

	for _, period := range periods {
		for _, category := range targets {
			tag := fmt.Sprintf("period=%s category=%s", period, category)
			record("data "+tag, checkSummary(ctx, c, period, category))
			record("monthly-revenue "+tag, checkMonthlyRevenue(ctx, c, period, category))
			record("category-sales "+tag, checkCategorySales(ctx, c, period, category))
			record("top-products "+tag, checkTopProducts(ctx, c, period, category))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Printf("smoke run %s finished: %d checks, %d passed, %d failed in %s",
		runID, stats.ChecksRun, stats.ChecksPassed, stats.ChecksFailed, stats.Duration.Round(time.Millisecond))

	if stats.ChecksFailed > 0 {
		return fmt.Errorf("%d of %d checks failed", stats.ChecksFailed, stats.ChecksRun)
	}
	return nil
}
