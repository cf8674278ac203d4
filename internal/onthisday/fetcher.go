package onthisday

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chronocorpus/internal/util"
)

// FetchOptions configures one fetch run.
type FetchOptions struct {
	StartYear int
	EndYear   int
	OutPath   string
	Format    string
	Sleep     time.Duration
}

// FetchResult summarizes what a run actually produced.
type FetchResult struct {
	Written     int
	SkippedDone int
	FailedDays  int
	DoneDates   int
}

// Fetch walks every month/day pair once, fetching all years' events for that
// day and appending them durably before moving on. Each completed date is a
// checkpoint: on restart, already-written dates are loaded into a seen-set
// and skipped, so the run is idempotent and safe to interrupt between units.
// A day that exhausts its retries is skipped with a warning, not fatal.
func Fetch(ctx context.Context, client *Client, opts FetchOptions) (FetchResult, error) {
	if opts.StartYear > opts.EndYear {
		return FetchResult{}, fmt.Errorf("start year %d after end year %d", opts.StartYear, opts.EndYear)
	}
	if err := ValidFormat(opts.Format); err != nil {
		return FetchResult{}, err
	}

	done, err := LoadDoneDates(opts.OutPath, opts.Format)
	if err != nil {
		return FetchResult{}, err
	}
	log.Printf("resume: %d dates already in %s", len(done), opts.OutPath)

	res := FetchResult{}
	days := MonthDays()
	for idx, md := range days {
		month, day := md[0], md[1]
		if allDatesDone(done, month, day, opts.StartYear, opts.EndYear) {
			res.SkippedDone++
			continue
		}

		page, err := client.FetchDay(ctx, month, day)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return res, err
			}
			logSkip(month, day, err)
			res.FailedDays++
			if err := sleepCtx(ctx, opts.Sleep); err != nil {
				return res, err
			}
			continue
		}

		records := buildDayRecords(page, month, day, opts.StartYear, opts.EndYear)
		fresh := records[:0:0]
		for _, rec := range records {
			if _, seen := done[rec.Date]; !seen {
				fresh = append(fresh, rec)
			}
		}
		if err := AppendRecords(opts.OutPath, opts.Format, fresh); err != nil {
			return res, err
		}
		for _, rec := range fresh {
			done[rec.Date] = struct{}{}
		}
		res.Written += len(fresh)

		log.Printf("[%d/%d] %02d-%02d wrote +%d records (done=%d)", idx+1, len(days), month, day, len(fresh), len(done))
		if err := sleepCtx(ctx, opts.Sleep); err != nil {
			return res, err
		}
	}
	res.DoneDates = len(done)
	return res, nil
}

// allDatesDone reports whether every expected date for this month/day across
// the year range is already written. Dates invalid in a given year (Feb 29
// outside leap years) are not expected.
func allDatesDone(done map[string]struct{}, month, day, startYear, endYear int) bool {
	expected := 0
	for y := startYear; y <= endYear; y++ {
		if !validDate(y, month, day) {
			continue
		}
		expected++
		key := fmt.Sprintf("%04d-%02d-%02d", y, month, day)
		if _, ok := done[key]; !ok {
			return false
		}
	}
	return expected > 0
}

func logSkip(month, day int, err error) {
	switch {
	case errors.Is(err, util.ErrRateLimited), errors.Is(err, util.ErrTransient):
		log.Printf("warn: skip %02d-%02d after retries: %v", month, day, err)
	default:
		log.Printf("warn: skip %02d-%02d: %v", month, day, err)
	}
}
