package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/shopinsight"
	"github.com/fwojciec/shopinsight/bloom"
	"github.com/fwojciec/shopinsight/fs"
	"github.com/fwojciec/shopinsight/scrape"
)

// urlDisplayWidth is the width URLs are truncated to in progress lines.
const urlDisplayWidth = 60

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := c.readURLs()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no store URLs found")
		return shopinsight.Errorf(shopinsight.EINVALID, "no store URLs found in %s", c.File)
	}

	delays := scrape.DefaultRetryDelays()
	if c.Retries < len(delays) {
		delays = delays[:max(c.Retries, 0)]
	}

	batch := &scrape.Batch{
		Service:     deps.Insights,
		RateLimiter: scrape.NewDomainLimiter(c.RPS),
		Seen:        bloom.NewFilter(uint(len(urls)), 0.001),
		Concurrency: c.Concurrency,
		RetryDelays: delays,
		Logger:      deps.Logger,
	}

	var store *fs.ResultStore
	if c.OutDir != "" {
		dir := filepath.Clean(c.OutDir)
		store = fs.NewResultStore(filepath.Dir(dir), filepath.Base(dir))
		batch.Writer = store
	}

	result, err := batch.Run(deps.Ctx, urls, progressPrinter(deps.Stderr))
	if err != nil {
		if store != nil {
			_ = store.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: batch interrupted: %v\n", err)
		return err
	}

	if store != nil {
		if err := store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to write results: %v\n", err)
			return err
		}
	}

	for _, item := range result.Items {
		if item.Err != nil {
			fmt.Fprintf(deps.Stdout, "FAIL  %s  %s\n", item.URL, describeError(item.Err))
		}
	}
	fmt.Fprintln(deps.Stdout, result.Summary())

	if result.Succeeded == 0 && result.Failed > 0 {
		return shopinsight.Errorf(shopinsight.EEXTRACTION, "every store failed")
	}
	return nil
}

// readURLs reads one URL per line, skipping blanks and # comments.
func (c *BatchCmd) readURLs() ([]string, error) {
	var r io.Reader
	if c.File == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(c.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return parseURLList(r)
}

func parseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

func progressPrinter(w io.Writer) scrape.ProgressFunc {
	return func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressCompleted:
			fmt.Fprintf(w, "[%d/%d] ok    %s\n", e.Completed, e.Total, scrape.TruncateURL(e.URL, urlDisplayWidth))
		case scrape.ProgressFailed:
			fmt.Fprintf(w, "[%d/%d] fail  %s\n", e.Completed, e.Total, scrape.TruncateURL(e.URL, urlDisplayWidth))
		case scrape.ProgressSkipped:
			fmt.Fprintf(w, "[%d/%d] dup   %s\n", e.Completed, e.Total, scrape.TruncateURL(e.URL, urlDisplayWidth))
		}
	}
}
