package mock

import (
	"context"

	"github.com/fwojciec/shopinsight"
)

var _ shopinsight.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of shopinsight.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ shopinsight.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of shopinsight.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ shopinsight.URLSet = (*URLSet)(nil)

// URLSet is a mock implementation of shopinsight.URLSet.
type URLSet struct {
	AddFn  func(url string)
	TestFn func(url string) bool
}

func (s *URLSet) Add(url string) {
	s.AddFn(url)
}

func (s *URLSet) Test(url string) bool {
	return s.TestFn(url)
}
