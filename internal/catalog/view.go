// Package catalog holds the listing view state for the select-products
// screen: pagination, search, and filters, with debounced fetch
// scheduling and stale-response discard.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lalajistore/vendor-gateway/internal/models"
	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// Fetcher produces a reconciled catalog page for a query. It never fails:
// fetch problems arrive as a ListResult with Success=false.
type Fetcher interface {
	FetchPage(ctx context.Context, q marketplace.ListQuery) *models.ListResult
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, q marketplace.ListQuery) *models.ListResult

func (f FetcherFunc) FetchPage(ctx context.Context, q marketplace.ListQuery) *models.ListResult {
	return f(ctx, q)
}

// Sink receives rendered pages tagged with the state version that
// produced them.
type Sink interface {
	Render(version uint64, result *models.ListResult)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(version uint64, result *models.ListResult)

func (f SinkFunc) Render(version uint64, result *models.ListResult) { f(version, result) }

// State is a snapshot of the view's query state.
type State struct {
	Page        int
	PageSize    int
	Search      string
	Status      string
	Category    string
	Subcategory string
	KnownPages  int
	Version     uint64
}

// View owns the query state of one catalog listing. Every mutation bumps
// the state version and schedules a fetch; a completion whose version no
// longer matches is discarded, so a superseded query can never overwrite
// newer state. Search edits are debounced; all other changes fetch
// immediately.
type View struct {
	fetcher  Fetcher
	sink     Sink
	debounce time.Duration
	pageSize int

	mu          sync.Mutex
	page        int
	search      string
	status      string
	category    string
	subcategory string
	knownPages  int
	version     uint64
	timer       *time.Timer
	closed      bool
}

// NewView constructs a View with page 1 and no filters.
func NewView(fetcher Fetcher, sink Sink, pageSize int, debounce time.Duration) *View {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &View{
		fetcher:     fetcher,
		sink:        sink,
		debounce:    debounce,
		pageSize:    pageSize,
		page:        1,
		status:      "all",
		category:    "all",
		subcategory: "all",
	}
}

// SetSearch updates the search term, resets to page 1, and schedules a
// debounced fetch. Clearing the term fetches immediately, matching the
// zero-delay path for non-search changes.
func (v *View) SetSearch(ctx context.Context, term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = term
	v.page = 1
	delay := v.debounce
	if term == "" {
		delay = 0
	}
	v.schedule(ctx, delay)
}

// SetStatus updates the status filter and resets to page 1.
func (v *View) SetStatus(ctx context.Context, status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = orAll(status)
	v.page = 1
	v.schedule(ctx, 0)
}

// SetCategory updates the category filter, forces the subcategory back to
// "all", and resets to page 1. The caller refetches the subcategory list
// for the new category.
func (v *View) SetCategory(ctx context.Context, category string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.category = orAll(category)
	v.subcategory = "all"
	v.page = 1
	v.schedule(ctx, 0)
}

// SetSubcategory updates the subcategory filter and resets to page 1. It
// is rejected while no concrete category is active.
func (v *View) SetSubcategory(ctx context.Context, subcategory string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.category == "all" && subcategory != "" && subcategory != "all" {
		return utils.ErrCategoryRequired
	}
	v.subcategory = orAll(subcategory)
	v.page = 1
	v.schedule(ctx, 0)
	return nil
}

// SetPage moves to the requested page, clamped to [1, knownPages]. Filter
// state is untouched.
func (v *View) SetPage(ctx context.Context, page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if v.knownPages > 0 && page > v.knownPages {
		page = v.knownPages
	}
	v.page = page
	v.schedule(ctx, 0)
}

// Refresh refetches the current state immediately. This is the manual
// "try again" action after an error.
func (v *View) Refresh(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.schedule(ctx, 0)
}

// Snapshot returns the current query state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{
		Page:        v.page,
		PageSize:    v.pageSize,
		Search:      v.search,
		Status:      v.status,
		Category:    v.category,
		Subcategory: v.subcategory,
		KnownPages:  v.knownPages,
		Version:     v.version,
	}
}

// Close stops any pending fetch. Rendered results can no longer arrive.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.version++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

// schedule supersedes any pending fetch and arms a new one after delay.
// Caller must hold v.mu.
func (v *View) schedule(ctx context.Context, delay time.Duration) {
	if v.closed {
		return
	}
	v.version++
	version := v.version
	query := v.queryLocked()

	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(delay, func() {
		v.fetch(ctx, version, query)
	})
}

// queryLocked builds the wire query for the current state. Caller must
// hold v.mu.
func (v *View) queryLocked() marketplace.ListQuery {
	return marketplace.ListQuery{
		Page:        v.page,
		Limit:       v.pageSize,
		Search:      v.search,
		Status:      v.status,
		Category:    v.category,
		Subcategory: v.subcategory,
	}
}

// fetch runs the query and renders the result unless the state moved on
// while the request was in flight.
func (v *View) fetch(ctx context.Context, version uint64, query marketplace.ListQuery) {
	result := v.fetcher.FetchPage(ctx, query)

	v.mu.Lock()
	if v.closed || version != v.version {
		v.mu.Unlock()
		log.Debug().Uint64("version", version).Msg("discarding stale catalog fetch")
		return
	}
	if result.Success {
		v.knownPages = result.Pages
	}
	v.mu.Unlock()

	v.sink.Render(version, result)
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
