package catalog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalajistore/vendor-gateway/internal/catalog"
	"github.com/lalajistore/vendor-gateway/internal/models"
	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

type render struct {
	version uint64
	result  *models.ListResult
}

// testSink collects rendered pages.
type testSink struct {
	mu      sync.Mutex
	renders []render
	ch      chan render
}

func newTestSink() *testSink {
	return &testSink{ch: make(chan render, 16)}
}

func (s *testSink) Render(version uint64, result *models.ListResult) {
	s.mu.Lock()
	s.renders = append(s.renders, render{version, result})
	s.mu.Unlock()
	s.ch <- render{version, result}
}

func (s *testSink) wait(t *testing.T) render {
	t.Helper()
	select {
	case r := <-s.ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a rendered page")
		return render{}
	}
}

func (s *testSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.renders)
}

// recordingFetcher records queries and answers with a canned page.
type recordingFetcher struct {
	mu      sync.Mutex
	queries []marketplace.ListQuery
	pages   int
	gate    chan struct{} // when set, fetches block until the gate closes
}

func (f *recordingFetcher) FetchPage(ctx context.Context, q marketplace.ListQuery) *models.ListResult {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	pages := f.pages
	if pages == 0 {
		pages = 1
	}
	return &models.ListResult{Success: true, Items: []marketplace.AnnotatedProduct{}, Page: q.Page, Pages: pages}
}

func (f *recordingFetcher) last() marketplace.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func (f *recordingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func TestView_StatusChangeFetchesImmediately(t *testing.T) {
	fetcher := &recordingFetcher{}
	sink := newTestSink()
	v := catalog.NewView(fetcher, sink, 12, 500*time.Millisecond)
	defer v.Close()

	v.SetStatus(context.Background(), "active")
	sink.wait(t)

	q := fetcher.last()
	assert.Equal(t, "active", q.Status)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
}

func TestView_SearchDebounceCoalesces(t *testing.T) {
	fetcher := &recordingFetcher{}
	sink := newTestSink()
	v := catalog.NewView(fetcher, sink, 12, 60*time.Millisecond)
	defer v.Close()

	v.SetSearch(context.Background(), "m")
	v.SetSearch(context.Background(), "mo")
	v.SetSearch(context.Background(), "mou")

	r := sink.wait(t)
	assert.Equal(t, "mou", fetcher.last().Search)
	assert.Equal(t, 1, fetcher.count(), "rapid edits coalesce into one fetch")
	assert.True(t, r.result.Success)
}

func TestView_ClearingSearchSkipsDebounce(t *testing.T) {
	fetcher := &recordingFetcher{}
	sink := newTestSink()
	// A debounce long enough that a debounced fetch could not fire in time.
	v := catalog.NewView(fetcher, sink, 12, 10*time.Second)
	defer v.Close()

	v.SetSearch(context.Background(), "")
	sink.wait(t)

	assert.Empty(t, fetcher.last().Search)
}

func TestView_FilterChangeResetsPage(t *testing.T) {
	fetcher := &recordingFetcher{pages: 9}
	sink := newTestSink()
	v := catalog.NewView(fetcher, sink, 12, 0)
	defer v.Close()

	v.SetPage(context.Background(), 1)
	sink.wait(t)
	v.SetPage(context.Background(), 4)
	sink.wait(t)
	require.Equal(t, 4, fetcher.last().Page)

	v.SetCategory(context.Background(), "cat1")
	sink.wait(t)

	q := fetcher.last()
	assert.Equal(t, 1, q.Page, "category change resets to the first page")
	assert.Equal(t, "cat1", q.Category)
	assert.Equal(t, "all", v.Snapshot().Subcategory, "category change clears the subcategory")
}

func TestView_SubcategoryRequiresCategory(t *testing.T) {
	fetcher := &recordingFetcher{}
	sink := newTestSink()
	v := catalog.NewView(fetcher, sink, 12, 0)
	defer v.Close()

	err := v.SetSubcategory(context.Background(), "sub1")
	assert.ErrorIs(t, err, utils.ErrCategoryRequired)
	assert.Equal(t, 0, fetcher.count(), "rejected intents do not fetch")

	v.SetCategory(context.Background(), "cat1")
	sink.wait(t)
	require.NoError(t, v.SetSubcategory(context.Background(), "sub1"))
	sink.wait(t)
	assert.Equal(t, "sub1", fetcher.last().Subcategory)
}

func TestView_PageClamping(t *testing.T) {
	fetcher := &recordingFetcher{pages: 3}
	sink := newTestSink()
	v := catalog.NewView(fetcher, sink, 12, 0)
	defer v.Close()

	// Learn the page count from a first fetch.
	v.Refresh(context.Background())
	sink.wait(t)

	v.SetPage(context.Background(), 99)
	sink.wait(t)
	assert.Equal(t, 3, fetcher.last().Page, "page clamps to the last known page")

	v.SetPage(context.Background(), -5)
	sink.wait(t)
	assert.Equal(t, 1, fetcher.last().Page)
}

func TestView_StaleFetchDiscarded(t *testing.T) {
	gate := make(chan struct{})
	fetcher := &recordingFetcher{gate: gate}
	sink := newTestSink()
	v := catalog.NewView(fetcher, sink, 12, 0)
	defer v.Close()

	v.SetStatus(context.Background(), "active")
	// Let the first fetch start and block on the gate.
	require.Eventually(t, func() bool { return fetcher.count() == 1 }, time.Second, 5*time.Millisecond)

	v.SetStatus(context.Background(), "inactive")
	require.Eventually(t, func() bool { return fetcher.count() == 2 }, time.Second, 5*time.Millisecond)

	close(gate)

	r := sink.wait(t)
	assert.True(t, r.result.Success)

	// Only the newest query may render; the superseded one is discarded.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, sink.count())
	assert.Equal(t, "inactive", fetcher.last().Status)
}

func TestView_CloseStopsFetches(t *testing.T) {
	fetcher := &recordingFetcher{}
	sink := newTestSink()
	v := catalog.NewView(fetcher, sink, 12, 0)

	v.Close()
	v.SetStatus(context.Background(), "active")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, fetcher.count())
}

func TestRegistry_OpenReplacesView(t *testing.T) {
	built := 0
	reg := catalog.NewRegistry(func(sessionID, vendorID string) *catalog.View {
		built++
		return catalog.NewView(&recordingFetcher{}, newTestSink(), 12, 0)
	})

	v1 := reg.Open("sess1", "v1")
	got, ok := reg.Get("sess1")
	require.True(t, ok)
	assert.Same(t, v1, got)

	v2 := reg.Open("sess1", "v1")
	assert.NotSame(t, v1, v2)
	assert.Equal(t, 2, built)

	reg.Close("sess1")
	_, ok = reg.Get("sess1")
	assert.False(t, ok)
}
