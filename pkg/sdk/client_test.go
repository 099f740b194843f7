package helpboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	discoveryuc "github.com/kailas-cloud/helpboard/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/helpboard/internal/usecase/health"
)

const bundledSeed = "../../data/seed.jsonc"

func TestNew_NoSource(t *testing.T) {
	_, err := New(context.Background())
	if err == nil || !strings.Contains(err.Error(), "source is required") {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestNew_MissingSeed(t *testing.T) {
	_, err := New(context.Background(), WithSeedFile("does-not-exist.jsonc"))
	if err == nil {
		t.Fatal("expected error for missing seed file")
	}
}

func TestNew_SeedOnly(t *testing.T) {
	c, err := New(context.Background(), WithSeedFile(bundledSeed), WithPageLimits(2, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	page, err := c.Search(context.Background(), Posts, NewQuery(QueryParams{Term: "RICE"}), SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID() != "post-1" {
		t.Fatalf("expected post-1 only, got total=%d", page.Total)
	}
	if got := page.Counts.Get(FacetCategory, string(Farming)); got != 1 {
		t.Errorf("Farming count = %d, want 1", got)
	}
	if page.MapBounds == nil {
		t.Error("expected map bounds for a located match")
	}

	all, err := c.Search(context.Background(), Posts, NewQuery(QueryParams{}), SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all.Items) != 2 || !all.HasMore || all.NextCursor == "" {
		t.Errorf("expected first page of 2 with a cursor, got %d items has_more=%v", len(all.Items), all.HasMore)
	}

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("seed-only ping: %v", err)
	}
	h := c.Health(context.Background())
	if !h.OK() || h.Checks["seed"] != "ok" {
		t.Errorf("unexpected health: %+v", h)
	}
}

func TestNew_SeedOnlyIsReadOnly(t *testing.T) {
	c, err := New(context.Background(), WithSeedFile(bundledSeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	_, err = c.Listings(Posts).Create(context.Background(), ListingParams{Title: "x", Kind: HelpRequest})
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if _, err := c.Listings(Posts).List(context.Background()); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly from List, got %v", err)
	}
}

func TestSearch_UnknownCollection(t *testing.T) {
	c, err := New(context.Background(), WithSeedFile(bundledSeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = c.Search(context.Background(), "events", NewQuery(QueryParams{}), SearchOptions{})
	if !errors.Is(err, ErrCollectionNotFound) {
		t.Errorf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestSearch_PassesOptions(t *testing.T) {
	var got discoveryuc.Options
	var gotName string
	c := &Client{discoverySvc: &mockDiscoveryUC{
		searchFn: func(_ context.Context, name string, _ Query, opts discoveryuc.Options) (discoveryuc.Page, error) {
			gotName, got = name, opts
			return discoveryuc.Page{Total: 7, NextCursor: "5", HasMore: true}, nil
		},
	}}

	page, err := c.Search(context.Background(), Helpers, NewQuery(QueryParams{}),
		SearchOptions{Sort: SortFeatured, Cursor: "3", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotName != "helpers" || got.Sort != SortFeatured || got.Cursor != "3" || got.Limit != 2 {
		t.Errorf("options not forwarded: %s %+v", gotName, got)
	}
	if page.Total != 7 || page.NextCursor != "5" || !page.HasMore {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestSearch_WrapsError(t *testing.T) {
	c := &Client{discoverySvc: &mockDiscoveryUC{
		searchFn: func(context.Context, string, Query, discoveryuc.Options) (discoveryuc.Page, error) {
			return discoveryuc.Page{}, ErrSourceUnavailable
		},
	}}
	_, err := c.Search(context.Background(), Posts, NewQuery(QueryParams{}), SearchOptions{})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "search posts") {
		t.Errorf("expected op prefix, got %q", err)
	}
}

func TestHealth_Degraded(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError, "seed": healthuc.CheckOK},
	}}}
	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Checks["database"] != "error" || h.Checks["seed"] != "ok" {
		t.Errorf("unexpected health: %+v", h)
	}
}

func TestClientOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	logger := slog.Default()
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithSeedFile("seed.jsonc"),
		WithRedis("localhost:6379", "secret"),
		WithParallelThreshold(128),
		WithPageLimits(10, 50),
		WithLogger(logger),
		WithPrometheus(reg),
	} {
		o.apply(cfg)
	}

	if cfg.seedPath != "seed.jsonc" {
		t.Errorf("seedPath = %q", cfg.seedPath)
	}
	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" || cfg.password != "secret" {
		t.Errorf("redis = %v %q", cfg.addrs, cfg.password)
	}
	if cfg.parallelThreshold != 128 {
		t.Errorf("parallelThreshold = %d", cfg.parallelThreshold)
	}
	if cfg.defaultLimit != 10 || cfg.maxLimit != 50 {
		t.Errorf("limits = %d/%d", cfg.defaultLimit, cfg.maxLimit)
	}
	if cfg.logger != logger || cfg.metricsReg != reg {
		t.Error("logger or registry not applied")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{}
	c.Close() // must not panic
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", Posts, time.Now(), nil)
	obs.observe("test", Posts, time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("listing.get", Posts, time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("listing.get", Posts, time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "helpboard_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("helpboard_sdk_operations_total not found")
	}
}

func TestObserver_LabelsCollectionAndOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("ping", "", time.Now(), nil)
	obs.observe("listing.get", Posts, time.Now(), fmt.Errorf("get: %w", ErrListingNotFound))
	obs.observe("listing.create", Helpers, time.Now(), ErrReadOnly)

	ops := obs.metrics.operations
	tests := []struct {
		op, col, outcome string
	}{
		{"ping", "all", "ok"},
		{"listing.get", "posts", "not_found"},
		{"listing.create", "helpers", "read_only"},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(ops.WithLabelValues(tt.op, tt.col, tt.outcome)); got != 1 {
			t.Errorf("%s/%s/%s = %v, want 1", tt.op, tt.col, tt.outcome, got)
		}
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrNotFound, "not_found"},
		{fmt.Errorf("wrapped: %w", ErrCollectionNotFound), "not_found"},
		{ErrInvalidQuery, "invalid"},
		{ErrInvalidListing, "invalid"},
		{ErrReadOnly, "read_only"},
		{errors.New("connection reset"), "error"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestObserver_ReusesRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("search", Helpers, time.Now(), nil)
	obs.observe("search", Helpers, time.Now(), errors.New("test error"))
}
