package helpboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/helpboard/internal/db"
	dbRedis "github.com/kailas-cloud/helpboard/internal/db/redis"
	"github.com/kailas-cloud/helpboard/internal/domain"
	domlisting "github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/domain/search/query"
	"github.com/kailas-cloud/helpboard/internal/metrics"
	listingrepo "github.com/kailas-cloud/helpboard/internal/repository/listing"
	"github.com/kailas-cloud/helpboard/internal/repository/seed"
	discoveryuc "github.com/kailas-cloud/helpboard/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/helpboard/internal/usecase/health"
	listinguc "github.com/kailas-cloud/helpboard/internal/usecase/listing"

	"go.uber.org/zap"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped in tests.
type discoveryUseCase interface {
	Search(ctx context.Context, name string, q query.Query, opts discoveryuc.Options) (discoveryuc.Page, error)
}

type listingUseCase interface {
	Create(ctx context.Context, col string, p domlisting.Params) (domlisting.Listing, error)
	Upsert(ctx context.Context, col string, p domlisting.Params) (domlisting.Listing, bool, error)
	Get(ctx context.Context, col, id string) (domlisting.Listing, error)
	Delete(ctx context.Context, col, id string) error
	List(ctx context.Context, col string) ([]domlisting.Listing, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the helpboard SDK entry point.
type Client struct {
	store        db.Store
	discoverySvc discoveryUseCase
	listingSvc   listingUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client over a seed file, a Redis/Valkey store, or both.
// The provided context is used for the readiness check and the seed import.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.seedPath == "" && len(cfg.addrs) == 0 {
		return nil, errors.New("helpboard: a source is required (use WithSeedFile or WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	metrics.RegisterDiscoveryMetrics()

	var src *seed.Source
	if cfg.seedPath != "" {
		if src, err = seed.NewSource(cfg.seedPath, zap.NewNop()); err != nil {
			return nil, fmt.Errorf("helpboard: %w", err)
		}
	}

	var store *dbRedis.Store
	if len(cfg.addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{Addrs: cfg.addrs, Password: cfg.password})
		if err != nil {
			return nil, fmt.Errorf("helpboard: create store: %w", err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("helpboard: database not ready: %w", err)
		}
	}

	return wireClient(ctx, cfg, src, store, obs)
}

func wireClient(
	ctx context.Context, cfg *clientConfig, src *seed.Source, store *dbRedis.Store, obs *observer,
) (*Client, error) {
	var engineOpts []discoveryuc.Option
	if cfg.parallelThreshold > 0 {
		engineOpts = append(engineOpts, discoveryuc.WithParallelThreshold(cfg.parallelThreshold))
	}
	dcfg := discoveryuc.Config{DefaultLimit: cfg.defaultLimit, MaxLimit: cfg.maxLimit}

	c := &Client{obs: obs}
	var source discoveryuc.Source = src
	healthSvc := healthuc.New(nil)
	if store != nil {
		repo := listingrepo.New(store)
		if src != nil {
			if _, err := seed.Import(ctx, src.Dataset(), repo); err != nil {
				store.Close()
				return nil, fmt.Errorf("helpboard: %w", err)
			}
		}
		source = repo
		c.store = store
		c.listingSvc = listinguc.New(repo)
		healthSvc = healthuc.New(store)
	}
	if src != nil {
		healthSvc.WithCheck("seed", src)
	}
	c.discoverySvc = discoveryuc.New(source, discoveryuc.NewEngine(engineOpts...), dcfg)
	c.healthSvc = healthSvc
	return c, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity. Seed-only clients always succeed.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", "", start, err) }()

	if c.store == nil {
		return nil
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Listings returns the listing service for a collection.
// On seed-only clients every call fails with ErrReadOnly; use Search instead.
func (c *Client) Listings(col Collection) *ListingService {
	return &ListingService{collection: col, svc: c.listingSvc, obs: c.obs}
}

func readOnly(op string) error {
	return fmt.Errorf("%s: %w", op, domain.ErrReadOnly)
}
