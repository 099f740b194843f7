package helpboard

import (
	"context"

	domlisting "github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/domain/search/query"
	discoveryuc "github.com/kailas-cloud/helpboard/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/helpboard/internal/usecase/health"
)

// --- discoveryUseCase mock ---

type mockDiscoveryUC struct {
	searchFn func(ctx context.Context, name string, q query.Query, opts discoveryuc.Options) (discoveryuc.Page, error)
}

func (m *mockDiscoveryUC) Search(
	ctx context.Context, name string, q query.Query, opts discoveryuc.Options,
) (discoveryuc.Page, error) {
	return m.searchFn(ctx, name, q, opts)
}

// --- listingUseCase mock ---

type mockListingUC struct {
	createFn func(ctx context.Context, col string, p domlisting.Params) (domlisting.Listing, error)
	upsertFn func(ctx context.Context, col string, p domlisting.Params) (domlisting.Listing, bool, error)
	getFn    func(ctx context.Context, col, id string) (domlisting.Listing, error)
	deleteFn func(ctx context.Context, col, id string) error
	listFn   func(ctx context.Context, col string) ([]domlisting.Listing, error)
}

func (m *mockListingUC) Create(ctx context.Context, col string, p domlisting.Params) (domlisting.Listing, error) {
	return m.createFn(ctx, col, p)
}

func (m *mockListingUC) Upsert(
	ctx context.Context, col string, p domlisting.Params,
) (domlisting.Listing, bool, error) {
	return m.upsertFn(ctx, col, p)
}

func (m *mockListingUC) Get(ctx context.Context, col, id string) (domlisting.Listing, error) {
	return m.getFn(ctx, col, id)
}

func (m *mockListingUC) Delete(ctx context.Context, col, id string) error {
	return m.deleteFn(ctx, col, id)
}

func (m *mockListingUC) List(ctx context.Context, col string) ([]domlisting.Listing, error) {
	return m.listFn(ctx, col)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
