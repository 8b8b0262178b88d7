package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var selNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func dv(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestBestOffer_EmptySet(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	assert.Nil(t, BestOffer(product, nil, selNow))
	assert.Nil(t, BestOffer(product, []Offer{}, selNow))
}

func TestBestOffer_SpecificityTrumpsMagnitude(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	offers := []Offer{
		{ID: "store", Scope: ScopeAll, IsActive: true, DiscountType: DiscountPercentage, DiscountValue: dv(90)},
		{ID: "cat", Scope: ScopeCategory, CategoryID: "c1", IsActive: true, DiscountType: DiscountPercentage, DiscountValue: dv(50)},
		{ID: "prod", Scope: ScopeProduct, ProductID: "p1", IsActive: true, DiscountType: DiscountPercentage, DiscountValue: dv(5)},
	}

	// The tiny product-specific offer still beats the huge store-wide one.
	best := BestOffer(product, offers, selNow)
	require.NotNil(t, best)
	assert.Equal(t, "prod", best.ID)
}

func TestBestOffer_MagnitudeBreaksSpecificityTies(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	offers := []Offer{
		{ID: "small", Scope: ScopeCategory, CategoryID: "c1", IsActive: true, DiscountValue: dv(10)},
		{ID: "big", Scope: ScopeCategory, CategoryID: "c1", IsActive: true, DiscountValue: dv(25)},
	}

	best := BestOffer(product, offers, selNow)
	require.NotNil(t, best)
	assert.Equal(t, "big", best.ID)
}

func TestBestOffer_SkipsDeadAndInapplicable(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	offers := []Offer{
		{ID: "inactive", Scope: ScopeProduct, ProductID: "p1", IsActive: false, DiscountValue: dv(50)},
		{ID: "expired", Scope: ScopeProduct, ProductID: "p1", IsActive: true, EndDate: ts("2025-01-01T00:00:00Z"), DiscountValue: dv(50)},
		{ID: "other-product", Scope: ScopeProduct, ProductID: "p2", IsActive: true, DiscountValue: dv(50)},
		{ID: "live", Scope: ScopeAll, IsActive: true, DiscountValue: dv(10)},
	}

	best := BestOffer(product, offers, selNow)
	require.NotNil(t, best)
	assert.Equal(t, "live", best.ID)
}

func TestBestOffer_ConsistentAcrossRepeatedCalls(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	// Two true ties: same scope, same value. Any winner is acceptable, but
	// it must be the same one every time.
	offers := []Offer{
		{ID: "tie-a", Scope: ScopeAll, IsActive: true, DiscountValue: dv(10)},
		{ID: "tie-b", Scope: ScopeAll, IsActive: true, DiscountValue: dv(10)},
	}

	first := BestOffer(product, offers, selNow)
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		again := BestOffer(product, offers, selNow)
		require.NotNil(t, again)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestBestOffer_DoesNotMutateInput(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	offers := []Offer{
		{ID: "a", Scope: ScopeAll, IsActive: true, DiscountValue: dv(10)},
		{ID: "b", Scope: ScopeProduct, ProductID: "p1", IsActive: true, DiscountValue: dv(5)},
	}

	_ = BestOffer(product, offers, selNow)

	assert.Equal(t, "a", offers[0].ID)
	assert.Equal(t, "b", offers[1].ID)
}

func TestDealOffer_ExcludesProductsWithProductScopedOffer(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	offers := []Offer{
		{ID: "prod", Scope: ScopeProduct, ProductID: "p1", IsActive: true, DiscountValue: dv(5)},
		{ID: "cat", Scope: ScopeCategory, CategoryID: "c1", IsActive: true, DiscountValue: dv(50)},
	}

	// p1 carries a live product-scoped offer, so the deal listing skips it
	// entirely even though a category offer would apply.
	assert.Nil(t, DealOffer(product, offers, selNow))

	// A different product in the same category still gets the category deal.
	other := Product{ID: "p2", CategoryID: "c1"}
	deal := DealOffer(other, offers, selNow)
	require.NotNil(t, deal)
	assert.Equal(t, "cat", deal.ID)
}

func TestDealOffer_DeadProductOfferDoesNotExclude(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	offers := []Offer{
		{ID: "prod-expired", Scope: ScopeProduct, ProductID: "p1", IsActive: true, EndDate: ts("2025-01-01T00:00:00Z"), DiscountValue: dv(5)},
		{ID: "cat", Scope: ScopeCategory, CategoryID: "c1", IsActive: true, DiscountValue: dv(50)},
	}

	deal := DealOffer(product, offers, selNow)
	require.NotNil(t, deal)
	assert.Equal(t, "cat", deal.ID)
}

func TestDealOffer_PrefersStoreWideOverCategory(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	// The inverse of BestOffer: the deal listing surfaces store-wide
	// promotions ahead of category ones regardless of magnitude.
	offers := []Offer{
		{ID: "cat", Scope: ScopeCategory, CategoryID: "c1", IsActive: true, DiscountValue: dv(80)},
		{ID: "store", Scope: ScopeAll, IsActive: true, DiscountValue: dv(10)},
	}

	deal := DealOffer(product, offers, selNow)
	require.NotNil(t, deal)
	assert.Equal(t, "store", deal.ID)
}

func TestDealOffer_MagnitudeWithinScope(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	offers := []Offer{
		{ID: "store-small", Scope: ScopeAll, IsActive: true, DiscountValue: dv(10)},
		{ID: "store-big", Scope: ScopeAll, IsActive: true, DiscountValue: dv(30)},
	}

	deal := DealOffer(product, offers, selNow)
	require.NotNil(t, deal)
	assert.Equal(t, "store-big", deal.ID)
}

func TestDealOffer_NothingApplicable(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1"}

	offers := []Offer{
		{ID: "other-cat", Scope: ScopeCategory, CategoryID: "c2", IsActive: true, DiscountValue: dv(50)},
	}

	assert.Nil(t, DealOffer(product, offers, selNow))
}
