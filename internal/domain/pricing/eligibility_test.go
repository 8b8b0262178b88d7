package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestIsLive_KillSwitchWins(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// Inactive offers are never live, even inside their window.
	offer := Offer{
		ID:        "o1",
		IsActive:  false,
		StartDate: ts("2025-06-01T00:00:00Z"),
		EndDate:   ts("2025-06-30T00:00:00Z"),
	}
	assert.False(t, IsLive(offer, now))

	offer.IsActive = true
	assert.True(t, IsLive(offer, now))
}

func TestIsLive_DateWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  bool
	}{
		{"no bounds", nil, nil, true},
		{"inside window", ts("2025-06-01T00:00:00Z"), ts("2025-06-30T00:00:00Z"), true},
		{"starts in the future", ts("2025-07-01T00:00:00Z"), nil, false},
		{"already ended", nil, ts("2025-06-01T00:00:00Z"), false},
		{"starts exactly now", ts("2025-06-15T12:00:00Z"), nil, true},
		{"ends exactly now", nil, ts("2025-06-15T12:00:00Z"), true},
		{"open start", nil, ts("2025-06-30T00:00:00Z"), true},
		{"open end", ts("2025-06-01T00:00:00Z"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := Offer{ID: "o1", IsActive: true, StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.want, IsLive(offer, now))
		})
	}
}

func TestIsLive_FutureStartBecomesLive(t *testing.T) {
	offer := Offer{ID: "o1", IsActive: true, StartDate: ts("2025-07-01T00:00:00Z")}

	before := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	atStart := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	after := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsLive(offer, before))
	assert.True(t, IsLive(offer, atStart))
	assert.True(t, IsLive(offer, after))
}

func TestIsApplicable(t *testing.T) {
	product := Product{ID: "p1", CategoryID: "c1", Price: decimal.NewFromInt(100)}

	tests := []struct {
		name  string
		offer Offer
		want  bool
	}{
		{"product scope, matching id", Offer{Scope: ScopeProduct, ProductID: "p1"}, true},
		{"product scope, other id", Offer{Scope: ScopeProduct, ProductID: "p2"}, false},
		{"category scope, matching category", Offer{Scope: ScopeCategory, CategoryID: "c1"}, true},
		{"category scope, other category", Offer{Scope: ScopeCategory, CategoryID: "c2"}, false},
		{"all scope", Offer{Scope: ScopeAll}, true},
		{"unknown scope fails closed", Offer{Scope: "bundle", ProductID: "p1"}, false},
		{"empty scope fails closed", Offer{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsApplicable(tt.offer, product))
		})
	}
}

func TestParseTime_MalformedIsUnbounded(t *testing.T) {
	// Bad dates must never hide an offer behind a parse failure: the bound
	// just becomes open.
	assert.Nil(t, ParseTime(""))
	assert.Nil(t, ParseTime("not-a-date"))
	assert.Nil(t, ParseTime("2025-13-45"))

	assert.NotNil(t, ParseTime("2025-06-15T12:00:00Z"))
	assert.NotNil(t, ParseTime("2025-06-15 12:00:00"))
	assert.NotNil(t, ParseTime("2025-06-15"))
}

func TestIsLive_MalformedDatesTreatedAsOpen(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	offer := Offer{
		ID:        "o1",
		IsActive:  true,
		StartDate: ParseTime("garbage"),
		EndDate:   ParseTime(""),
	}
	assert.True(t, IsLive(offer, now))
}
