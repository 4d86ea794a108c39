package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/supermall-dev/supermall-golang/internal/models"
)

func dateOffer(active bool, start, end string) models.Offer {
	return models.Offer{
		Title:     "Test Offer",
		IsActive:  active,
		StartDate: start,
		EndDate:   end,
	}
}

func TestDeriveOfferStatus(t *testing.T) {
	start := "2025-06-01"
	end := "2025-06-30"

	tests := []struct {
		name  string
		offer models.Offer
		now   time.Time
		want  OfferStatus
	}{
		{
			name:  "before start date is upcoming",
			offer: dateOffer(true, start, end),
			now:   time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC),
			want:  OfferStatusUpcoming,
		},
		{
			name:  "inside the window is active",
			offer: dateOffer(true, start, end),
			now:   time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			want:  OfferStatusActive,
		},
		{
			name:  "exactly at start is active",
			offer: dateOffer(true, start, end),
			now:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want:  OfferStatusActive,
		},
		{
			name:  "after end date is expired",
			offer: dateOffer(true, start, end),
			now:   time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC),
			want:  OfferStatusExpired,
		},
		{
			name:  "switched off is inactive before the window",
			offer: dateOffer(false, start, end),
			now:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			want:  OfferStatusInactive,
		},
		{
			name:  "switched off is inactive after the window too",
			offer: dateOffer(false, start, end),
			now:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  OfferStatusInactive,
		},
		{
			name:  "malformed dates never error and read as active",
			offer: dateOffer(true, "not-a-date", ""),
			now:   time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			want:  OfferStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveOfferStatus(tt.offer, tt.now))
		})
	}
}

func TestDeriveOfferStatusIsPure(t *testing.T) {
	offer := dateOffer(true, "2025-06-01", "2025-06-30")
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	first := DeriveOfferStatus(offer, now)
	second := DeriveOfferStatus(offer, now)
	assert.Equal(t, first, second)

	// Same offer, different clock: status flips with no write anywhere.
	assert.Equal(t, OfferStatusExpired, DeriveOfferStatus(offer, now.AddDate(0, 1, 0)))
}

func TestParseOfferStatusFilter(t *testing.T) {
	assert.Equal(t, OfferStatusAll, ParseOfferStatusFilter(""))
	assert.Equal(t, OfferStatusAll, ParseOfferStatusFilter("all"))
	assert.Equal(t, OfferStatusAll, ParseOfferStatusFilter("bogus"))
	assert.Equal(t, OfferStatusFilter("UPCOMING"), ParseOfferStatusFilter("upcoming"))
	assert.Equal(t, OfferStatusFilter("EXPIRED"), ParseOfferStatusFilter("Expired"))
}
