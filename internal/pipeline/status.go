package pipeline

import (
	"strings"
	"time"

	"github.com/supermall-dev/supermall-golang/internal/models"
)

// OfferStatus is the lifecycle state derived from an offer's date range and
// isActive flag relative to the wall clock. It is never persisted: every
// read recomputes it, so an offer flips from upcoming to active to expired
// on its own as time passes.
type OfferStatus string

const (
	OfferStatusActive   OfferStatus = "active"
	OfferStatusUpcoming OfferStatus = "upcoming"
	OfferStatusExpired  OfferStatus = "expired"
	OfferStatusInactive OfferStatus = "inactive"
)

// DeriveOfferStatus computes the status of an offer at time now.
// An offer switched off is inactive no matter what the dates say.
// Malformed or missing dates skip their comparison, leaving the offer
// active rather than erroring.
func DeriveOfferStatus(offer models.Offer, now time.Time) OfferStatus {
	if !offer.IsActive {
		return OfferStatusInactive
	}
	if start, err := time.Parse(models.OfferDateLayout, offer.StartDate); err == nil && now.Before(start) {
		return OfferStatusUpcoming
	}
	if end, err := time.Parse(models.OfferDateLayout, offer.EndDate); err == nil && now.After(end) {
		return OfferStatusExpired
	}
	return OfferStatusActive
}

// OfferStatusFilter extends the status vocabulary for offer lists:
// ALL | ACTIVE | UPCOMING | EXPIRED | INACTIVE.
type OfferStatusFilter string

const OfferStatusAll OfferStatusFilter = "ALL"

// ParseOfferStatusFilter normalizes a raw query parameter; unrecognized
// values disable the filter.
func ParseOfferStatusFilter(raw string) OfferStatusFilter {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVE", "UPCOMING", "EXPIRED", "INACTIVE":
		return OfferStatusFilter(strings.ToUpper(strings.TrimSpace(raw)))
	default:
		return OfferStatusAll
	}
}

func (f OfferStatusFilter) matches(status OfferStatus) bool {
	if f == "" || f == OfferStatusAll {
		return true
	}
	return strings.EqualFold(string(f), string(status))
}
