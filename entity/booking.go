package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the custom type to enforce enum-like behavior
type BookingStatus string

func (bs BookingStatus) String() string {
	return string(bs)
}

const (
	Confirmed BookingStatus = "confirmed"
	Completed BookingStatus = "completed"
	Cancelled BookingStatus = "cancelled"
	Refunded  BookingStatus = "refunded"
)

// ValidBookingStatuses maps every status the booking store can hand back.
var ValidBookingStatuses = map[BookingStatus]bool{
	Confirmed: true,
	Completed: true,
	Cancelled: true,
	Refunded:  true,
}

// BookingRecord is one raw booking row as fetched from the booking store.
// It is immutable for the lifetime of a report computation.
//
// BookingDate carries the raw stored value; rows coming out of the store can
// hold malformed or empty dates and those records are still counted, they
// just land in the "unknown" bucket.
type BookingRecord struct {
	ID           string
	ServiceID    string
	ProviderID   string
	CustomerID   string
	BookingDate  string
	Status       BookingStatus
	TotalAmount  decimal.Decimal
	RefundAmount decimal.Decimal
	Currency     string
}

var bookingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseBookingDate parses the raw booking date value. ok is false for
// malformed or empty dates.
func ParseBookingDate(raw string) (time.Time, bool) {
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
