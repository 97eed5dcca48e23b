package report

import (
	"github.com/mariia-hub/booking-reports/entity"
)

// Aggregate folds records into per-key buckets in a single pass: one bucket
// lookup and one mutation per record. The fold is commutative, so input
// order never affects the totals.
func Aggregate(records []entity.BookingRecord, resolve KeyResolver) map[string]*entity.Bucket {
	buckets := make(map[string]*entity.Bucket)
	for _, r := range records {
		key := resolve(r)
		b, ok := buckets[key]
		if !ok {
			b = entity.NewBucket(key)
			buckets[key] = b
		}
		observe(b, r)
	}
	return buckets
}

func observe(b *entity.Bucket, r entity.BookingRecord) {
	b.Count++
	b.SumAmount = b.SumAmount.Add(r.TotalAmount)
	b.SumRefund = b.SumRefund.Add(r.RefundAmount)
	b.StatusCounts[r.Status]++
	if r.CustomerID != "" {
		b.CustomerIDs[r.CustomerID] = struct{}{}
	}
}

// foldTotal re-folds all records into one grand-total bucket so distinct
// customers are counted across bucket boundaries, not summed per bucket.
func foldTotal(records []entity.BookingRecord) *entity.Bucket {
	total := entity.NewBucket("total")
	for _, r := range records {
		observe(total, r)
	}
	return total
}
