package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmadzkh/ecommerce-zaky/internal/domain"
)

// RFMRecord scores one customer by how recently, how often and how much
// they purchased.
type RFMRecord struct {
	CustomerID  string
	RecencyDays int
	Frequency   int
	Monetary    decimal.Decimal
}

// MaxPurchaseDate returns the latest purchase date across lines, ignoring
// the time of day. ok is false when no line has a purchase time.
func MaxPurchaseDate(lines []domain.OrderLine) (time.Time, bool) {
	var max time.Time
	found := false
	for _, l := range lines {
		if l.PurchasedAt == nil {
			continue
		}
		d := truncateToDay(*l.PurchasedAt)
		if !found || d.After(max) {
			max = d
			found = true
		}
	}
	return max, found
}

// ComputeRFM scores every customer that has at least one purchase time.
// referenceDate anchors recency; callers pass the max purchase date of the
// full unfiltered dataset so scores stay comparable across filter ranges.
// Output is ordered by customer id.
func ComputeRFM(lines []domain.OrderLine, referenceDate time.Time) []RFMRecord {
	type acc struct {
		orders       map[string]struct{}
		monetary     decimal.Decimal
		lastPurchase time.Time
		hasPurchase  bool
	}
	accs := make(map[string]*acc)
	for _, l := range lines {
		a, ok := accs[l.CustomerID]
		if !ok {
			a = &acc{orders: make(map[string]struct{})}
			accs[l.CustomerID] = a
		}
		a.orders[l.OrderID] = struct{}{}
		a.monetary = a.monetary.Add(l.LineTotal())
		if l.PurchasedAt != nil {
			d := truncateToDay(*l.PurchasedAt)
			if !a.hasPurchase || d.After(a.lastPurchase) {
				a.lastPurchase = d
				a.hasPurchase = true
			}
		}
	}

	records := make([]RFMRecord, 0, len(accs))
	for id, a := range accs {
		if !a.hasPurchase {
			continue
		}
		records = append(records, RFMRecord{
			CustomerID:  id,
			RecencyDays: daysBetween(a.lastPurchase, referenceDate),
			Frequency:   len(a.orders),
			Monetary:    a.monetary,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CustomerID < records[j].CustomerID })
	return records
}

// TopCustomers returns the first n RFM rows ranked by recency, descending.
// Every leaderboard view (recency, frequency, monetary) ranks by recency:
// the frequency and monetary labels describe which value the consumer
// displays, not the sort key. Equal recency keeps customer-id order, the
// order ComputeRFM emits.
func TopCustomers(records []RFMRecord, n int) []RFMRecord {
	ranked := make([]RFMRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].RecencyDays > ranked[j].RecencyDays })
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// daysBetween counts whole calendar days from one date to another. Both are
// normalized to UTC midnights first so the subtraction cannot pick up a DST
// offset from the timestamps' own locations.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}
