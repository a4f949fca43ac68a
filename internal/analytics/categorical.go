package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ahmadzkh/ecommerce-zaky/internal/domain"
)

// Reducer names the operation that collapses a group of values to a scalar.
type Reducer int

const (
	ReduceCount Reducer = iota
	ReduceSum
	ReduceMean
)

// KeyFunc extracts the group key from a line. ok=false drops the line from
// the grouping entirely (a null key).
type KeyFunc func(domain.OrderLine) (string, bool)

// ValueFunc extracts the value to reduce. ok=false means the value is null:
// the line still counts toward ReduceCount, but sum and mean ignore it in
// both numerator and denominator.
type ValueFunc func(domain.OrderLine) (decimal.Decimal, bool)

// Grouped is the result of GroupReduce. Keys preserves first-seen order,
// which is also the tie-break order TopN falls back to.
type Grouped struct {
	Keys   []string
	Values map[string]decimal.Decimal
}

// CategoryAggregate is one ranked row of a categorical view.
type CategoryAggregate struct {
	Key   string
	Value decimal.Decimal
	Rank  int
}

// GeoAggregate counts order lines per customer location.
type GeoAggregate struct {
	City       string
	State      string
	OrderCount int
}

// GroupReduce groups lines by key and reduces each group's values with the
// given reducer. value may be nil for ReduceCount. A group whose values are
// all null reduces to zero under ReduceMean.
func GroupReduce(lines []domain.OrderLine, key KeyFunc, value ValueFunc, reducer Reducer) Grouped {
	type acc struct {
		count int
		valid int64
		sum   decimal.Decimal
	}
	accs := make(map[string]*acc)
	keys := make([]string, 0)

	for _, l := range lines {
		k, ok := key(l)
		if !ok {
			continue
		}
		a, seen := accs[k]
		if !seen {
			a = &acc{}
			accs[k] = a
			keys = append(keys, k)
		}
		a.count++
		if value == nil {
			continue
		}
		if v, ok := value(l); ok {
			a.valid++
			a.sum = a.sum.Add(v)
		}
	}

	values := make(map[string]decimal.Decimal, len(accs))
	for k, a := range accs {
		switch reducer {
		case ReduceCount:
			values[k] = decimal.NewFromInt(int64(a.count))
		case ReduceSum:
			values[k] = a.sum
		case ReduceMean:
			if a.valid > 0 {
				values[k] = a.sum.Div(decimal.NewFromInt(a.valid))
			} else {
				values[k] = decimal.Zero
			}
		}
	}
	return Grouped{Keys: keys, Values: values}
}

// TopN returns the n highest (or lowest) groups as ranked aggregates.
// n <= 0 means all groups. Equal values keep their first-seen relative
// order: the data defines no secondary sort key, so a stable sort over the
// grouping order is the only reproducible choice.
func TopN(g Grouped, n int, descending bool) []CategoryAggregate {
	ordered := make([]CategoryAggregate, 0, len(g.Keys))
	for _, k := range g.Keys {
		ordered = append(ordered, CategoryAggregate{Key: k, Value: g.Values[k]})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if descending {
			return ordered[i].Value.GreaterThan(ordered[j].Value)
		}
		return ordered[i].Value.LessThan(ordered[j].Value)
	})
	if n > 0 && len(ordered) > n {
		ordered = ordered[:n]
	}
	for i := range ordered {
		ordered[i].Rank = i + 1
	}
	return ordered
}

// PaymentMethodCounts counts lines per payment type, most used first.
func PaymentMethodCounts(lines []domain.OrderLine) []CategoryAggregate {
	g := GroupReduce(lines,
		func(l domain.OrderLine) (string, bool) { return l.PaymentType, l.PaymentType != "" },
		nil,
		ReduceCount)
	return TopN(g, 0, true)
}

// CategoryRatings ranks product categories by mean review score, ignoring
// lines without a score. Lines without a category are excluded.
func CategoryRatings(lines []domain.OrderLine, n int) []CategoryAggregate {
	g := GroupReduce(lines,
		func(l domain.OrderLine) (string, bool) { return l.ProductCategory, l.ProductCategory != "" },
		func(l domain.OrderLine) (decimal.Decimal, bool) {
			if l.ReviewScore == nil {
				return decimal.Decimal{}, false
			}
			return decimal.NewFromFloat(*l.ReviewScore), true
		},
		ReduceMean)
	return TopN(g, n, true)
}

// CategorySales ranks product categories by summed line totals.
func CategorySales(lines []domain.OrderLine, n int) []CategoryAggregate {
	g := GroupReduce(lines,
		func(l domain.OrderLine) (string, bool) { return l.ProductCategory, l.ProductCategory != "" },
		func(l domain.OrderLine) (decimal.Decimal, bool) { return l.LineTotal(), true },
		ReduceSum)
	return TopN(g, n, true)
}

// GeoOrderCounts groups lines by customer city and state. The output is
// sorted by city then state so repeated runs produce identical tables.
func GeoOrderCounts(lines []domain.OrderLine) []GeoAggregate {
	type geoKey struct{ city, state string }
	counts := make(map[geoKey]int)
	for _, l := range lines {
		counts[geoKey{l.CustomerCity, l.CustomerState}]++
	}

	out := make([]GeoAggregate, 0, len(counts))
	for k, n := range counts {
		out = append(out, GeoAggregate{City: k.city, State: k.state, OrderCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].State < out[j].State
	})
	return out
}
