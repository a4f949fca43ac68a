package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is a single denormalized order-line row as loaded from the
// dataset. One order spans multiple lines, so OrderID is not unique.
// Nullable columns map to pointers; an empty ProductCategory means the
// source cell was empty.
type OrderLine struct {
	OrderID         string
	CustomerID      string
	PurchasedAt     *time.Time
	ApprovedAt      *time.Time
	ProductCategory string
	ReviewScore     *float64
	PaymentType     string
	PaymentValue    decimal.Decimal
	UnitPrice       decimal.Decimal
	ItemSequence    int
	CustomerCity    string
	CustomerState   string
}

// LineTotal multiplies unit price by the item sequence number. The source
// dataset carries no quantity column; the sequence number stands in for it,
// and every derived sales view depends on exactly this product.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.ItemSequence)))
}
