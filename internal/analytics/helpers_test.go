package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmadzkh/ecommerce-zaky/internal/domain"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func score(v float64) *float64 {
	return &v
}

// line builds an approved order line with sensible defaults for the fields
// a test does not care about.
func line(orderID, customerID, approvedAt, paymentValue string) domain.OrderLine {
	l := domain.OrderLine{
		OrderID:      orderID,
		CustomerID:   customerID,
		PaymentType:  "credit_card",
		PaymentValue: money(paymentValue),
		UnitPrice:    money(paymentValue),
		ItemSequence: 1,
	}
	if approvedAt != "" {
		l.ApprovedAt = tsp(approvedAt)
		l.PurchasedAt = tsp(approvedAt)
	}
	return l
}
