package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmadzkh/ecommerce-zaky/internal/domain"
)

// SchemaError reports a required column that is missing, or a value that
// cannot be parsed into its semantic type. Loading stops at the first one;
// no partial table is ever returned.
type SchemaError struct {
	Column string
	Row    int // 1-based data row; 0 when the header itself is wrong
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("schema error in column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema error in column %q at row %d: %s", e.Column, e.Row, e.Reason)
}

// Column names of the order-line CSV.
const (
	colOrderID      = "order_id"
	colCustomerID   = "customer_id"
	colPurchasedAt  = "order_purchase_timestamp"
	colApprovedAt   = "order_approved_at"
	colCategory     = "product_category_name"
	colReviewScore  = "review_score"
	colPaymentType  = "payment_type"
	colPaymentValue = "payment_value"
	colUnitPrice    = "price"
	colItemSequence = "order_item_id"
	colCity         = "customer_city"
	colState        = "customer_state"
)

var requiredColumns = []string{
	colOrderID,
	colCustomerID,
	colPurchasedAt,
	colApprovedAt,
	colCategory,
	colReviewScore,
	colPaymentType,
	colPaymentValue,
	colUnitPrice,
	colItemSequence,
	colCity,
	colState,
}

const timestampLayout = "2006-01-02 15:04:05"

// LoadCSV reads the order-line table from a CSV file.
func LoadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses order lines from CSV data. The header row maps column
// names to positions, so column order in the file does not matter; extra
// columns are ignored.
func ReadCSV(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &SchemaError{Column: col, Reason: "required column is missing"}
		}
	}

	var lines []domain.OrderLine
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row, err)
		}
		line, serr := parseLine(record, index, row)
		if serr != nil {
			return nil, serr
		}
		lines = append(lines, line)
	}
	return NewStore(lines), nil
}

func parseLine(record []string, index map[string]int, row int) (domain.OrderLine, *SchemaError) {
	get := func(col string) string { return strings.TrimSpace(record[index[col]]) }

	purchasedAt, err := parseNullableTime(get(colPurchasedAt))
	if err != nil {
		return domain.OrderLine{}, &SchemaError{Column: colPurchasedAt, Row: row, Reason: err.Error()}
	}
	approvedAt, err := parseNullableTime(get(colApprovedAt))
	if err != nil {
		return domain.OrderLine{}, &SchemaError{Column: colApprovedAt, Row: row, Reason: err.Error()}
	}
	reviewScore, err := parseNullableScore(get(colReviewScore))
	if err != nil {
		return domain.OrderLine{}, &SchemaError{Column: colReviewScore, Row: row, Reason: err.Error()}
	}
	paymentValue, err := parseMoney(get(colPaymentValue))
	if err != nil {
		return domain.OrderLine{}, &SchemaError{Column: colPaymentValue, Row: row, Reason: err.Error()}
	}
	unitPrice, err := parseMoney(get(colUnitPrice))
	if err != nil {
		return domain.OrderLine{}, &SchemaError{Column: colUnitPrice, Row: row, Reason: err.Error()}
	}
	seq, err := strconv.Atoi(get(colItemSequence))
	if err != nil || seq < 1 {
		return domain.OrderLine{}, &SchemaError{Column: colItemSequence, Row: row, Reason: "expected a positive integer"}
	}

	return domain.OrderLine{
		OrderID:         get(colOrderID),
		CustomerID:      get(colCustomerID),
		PurchasedAt:     purchasedAt,
		ApprovedAt:      approvedAt,
		ProductCategory: get(colCategory),
		ReviewScore:     reviewScore,
		PaymentType:     get(colPaymentType),
		PaymentValue:    paymentValue,
		UnitPrice:       unitPrice,
		ItemSequence:    seq,
		CustomerCity:    get(colCity),
		CustomerState:   get(colState),
	}, nil
}

func parseNullableTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return nil, fmt.Errorf("expected a %q timestamp", timestampLayout)
	}
	return &t, nil
}

func parseNullableScore(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("expected a numeric score")
	}
	return &v, nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("expected a decimal value")
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("expected a non-negative value")
	}
	return d, nil
}
