package dataset

import "github.com/ahmadzkh/ecommerce-zaky/internal/domain"

// Store is an immutable table of order lines, loaded once per process and
// read-only for its lifetime.
type Store struct {
	lines []domain.OrderLine
}

// NewStore wraps an already-parsed slice of order lines.
func NewStore(lines []domain.OrderLine) *Store {
	return &Store{lines: lines}
}

// Records returns the loaded rows. Callers must treat the slice as
// read-only.
func (s *Store) Records() []domain.OrderLine {
	return s.lines
}

// Len returns the number of loaded rows.
func (s *Store) Len() int {
	return len(s.lines)
}
