// Package cart holds the per-session order cart.
package cart

import (
	"github.com/shopspring/decimal"

	"nativedelight/internal/models"
)

// Line is one distinct menu item in the cart. Quantity is always at least 1.
type Line struct {
	models.MenuItem
	Quantity int `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store keeps lines in insertion order. It is not safe for concurrent use;
// callers serialize access per session.
type Store struct {
	lines []Line
	open  bool
}

func New() *Store {
	return &Store{}
}

// Add increments the quantity when the item is already present, otherwise
// appends a new line with quantity 1.
func (s *Store) Add(item models.MenuItem) {
	if idx := s.indexOf(item.ID); idx >= 0 {
		s.lines[idx].Quantity++
		return
	}
	s.lines = append(s.lines, Line{MenuItem: item, Quantity: 1})
}

// UpdateQuantity removes the line when quantity drops below 1. Unknown ids are
// ignored.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity < 1 {
		s.Remove(id)
		return
	}
	if idx := s.indexOf(id); idx >= 0 {
		s.lines[idx].Quantity = quantity
	}
}

func (s *Store) Remove(id string) {
	if idx := s.indexOf(id); idx >= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	}
	s.closeIfEmpty()
}

func (s *Store) Clear() {
	s.lines = nil
	s.closeIfEmpty()
}

func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount sums quantities across lines.
func (s *Store) ItemCount() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Line(id string) (Line, bool) {
	if idx := s.indexOf(id); idx >= 0 {
		return s.lines[idx], true
	}
	return Line{}, false
}

func (s *Store) Len() int {
	return len(s.lines)
}

func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

// Open shows the cart panel. An empty cart may be opened; it closes again on
// the next mutation that leaves it empty.
func (s *Store) Open() {
	s.open = true
}

func (s *Store) Close() {
	s.open = false
}

func (s *Store) IsOpen() bool {
	return s.open
}

func (s *Store) closeIfEmpty() {
	if len(s.lines) == 0 {
		s.open = false
	}
}

func (s *Store) indexOf(id string) int {
	for i, line := range s.lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}
