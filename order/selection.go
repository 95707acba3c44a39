// Package order composes the outbound order message for a product from the
// customer's quantity, color allocation and customization choices.
//
// A Selection is a value: every operation returns an updated copy and leaves
// the receiver untouched, so a caller can keep the previous state when an
// operation is rejected.
package order

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 10")
	ErrUnknownColor    = errors.New("color is not offered for this product")
	ErrNotSingleMode   = errors.New("single color selection requires quantity 1")
	ErrNotMultiMode    = errors.New("color counts require quantity greater than 1")
	ErrAllocationFull  = errors.New("all units already have a color")
)

// Product is the part of a catalog product the engine needs
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Colors    []string
	Available bool
	// URL is the public page of the product, used as the link line.
	URL string
}

func (p Product) hasColor(name string) bool {
	for _, c := range p.Colors {
		if c == name {
			return true
		}
	}
	return false
}

// ColorCount is the number of units allocated to one color
type ColorCount struct {
	Name  string
	Count int
}

// Selection is the customer's in-progress order for one product
type Selection struct {
	product  Product
	quantity int
	colors   []ColorCount
	custom   bool
	note     string
}

// NewSelection starts a selection of one unit with no color chosen
func NewSelection(p Product) Selection {
	return Selection{product: p, quantity: MinQuantity}
}

func (s Selection) Product() Product { return s.product }
func (s Selection) Quantity() int    { return s.quantity }
func (s Selection) Custom() bool     { return s.custom }
func (s Selection) Note() string     { return s.note }

// Colors returns the allocations in insertion order
func (s Selection) Colors() []ColorCount {
	out := make([]ColorCount, len(s.colors))
	copy(out, s.colors)
	return out
}

// Count returns the units allocated to name, 0 when absent
func (s Selection) Count(name string) int {
	if i := s.indexOf(name); i >= 0 {
		return s.colors[i].Count
	}
	return 0
}

// Allocated returns the sum of all color counts
func (s Selection) Allocated() int {
	total := 0
	for _, c := range s.colors {
		total += c.Count
	}
	return total
}

// SetQuantity changes the quantity. When the new quantity is below the
// allocated total, allocations are trimmed in insertion order: earlier
// colors keep their counts first and later ones absorb the cut.
func (s Selection) SetQuantity(q int) (Selection, error) {
	if q < MinQuantity || q > MaxQuantity {
		return s, ErrInvalidQuantity
	}

	next := s.clone()
	next.quantity = q
	if next.Allocated() <= q {
		return next, nil
	}

	budget := q
	trimmed := make([]ColorCount, 0, len(next.colors))
	for _, c := range next.colors {
		keep := min(c.Count, budget)
		budget -= keep
		if keep > 0 {
			trimmed = append(trimmed, ColorCount{Name: c.Name, Count: keep})
		}
	}
	next.colors = trimmed
	return next, nil
}

// SelectColorSingle replaces the allocation with one unit of name.
// It only applies while the quantity is 1.
func (s Selection) SelectColorSingle(name string) (Selection, error) {
	if s.quantity != 1 {
		return s, ErrNotSingleMode
	}
	if !s.product.hasColor(name) {
		return s, ErrUnknownColor
	}

	next := s.clone()
	next.colors = []ColorCount{{Name: name, Count: 1}}
	return next, nil
}

// IncrementColor adds one unit to name, creating the entry at the end of
// the insertion order if needed.
func (s Selection) IncrementColor(name string) (Selection, error) {
	if s.quantity <= 1 {
		return s, ErrNotMultiMode
	}
	if !s.product.hasColor(name) {
		return s, ErrUnknownColor
	}
	if s.Allocated() >= s.quantity {
		return s, ErrAllocationFull
	}

	next := s.clone()
	if i := next.indexOf(name); i >= 0 {
		next.colors[i].Count++
	} else {
		next.colors = append(next.colors, ColorCount{Name: name, Count: 1})
	}
	return next, nil
}

// DecrementColor removes one unit from name. An entry reaching zero is
// deleted. Unknown names are ignored.
func (s Selection) DecrementColor(name string) Selection {
	i := s.indexOf(name)
	if i < 0 {
		return s
	}

	next := s.clone()
	if next.colors[i].Count <= 1 {
		next.colors = append(next.colors[:i], next.colors[i+1:]...)
	} else {
		next.colors[i].Count--
	}
	return next
}

// SetCustom toggles the customization request
func (s Selection) SetCustom(custom bool) Selection {
	next := s.clone()
	next.custom = custom
	return next
}

// SetNote sets the free-text customization note
func (s Selection) SetNote(note string) Selection {
	next := s.clone()
	next.note = note
	return next
}

// IsComplete reports whether every unit has a color. Products without
// color variants are always complete.
func (s Selection) IsComplete() bool {
	if len(s.product.Colors) == 0 {
		return true
	}
	return s.Allocated() == s.quantity
}

// CanSubmit gates the order buttons: the selection is complete and the
// product is available.
func (s Selection) CanSubmit() bool {
	return s.IsComplete() && s.product.Available
}

func (s Selection) indexOf(name string) int {
	for i, c := range s.colors {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (s Selection) clone() Selection {
	next := s
	next.colors = make([]ColorCount, len(s.colors))
	copy(next.colors, s.colors)
	return next
}
