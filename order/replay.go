package order

import (
	"errors"
	"fmt"
)

// ErrTooManyColors is returned when a single-unit request names more than one color
var ErrTooManyColors = errors.New("only one color can be chosen for a single unit")

// Replay rebuilds a selection from a submitted request by running the same
// operations the product page performs, in the order the colors were picked.
// The first rejected operation is returned as the error.
func Replay(p Product, quantity int, colors []ColorCount, custom bool, note string) (Selection, error) {
	sel, err := NewSelection(p).SetQuantity(quantity)
	if err != nil {
		return sel, err
	}

	if quantity == 1 {
		total := 0
		for _, c := range colors {
			total += c.Count
		}
		if total > 1 {
			return sel, ErrTooManyColors
		}
		for _, c := range colors {
			if c.Count == 0 {
				continue
			}
			if sel, err = sel.SelectColorSingle(c.Name); err != nil {
				return sel, fmt.Errorf("color %q: %w", c.Name, err)
			}
		}
	} else {
		for _, c := range colors {
			for i := 0; i < c.Count; i++ {
				if sel, err = sel.IncrementColor(c.Name); err != nil {
					return sel, fmt.Errorf("color %q: %w", c.Name, err)
				}
			}
		}
	}

	return sel.SetCustom(custom).SetNote(note), nil
}
