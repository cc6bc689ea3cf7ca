package primitives

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when a rune falls outside a set's alphabet.
var ErrOutOfRange = errors.New("character out of range")

// CharSet efficiently represents a set of characters drawn from a contiguous range.
type CharSet struct {
	available []bool
	min       rune
	count     int
}

func NewCharSet(min, max rune) *CharSet {
	return &CharSet{
		available: make([]bool, max-min+1),
		min:       min,
		count:     0,
	}
}

// FullCharSet returns a set containing every character from min to max.
func FullCharSet(min, max rune) *CharSet {
	c := NewCharSet(min, max)
	for i := range c.available {
		c.available[i] = true
	}
	c.count = len(c.available)
	return c
}

// WireSet returns an empty set over the scrambled wire labels 'a'-'g'.
func WireSet() *CharSet {
	return NewCharSet(WireMin, WireMax)
}

// SegmentSet returns an empty set over the true segment identities 'A'-'G'.
func SegmentSet() *CharSet {
	return NewCharSet(SegmentMin, SegmentMax)
}

func (c *CharSet) inRange(r rune) bool {
	return r >= c.min && r <= c.min+rune(len(c.available)-1)
}

// Add adds a character to the set.
func (c *CharSet) Add(r rune) error {
	if !c.inRange(r) {
		return fmt.Errorf("%w: %q", ErrOutOfRange, r)
	}

	if c.available[r-c.min] {
		return nil
	}

	c.count++
	c.available[r-c.min] = true
	return nil
}

// Remove removes a character from the set. Removing an absent character is a no-op.
func (c *CharSet) Remove(r rune) error {
	if !c.inRange(r) {
		return fmt.Errorf("%w: %q", ErrOutOfRange, r)
	}

	if !c.available[r-c.min] {
		return nil
	}

	c.count--
	c.available[r-c.min] = false
	return nil
}

// AddAll adds all characters from another set to this set.
func (c *CharSet) AddAll(other *CharSet) {
	if c.min != other.min {
		panic(fmt.Sprintf("cannot add all: char sets have different min, %c != %c", c.min, other.min))
	}
	if len(c.available) != len(other.available) {
		panic(fmt.Sprintf("cannot add all: char sets have different lengths, %d != %d", len(c.available), len(other.available)))
	}

	if c.IsFull() {
		return
	}

	for oi, oa := range other.available {
		if !oa || c.available[oi] {
			continue
		}
		c.available[oi] = true
		c.count++
	}
}

// Complement returns a new set holding every character of the range not in c.
func (c *CharSet) Complement() *CharSet {
	out := &CharSet{
		available: make([]bool, len(c.available)),
		min:       c.min,
		count:     len(c.available) - c.count,
	}
	for i, a := range c.available {
		out.available[i] = !a
	}
	return out
}

// Clone returns an independent copy of the set.
func (c *CharSet) Clone() *CharSet {
	out := &CharSet{
		available: make([]bool, len(c.available)),
		min:       c.min,
		count:     c.count,
	}
	copy(out.available, c.available)
	return out
}

// Contains checks if a character is in the set. Characters outside the range are never contained.
func (c *CharSet) Contains(r rune) bool {
	if !c.inRange(r) {
		return false
	}
	return c.available[r-c.min]
}

// IsFull checks if the set is full.
func (c *CharSet) IsFull() bool {
	return c.count == len(c.available)
}

// Count returns the number of characters in the set.
func (c *CharSet) Count() int {
	return c.count
}

// Runes returns the members of the set in ascending order.
func (c *CharSet) Runes() []rune {
	out := make([]rune, 0, c.count)
	for i, a := range c.available {
		if a {
			out = append(out, c.min+rune(i))
		}
	}
	return out
}

// String returns the members as a sorted string, e.g. "ACF".
func (c *CharSet) String() string {
	var sb strings.Builder
	for _, r := range c.Runes() {
		sb.WriteRune(r)
	}
	return sb.String()
}
