// Package nav implements the navigation cursor over the catalog.
package nav

import (
	"fmt"

	"tableflip.dev/thought/pkg/catalog"
)

// InvalidIDError reports a jump target missing from the catalog.
type InvalidIDError struct {
	ID int
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("nav: day %d is not in the catalog", e.ID)
}

// Cursor tracks the displayed day. Once set, the current day is always in
// the catalog. Cursor is not safe for concurrent use; the session serializes
// access.
type Cursor struct {
	cat     *catalog.Catalog
	current int
	set     bool
}

// New returns an unset cursor over cat.
func New(cat *catalog.Catalog) *Cursor {
	return &Cursor{cat: cat}
}

// Current returns the current day and whether the cursor has been set.
func (c *Cursor) Current() (int, bool) {
	return c.current, c.set
}

// AtFirst reports whether the current day is the first in the catalog.
func (c *Cursor) AtFirst() bool {
	i, ok := c.position()
	return ok && i == 0
}

// AtLast reports whether the current day is the last in the catalog.
func (c *Cursor) AtLast() bool {
	i, ok := c.position()
	return ok && i == c.cat.Len()-1
}

// Previous moves back one day. At the first day it is a no-op and returns
// false.
func (c *Cursor) Previous() (int, bool) {
	t, _ := c.Plan(Previous{})
	c.apply(t)
	return c.current, t.Moved
}

// Next moves forward one day. At the last day it is a no-op and returns
// false.
func (c *Cursor) Next() (int, bool) {
	t, _ := c.Plan(Next{})
	c.apply(t)
	return c.current, t.Moved
}

// Jump moves to id.
func (c *Cursor) Jump(id int) (int, error) {
	t, err := c.Plan(JumpTo{ID: id})
	if err != nil {
		return c.current, err
	}
	c.apply(t)
	return c.current, nil
}

// Plan computes the transition for cmd without changing the cursor.
func (c *Cursor) Plan(cmd Command) (Transition, error) {
	t := Transition{From: c.current, To: c.current}

	switch cmd := cmd.(type) {
	case Previous:
		i, ok := c.position()
		if !ok || i == 0 {
			return t, nil
		}
		return c.move(t, c.cat.At(i-1).Day, true), nil

	case Next:
		i, ok := c.position()
		if !ok || i == c.cat.Len()-1 {
			return t, nil
		}
		return c.move(t, c.cat.At(i+1).Day, true), nil

	case JumpTo:
		if !c.cat.Contains(cmd.ID) {
			return t, &InvalidIDError{ID: cmd.ID}
		}
		return c.move(t, cmd.ID, true), nil

	case Today:
		if !c.cat.Contains(cmd.Day) {
			return t, &InvalidIDError{ID: cmd.Day}
		}
		return c.move(t, cmd.Day, true), nil

	case ExternalHistoryChange:
		target := cmd.ID
		if !cmd.Valid || !c.cat.Contains(target) {
			target = cmd.Fallback
		}
		if !c.cat.Contains(target) {
			return t, &InvalidIDError{ID: target}
		}
		return c.move(t, target, false), nil

	default:
		return t, fmt.Errorf("nav: unknown command %T", cmd)
	}
}

// Commit applies a transition produced by Plan. A transition whose target
// is not in the catalog is rejected.
func (c *Cursor) Commit(t Transition) error {
	if !c.cat.Contains(t.To) {
		return &InvalidIDError{ID: t.To}
	}
	c.apply(t)
	return nil
}

func (c *Cursor) apply(t Transition) {
	if !c.cat.Contains(t.To) {
		return
	}
	c.current = t.To
	c.set = true
}

func (c *Cursor) move(t Transition, to int, push bool) Transition {
	t.To = to
	t.Moved = !c.set || to != c.current
	t.Push = push && t.Moved
	return t
}

func (c *Cursor) position() (int, bool) {
	if !c.set {
		return 0, false
	}
	return c.cat.IndexOf(c.current)
}
