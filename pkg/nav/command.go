package nav

import "fmt"

// Command is a navigation request handled by Cursor.Plan.
type Command interface {
	command()
}

// Previous moves one day back in catalog order.
type Previous struct{}

// Next moves one day forward in catalog order.
type Next struct{}

// JumpTo moves directly to ID.
type JumpTo struct {
	ID int
}

// ExternalHistoryChange follows a back/forward step taken outside the
// cursor. When Valid is false, or ID is not in the catalog, the cursor lands
// on Fallback instead. It never produces a history push.
type ExternalHistoryChange struct {
	ID       int
	Valid    bool
	Fallback int
}

// Today returns to the computed day for the current instant.
type Today struct {
	Day int
}

func (Previous) command()              {}
func (Next) command()                  {}
func (JumpTo) command()                {}
func (ExternalHistoryChange) command() {}
func (Today) command()                 {}

func (Previous) String() string { return "previous" }
func (Next) String() string     { return "next" }
func (c JumpTo) String() string { return fmt.Sprintf("jump(%d)", c.ID) }
func (c Today) String() string  { return fmt.Sprintf("today(%d)", c.Day) }

func (c ExternalHistoryChange) String() string {
	if !c.Valid {
		return fmt.Sprintf("history(invalid->%d)", c.Fallback)
	}
	return fmt.Sprintf("history(%d)", c.ID)
}

// Transition is the outcome of planning a command.
type Transition struct {
	// From is the current day before the transition, 0 when unset.
	From int
	// To is the day the cursor lands on once committed.
	To int
	// Moved is false for boundary no-ops and jumps to the current day.
	Moved bool
	// Push reports whether the move should add a history entry.
	Push bool
}
