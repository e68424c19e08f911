package ui

import (
	"context"
	"fmt"
)

// Command is one user action.
type Command interface {
	command()
}

// SubmitSearch is the search form submission with the raw input text.
type SubmitSearch struct{ Input string }

// SelectHistory is a click on a history chip.
type SelectHistory struct{ City string }

// ToggleTheme is a click on the theme toggle.
type ToggleTheme struct{}

// ClearHistory is a click on the clear-history control.
type ClearHistory struct{}

func (SubmitSearch) command()  {}
func (SelectHistory) command() {}
func (ToggleTheme) command()   {}
func (ClearHistory) command()  {}

// Dispatch runs the transition for cmd and returns the resulting state.
// Search failures are part of the state, not the returned error; the error
// only reports persistence failures and unknown commands.
func (a *App) Dispatch(ctx context.Context, cmd Command) (State, error) {
	switch c := cmd.(type) {
	case SubmitSearch:
		return a.Submit(ctx, c.Input), nil
	case SelectHistory:
		return a.SelectHistory(ctx, c.City), nil
	case ToggleTheme:
		return a.ToggleTheme()
	case ClearHistory:
		return a.ClearHistory()
	default:
		return a.State(), fmt.Errorf("ui: unknown command %T", cmd)
	}
}
