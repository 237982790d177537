package automata

import "time"

// QueryEvent describes one answered query.
type QueryEvent struct {
	Kind     Kind
	Input    string
	Member   bool
	Duration time.Duration
	Err      error
}

// Hooks carries optional callbacks observing workbench activity.
// Nil callbacks are skipped.
type Hooks struct {
	// OnQuery fires after every Derive, Accepts, Trace or Run call,
	// including the per-input queries made by SelfTest.
	OnQuery func(QueryEvent)
}
