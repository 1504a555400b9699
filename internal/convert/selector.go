// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/office-convert/pkg/types"
)

// State is a step of the backend selection state machine.
type State int

const (
	NotStarted State = iota
	TryingDirect
	DirectSucceeded
	FallingBack
	Done
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case TryingDirect:
		return "trying-direct"
	case DirectSucceeded:
		return "direct-succeeded"
	case FallingBack:
		return "falling-back"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Selection is the outcome adopted by the selector and the backend that
// produced it.
type Selection struct {
	Backend  string
	FellBack bool
	Outcome  types.ConversionOutcome
}

// Selector runs the primary backend and switches to the fallback for the
// whole run only when the primary reports ErrUnavailable. Per-file errors
// inside the primary never cause a fallback.
type Selector struct {
	primary  Backend
	fallback Backend
	w        io.Writer
	state    State
	visited  []State
}

// NewSelector creates a selector. Diagnostics are written to w.
func NewSelector(primary, fallback Backend, w io.Writer) *Selector {
	return &Selector{primary: primary, fallback: fallback, w: w}
}

// State returns the current state.
func (s *Selector) State() State { return s.state }

// Path returns every state entered so far, in order.
func (s *Selector) Path() []State { return s.visited }

func (s *Selector) enter(st State) {
	s.state = st
	s.visited = append(s.visited, st)
}

// Run executes the batch and returns the adopted outcome.
func (s *Selector) Run(ctx context.Context, batch types.JobBatch) Selection {
	s.state, s.visited = NotStarted, nil

	s.enter(TryingDirect)
	out, err := s.primary.Run(ctx, batch)
	if err == nil {
		s.enter(DirectSucceeded)
		s.enter(Done)
		return Selection{Backend: s.primary.Name(), Outcome: out}
	}
	if !errors.Is(err, ErrUnavailable) {
		out.Fail(err.Error())
		s.enter(Done)
		return Selection{Backend: s.primary.Name(), Outcome: out}
	}

	fmt.Fprintln(s.w, err)
	fmt.Fprintf(s.w, "Falling back to %s-based conversion...\n", s.fallback.Name())
	s.enter(FallingBack)

	out, err = s.fallback.Run(ctx, batch)
	if err != nil {
		out.Fail(err.Error())
	}
	s.enter(Done)
	return Selection{Backend: s.fallback.Name(), FellBack: true, Outcome: out}
}
