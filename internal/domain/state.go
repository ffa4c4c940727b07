package domain

import (
	"errors"
	"fmt"
)

// ViewState drives what the results panel and the map display.
//
//	idle -> submitting -> rendered
//	idle -> submitting -> errored
//
// A finished submission (rendered or errored) may start a new one. Input
// validation failures move straight from a resting state to errored
// without passing through submitting, since no request is sent.
type ViewState string

const (
	StateIdle       ViewState = "idle"
	StateSubmitting ViewState = "submitting"
	StateRendered   ViewState = "rendered"
	StateErrored    ViewState = "errored"
)

var ErrInvalidTransition = errors.New("invalid view state transition")

var transitions = map[ViewState][]ViewState{
	StateIdle:       {StateSubmitting, StateErrored},
	StateSubmitting: {StateRendered, StateErrored, StateSubmitting},
	StateRendered:   {StateSubmitting, StateErrored},
	StateErrored:    {StateSubmitting, StateErrored},
}

// CanTransition reports whether next is reachable from s in one step.
func (s ViewState) CanTransition(next ViewState) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Transition returns next if the move is legal.
func (s ViewState) Transition(next ViewState) (ViewState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// Resting reports whether no submission is in flight.
func (s ViewState) Resting() bool {
	return s != StateSubmitting
}
