package screens

import (
	"errors"

	"github.com/rs/zerolog"
)

// Navigator owns the screen stack. Pushing a screen deactivates the one
// beneath it and activates the newcomer; popping deactivates the leaving
// screen and reactivates the one it uncovered. Every transition is
// deterministic, so a screen's registrations are acquired and released
// exactly once per visible stretch.
type Navigator struct {
	stack  []Screen
	logger zerolog.Logger
}

// NewNavigator creates an empty Navigator.
func NewNavigator(logger zerolog.Logger) *Navigator {
	return &Navigator{logger: logger}
}

// Push makes screen the visible one.
func (n *Navigator) Push(screen Screen) {
	if top := n.top(); top != nil {
		top.Deactivate()
	}
	n.stack = append(n.stack, screen)
	screen.Activate()
	n.logger.Debug().Int("depth", len(n.stack)).Msg("Screen pushed")
}

// Pop closes the visible screen and reactivates the one beneath it.
// The root screen cannot be popped.
func (n *Navigator) Pop() error {
	if len(n.stack) <= 1 {
		return errors.New("cannot pop the root screen")
	}

	top := n.stack[len(n.stack)-1]
	top.Deactivate()
	n.stack = n.stack[:len(n.stack)-1]

	n.top().Activate()
	n.logger.Debug().Int("depth", len(n.stack)).Msg("Screen popped")
	return nil
}

// Top returns the visible screen, or nil for an empty stack.
func (n *Navigator) Top() Screen {
	return n.top()
}

func (n *Navigator) top() Screen {
	if len(n.stack) == 0 {
		return nil
	}
	return n.stack[len(n.stack)-1]
}
