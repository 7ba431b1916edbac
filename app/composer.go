package app

import "context"

// Composer captures post content from the user.
// Implemented by infrastructure (e.g. an editor spawning $EDITOR).
// The inline TUI composer does NOT implement this; it lives entirely
// in the Bubble Tea layer as a model.
type Composer interface {
	Compose(ctx context.Context) (string, error)
}
