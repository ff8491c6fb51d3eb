package heartbeat

import (
	"context"

	"github.com/dvdk01/kuma-heartbeat/internal/schema"
)

type Heartbeat interface {
	Start(ctx context.Context) error

	Stop()

	Name() string

	Stats() *schema.PushStats
}

// Hooks customize what a scheduler reports on each tick. All fields are
// optional; nil hooks fall back to "up" / "OK". Hook functions must not panic.
type Hooks struct {
	// Status reports whether the host considers itself up.
	Status func() bool
	// Message supplies the msg query parameter.
	Message func() string
	// OnPush fires after every tick, successful or not.
	OnPush func(result schema.PushResult)
	// OnError fires after a failed tick, before the next one is scheduled.
	OnError func(err error)
}
