package bus

import (
	"context"

	"github.com/yungbote/coursehub-backend/internal/realtime"
)

// Bus fans enrollment events out to subscribers. Publish is best effort: callers
// log failures and never roll back a committed write because of them.
type Bus interface {
	Publish(ctx context.Context, ev realtime.Event) error
	StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error
	Close() error
}
