package bus

import (
	"context"
	"sync"

	"github.com/yungbote/coursehub-backend/internal/realtime"
)

// memoryBus delivers events to in-process subscribers only. It is the fallback
// when no redis address is configured.
type memoryBus struct {
	mu     sync.RWMutex
	subs   map[int]func(realtime.Event)
	nextID int
	closed bool
}

func NewMemoryBus() Bus {
	return &memoryBus{subs: map[int]func(realtime.Event){}}
}

func (b *memoryBus) Publish(_ context.Context, ev realtime.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, fn := range b.subs {
		fn(ev)
	}
	return nil
}

func (b *memoryBus) StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error {
	if onEvent == nil {
		return nil
	}
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = onEvent
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	b.closed = true
	b.subs = map[int]func(realtime.Event){}
	b.mu.Unlock()
	return nil
}
