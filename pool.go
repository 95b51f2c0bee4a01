package h1

import "sync"

// SerializerPool reuses serializers, and with them their workspaces, across
// messages. This avoids re-allocating the arena per connection in servers
// that serialize many short messages.
type SerializerPool struct {
	pool sync.Pool
}

func NewSerializerPool(ctx *Context, workspaceSize int) *SerializerPool {
	p := &SerializerPool{}
	p.pool.New = func() any { return NewSize(ctx, workspaceSize) }
	return p
}

func (p *SerializerPool) Acquire() *Serializer { return p.pool.Get().(*Serializer) }

// Release resets s and returns it to the pool. The caller must not use s
// afterwards.
func (p *SerializerPool) Release(s *Serializer) {
	s.Reset()
	p.pool.Put(s)
}
