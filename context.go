package h1

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// Context is the shared service registry a serializer is constructed
// against. Services are keyed by the type they are registered under and are
// safe to look up concurrently.
type Context struct {
	services *xsync.Map[reflect.Type, any]
}

func NewContext() *Context {
	return &Context{services: xsync.NewMap[reflect.Type, any]()}
}

// Register installs svc under the type parameter T, replacing any previous
// registration. Typically T is a service interface and svc the concrete
// implementation.
func Register[T any](c *Context, svc T) {
	c.services.Store(reflect.TypeOf((*T)(nil)).Elem(), svc)
}

// GetService returns the service registered under T.
func GetService[T any](c *Context) (T, bool) {
	v, ok := c.services.Load(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}
