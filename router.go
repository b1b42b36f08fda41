package vault

import (
	"fmt"

	"github.com/iov-one/vault/errors"
)

// Handler processes a relayed message addressed to an extension.
type Handler interface {
	Deliver(ctx Context, db KVStore, caller Address, env *Envelope) error
}

// HandlerFunc allows to use a function as a Handler.
type HandlerFunc func(ctx Context, db KVStore, caller Address, env *Envelope) error

func (fn HandlerFunc) Deliver(ctx Context, db KVStore, caller Address, env *Envelope) error {
	return fn(ctx, db, caller, env)
}

// Router dispatches call data to the handler registered for the path of
// the enclosed message.
type Router struct {
	routes map[string]Handler
}

// NewRouter returns a router without any routes.
func NewRouter() *Router {
	return &Router{routes: make(map[string]Handler)}
}

// Handle registers a handler for given message path. It panics if the path
// is malformed or already taken.
func (r *Router) Handle(path string, h Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid route %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("route %q already registered", path))
	}
	r.routes[path] = h
}

// Call decodes data created by Pack and passes it to the handler registered
// for its path.
func (r *Router) Call(ctx Context, db KVStore, caller Address, value uint64, data []byte) error {
	env, err := Unpack(data)
	if err != nil {
		return err
	}
	h, ok := r.routes[env.Path]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no handler for %q", env.Path)
	}
	return h.Deliver(ctx, db, caller, env)
}
