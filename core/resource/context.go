package resource

import (
	"context"

	"gorm.io/gorm"
)

// Context is the request-scoped transactional context every action operates
// on. Actions never open their own transaction; the HTTP layer begins one
// per request and commits or rolls it back when the response completes.
type Context struct {
	Tx *gorm.DB
}

type contextKeyType struct{}

var contextKey = &contextKeyType{}

// NewContext returns a copy of ctx carrying the transactional context.
func NewContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, contextKey, c)
}

// FromContext returns the transactional context stored in ctx, or nil if
// there is none.
func FromContext(ctx context.Context) *Context {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(contextKey).(*Context)
	return c
}
