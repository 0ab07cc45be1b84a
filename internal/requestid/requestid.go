// Package requestid carries the per-request correlation ID between the HTTP
// layer and outbound backend calls.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header the ID travels in, inbound and outbound.
const Header = "X-Request-ID"

type ctxKey struct{}

// New returns a fresh random ID.
func New() string {
	return uuid.NewString()
}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the ID stored in ctx, or "" if there is none.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
