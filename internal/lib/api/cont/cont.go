// Package cont carries request-scoped values through context.
package cont

import "context"

type ctxKey int

const ownerKey ctxKey = iota

// PutOwner stores the authenticated API key owner in the context.
func PutOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// Owner returns the authenticated API key owner, empty when absent.
func Owner(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey).(string)
	return owner
}
