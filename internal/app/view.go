package app

import "context"

// ViewScope ties in-flight requests to a view's lifetime. A view takes
// a scope when it mounts, issues its requests on scope.Context(), and
// calls Teardown when it unmounts; responses arriving afterwards fail
// with context.Canceled instead of mutating shared state.
type ViewScope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewViewScope derives a cancellable scope from parent.
func NewViewScope(parent context.Context) *ViewScope {
	ctx, cancel := context.WithCancel(parent)
	return &ViewScope{ctx: ctx, cancel: cancel}
}

// Context returns the scope's context.
func (v *ViewScope) Context() context.Context { return v.ctx }

// Teardown cancels every request issued under this scope. Safe to call
// more than once.
func (v *ViewScope) Teardown() { v.cancel() }
