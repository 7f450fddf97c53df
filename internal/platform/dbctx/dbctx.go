package dbctx

import "context"

// Context carries the request context into the data layer.
type Context struct {
	Ctx context.Context
}

func From(ctx context.Context) Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return Context{Ctx: ctx}
}
