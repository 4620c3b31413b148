package session

import (
	"context"

	"github.com/vovakirdan/golden-duck/internal/api"
)

// API is the subset of the backend client the session needs.
type API interface {
	Start(ctx context.Context, skin int) (api.StartResponse, error)
	Collect(ctx context.Context) (api.CheckResponse, error)
	End(ctx context.Context) (api.CheckResponse, error)
}

// Do performs a request against the backend. It blocks; run it off the
// update loop.
func Do(ctx context.Context, client API, req Request) Result {
	res := Result{Request: req}
	switch req.Kind {
	case KindStart:
		res.Start, res.Err = client.Start(ctx, req.Skin)
	case KindCollect:
		res.Check, res.Err = client.Collect(ctx)
	case KindEnd:
		res.Check, res.Err = client.End(ctx)
	}
	return res
}
