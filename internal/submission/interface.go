package submission

import "context"

// Service orchestrates match submissions end to end: validate, resolve
// players, persist the event, rebuild ratings, complete any open fixture,
// and announce the result.
type Service interface {
	Submit(ctx context.Context, req Request) (Result, error)
}
