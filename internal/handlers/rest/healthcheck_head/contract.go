package healthcheck_head

import "context"

// Pinger reports whether a backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}
