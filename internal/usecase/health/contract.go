package health

import "context"

// EnginePinger checks index engine availability.
type EnginePinger interface {
	Ping(ctx context.Context) error
}
