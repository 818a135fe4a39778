package report

import "context"

// Builder defines the report operation required by the chat front ends.
type Builder interface {
	Build(ctx context.Context, name, tag string) (*Report, error)
}
