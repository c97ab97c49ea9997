package ports

import "context"

// Translator converts instruction text between the fixed source and target
// languages of the configured implementation.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}
