package render

import (
	"context"

	"github.com/goliatone/go-formfield/pkg/textarea"
)

// Renderer converts a field view into a byte representation (HTML, terminal
// transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view textarea.View, options RenderOptions) ([]byte, error)
}
