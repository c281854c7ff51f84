package formfield

import (
	"io/fs"

	vanilla "github.com/goliatone/go-formfield/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the vanilla stylesheet so Go applications can serve it
// without a frontend build step.
//
// Typical mount:
//
//	mux.Handle("/formfield/",
//	  http.StripPrefix("/formfield/",
//	    http.FileServerFS(formfield.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
