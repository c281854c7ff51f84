// Package template defines the renderer-agnostic template contract. See the
// gotemplate subpackage for the pongo2 engine.
package template
