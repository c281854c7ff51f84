// Package fieldconfig loads textarea field definitions from JSON/YAML files
// or derives them from OpenAPI component schemas, and converts them into
// textarea.Props and render.RenderOptions.
package fieldconfig
