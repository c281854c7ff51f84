// Package textarea implements a multi-line text field with inline validation.
//
// A Field owns its current value and a message visibility state. Focus hides
// the message, Blur evaluates the value through a validation.Evaluator and
// shows the localized outcome, and PushAsync overlays a result computed by the
// host. Interaction callbacks on Props are forwarded after the field has
// updated its own state. Renderers consume Field.View.
package textarea
