package textarea

// View is the render payload for a field. Renderers consume it instead of the
// Field so they never observe callbacks or evaluator state.
type View struct {
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Value      string     `json:"value"`
	Disabled   bool       `json:"disabled,omitempty"`
	Attributes Attributes `json:"attributes"`

	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
	Error   bool   `json:"error,omitempty"`
	Success bool   `json:"success,omitempty"`
	// MsgClass is set only while a message is visible.
	MsgClass string `json:"msgClass,omitempty"`
}

// Visible reports whether the view carries a message element.
func (v View) Visible() bool {
	return v.State != Hidden
}

// View snapshots the field for rendering.
func (f *Field) View() View {
	view := View{
		ID:         f.props.ID,
		Name:       f.props.Name,
		Value:      f.value,
		Disabled:   f.props.Disabled,
		Attributes: f.props.Attributes,
		State:      f.state,
		Message:    f.message,
		Error:      f.state == ShowingError,
		Success:    f.state == ShowingSuccess,
	}
	if view.Visible() {
		view.MsgClass = MsgClassIdentifier
	}
	return view
}
