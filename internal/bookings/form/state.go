package form

// State is where a draft sits in its lifecycle:
// Editing -> Submittable -> (Submitted | Editing). Submitted is terminal.
type State string

const (
	StateEditing     State = "editing"
	StateSubmittable State = "submittable"
	StateSubmitted   State = "submitted"
)

func (s State) IsTerminal() bool {
	return s == StateSubmitted
}
