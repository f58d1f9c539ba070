package entities

// SideEffectWarning reports a best-effort step that failed without failing the operation.
type SideEffectWarning struct {
	Operation string
	EntityID  string
	Message   string
}
