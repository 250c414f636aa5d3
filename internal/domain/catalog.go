package domain

// ModelOption describes one selectable backend model preset.
type ModelOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PlatformOption describes one marketplace choice for the UI dropdown.
type PlatformOption struct {
	ID          Platform `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
}
