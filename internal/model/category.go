package model

// DefaultCategory is the bucket used when nothing else matches.
const DefaultCategory = "Other"

// Category represents a named budget bucket with its allocation and display metadata.
type Category struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`    // Palette descriptor, e.g. "from-blue-500 to-blue-600"
	Gradient  string  `json:"gradient"` // Full gradient class built from Color
	Allocated float64 `json:"allocated"`
	IsCustom  bool    `json:"isCustom,omitempty"`
}
