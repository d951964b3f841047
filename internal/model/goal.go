package model

// Goal is a savings target tracked by hand.
type Goal struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
}

// IsComplete reports whether the goal has been reached.
func (g Goal) IsComplete() bool {
	return g.Current >= g.Target
}
