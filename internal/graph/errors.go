package graph

import "fmt"

// NodeNotFoundError is returned when a requested node ID is absent from
// the graph. Callers are expected to re-prompt for a valid selection
// rather than retry.
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node not found: %s", e.ID)
}
