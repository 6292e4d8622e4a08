package routing

import (
	"errors"
	"fmt"

	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
)

var (
	ErrNoPathFound   = errors.New("no path found")
	ErrSearchTimeout = errors.New("shortest path search exceeded its deadline")
	ErrInvalidNode   = errors.New("node is not in the graph")
)

// NoPathFoundError. target is not reachable from source, a normal outcome on disconnected networks.
type NoPathFoundError struct {
	Source da.Index
	Target da.Index
}

func (e *NoPathFoundError) Error() string {
	return fmt.Sprintf("no path found from node %d to node %d", e.Source, e.Target)
}

func (e *NoPathFoundError) Is(target error) bool {
	return target == ErrNoPathFound
}
