package search

import "github.com/poiesic/coursefinder/core"

// Monitor provides hooks to observe queries as matchers run them.
// Implementations must be safe for concurrent use.
type Monitor interface {
	Start(kind Kind, query string, topK int)
	// Failed is called when a query fails and an empty result is returned
	// in its place.
	Failed(query string, err error)
	Finish(query string, results []core.ScoredCourse)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Kind, _ string, _ int)          {}
func (n *noopMonitor) Failed(_ string, _ error)                {}
func (n *noopMonitor) Finish(_ string, _ []core.ScoredCourse) {}
