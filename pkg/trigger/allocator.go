package trigger

import (
	"strconv"
	"sync"

	"github.com/chazu/autotrig/pkg/vmf"
)

// Allocator hands out identifiers guaranteed not to collide with any id in
// the original document. It owns the counter for the lifetime of a run;
// Next is safe to call from multiple goroutines.
type Allocator struct {
	mu   sync.Mutex
	next int
}

// NewAllocator seeds the counter to one past the largest "id" value found
// anywhere in the document tree: solids, sides, entities, everything.
func NewAllocator(root *vmf.Node) *Allocator {
	max := 0
	root.Walk(func(n *vmf.Node) bool {
		for _, p := range n.Props {
			if p.Key != "id" {
				continue
			}
			if v, err := strconv.Atoi(p.Value); err == nil && v > max {
				max = v
			}
		}
		return true
	})
	return &Allocator{next: max + 1}
}

// Next returns a fresh identifier, strictly greater than every id in the
// input and every id previously returned.
func (a *Allocator) Next() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next++
	return id
}
