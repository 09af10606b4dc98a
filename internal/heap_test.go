package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestNode(height int) *Computed {
	return &Computed{Signal: &Signal{ReactiveNode: &ReactiveNode{height: height}}}
}

func TestPriorityHeap(t *testing.T) {
	t.Run("Drain processes nodes in ascending height order", func(t *testing.T) {
		h := NewHeap()

		var order []int
		n0 := newTestNode(0)
		n1 := newTestNode(1)
		n2 := newTestNode(2)

		h.Insert(n2)
		h.Insert(n0)
		h.Insert(n1)

		h.Drain(func(n *Computed) { order = append(order, n.GetHeight()) })

		assert.Equal(t, []int{0, 1, 2}, order)
	})

	t.Run("inserting the same node twice is a no-op", func(t *testing.T) {
		h := NewHeap()
		n := newTestNode(0)

		h.Insert(n)
		h.Insert(n)

		count := 0
		h.Drain(func(*Computed) { count++ })

		assert.Equal(t, 1, count)
	})

	t.Run("Remove before Drain excludes the node", func(t *testing.T) {
		h := NewHeap()
		n1 := newTestNode(1)
		n2 := newTestNode(1)

		h.Insert(n1)
		h.Insert(n2)
		h.Remove(n1)

		var seen []*Computed
		h.Drain(func(n *Computed) { seen = append(seen, n) })

		assert.Equal(t, []*Computed{n2}, seen)
	})

	t.Run("nodes at the same height drain in insertion order", func(t *testing.T) {
		h := NewHeap()
		n1 := newTestNode(3)
		n2 := newTestNode(3)
		n3 := newTestNode(3)

		h.Insert(n1)
		h.Insert(n2)
		h.Insert(n3)

		var seen []*Computed
		h.Drain(func(n *Computed) { seen = append(seen, n) })

		assert.Equal(t, []*Computed{n1, n2, n3}, seen)
	})
}
