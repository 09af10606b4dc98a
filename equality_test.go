package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquality(t *testing.T) {
	t.Run("Strict compares comparable types by ==", func(t *testing.T) {
		eq := Strict[int]()
		assert.True(t, eq(1, 1))
		assert.False(t, eq(1, 2))
	})

	t.Run("Strict falls back to DeepEqual for uncomparable types", func(t *testing.T) {
		eq := Strict[[]int]()
		assert.True(t, eq([]int{1, 2}, []int{1, 2}))
		assert.False(t, eq([]int{1, 2}, []int{1, 3}))
	})

	t.Run("Shallow treats identical own-key maps as equal", func(t *testing.T) {
		eq := Shallow[map[string]int]()
		assert.True(t, eq(map[string]int{"a": 1}, map[string]int{"a": 1}))
		assert.False(t, eq(map[string]int{"a": 1}, map[string]int{"a": 2}))
	})

	t.Run("ByKey compares by a projected field", func(t *testing.T) {
		type record struct {
			ID   int
			Name string
		}
		eq := ByKey(func(r record) int { return r.ID })
		assert.True(t, eq(record{ID: 1, Name: "a"}, record{ID: 1, Name: "b"}))
		assert.False(t, eq(record{ID: 1}, record{ID: 2}))
	})

	t.Run("Never never suppresses notification", func(t *testing.T) {
		eq := Never[int]()
		assert.False(t, eq(1, 1))
	})

	t.Run("ShallowEquals compares structs field by field", func(t *testing.T) {
		type point struct{ X, Y int }
		assert.True(t, ShallowEquals(point{1, 2}, point{1, 2}))
		assert.False(t, ShallowEquals(point{1, 2}, point{1, 3}))
	})

	t.Run("ShallowEquals compares pointers by identity, not contents", func(t *testing.T) {
		a, b := 1, 1
		assert.False(t, ShallowEquals(&a, &b))
		assert.True(t, ShallowEquals(&a, &a))
	})
}
