package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Keyed(t *testing.T) {
	assert := assert.New(t)

	lookup := map[string]int{"a": 1, "b": 2, "c": 3}

	var keys []string
	var values []int
	for key, value := range IterSeq2Keyed([]string{"c", "a"}, lookup) {
		keys = append(keys, key)
		values = append(values, value)
	}

	assert.Equal([]string{"c", "a"}, keys)
	assert.Equal([]int{3, 1}, values)
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	first := IterSeq2Keyed([]string{"x"}, map[string]int{"x": 10})
	second := IterSeq2Keyed([]string{"y", "z"}, map[string]int{"y": 20, "z": 30})

	all := maps.Collect(IterSeq2Concat(first, second))
	assert.Equal(map[string]int{"x": 10, "y": 20, "z": 30}, all)

	// Early exit stops the whole chain.
	var seen []string
	for key := range IterSeq2Concat(first, second) {
		seen = append(seen, key)
		if key == "y" {
			break
		}
	}
	assert.Equal([]string{"x", "y"}, seen)
	assert.True(slices.Contains(seen, "x"))
}
