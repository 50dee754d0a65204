package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeCombinesOverlappingRanges(t *testing.T) {
	got := Merge([]Range{{Begin: 0, End: 5}, {Begin: 3, End: 8}, {Begin: 20, End: 25}})
	assert.Equal(t, []Range{{Begin: 0, End: 8}, {Begin: 20, End: 25}}, got)
}

func TestMergeKeepsDisjointRangesSeparate(t *testing.T) {
	got := Merge([]Range{{Begin: 10, End: 12}, {Begin: 0, End: 2}})
	assert.Equal(t, []Range{{Begin: 0, End: 2}, {Begin: 10, End: 12}}, got)
}

func TestMergeAbsorbsFullyContainedRange(t *testing.T) {
	got := Merge([]Range{{Begin: 0, End: 10}, {Begin: 3, End: 5}})
	assert.Equal(t, []Range{{Begin: 0, End: 10}}, got)
}

func TestMergeChainsThroughAMiddleRange(t *testing.T) {
	got := Merge([]Range{{Begin: 0, End: 4}, {Begin: 8, End: 12}, {Begin: 3, End: 9}})
	assert.Equal(t, []Range{{Begin: 0, End: 12}}, got)
}

func TestMergeEmptyInput(t *testing.T) {
	assert.Nil(t, Merge(nil))
}
