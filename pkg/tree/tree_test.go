package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap_PreservesShape(t *testing.T) {
	root := &Node[int]{
		Value: 1,
		Children: []*Node[int]{
			{Value: 2},
			{Value: 3, Children: []*Node[int]{{Value: 4}}},
		},
	}

	mapped := Map(root, func(v int) string {
		return string(rune('a' + v))
	})

	require.Equal(t, "b", mapped.Value)
	require.Len(t, mapped.Children, 2)
	require.Equal(t, "c", mapped.Children[0].Value)
	require.Equal(t, "d", mapped.Children[1].Value)
	require.Equal(t, "e", mapped.Children[1].Children[0].Value)
}

func TestMapWithParent_SeesParentValue(t *testing.T) {
	root := &Node[int]{
		Value: 10,
		Children: []*Node[int]{
			{Value: 20},
		},
	}

	sums := MapWithParent(root, nil, func(v int, parent *int) int {
		if parent == nil {
			return v
		}
		return v + *parent
	})

	require.Equal(t, 10, sums.Value)
	require.Equal(t, 30, sums.Children[0].Value)
}

func TestEqual_IgnoresChildOrder(t *testing.T) {
	a := &Node[int]{Value: 1, Children: []*Node[int]{{Value: 2}, {Value: 3}}}
	b := &Node[int]{Value: 1, Children: []*Node[int]{{Value: 3}, {Value: 2}}}

	require.True(t, Equal(a, b))
}

func TestEqual_DetectsDifference(t *testing.T) {
	a := &Node[int]{Value: 1, Children: []*Node[int]{{Value: 2}}}
	b := &Node[int]{Value: 1, Children: []*Node[int]{{Value: 3}}}

	require.False(t, Equal(a, b))
}

func TestEqual_ReflexiveSymmetricTransitive(t *testing.T) {
	a := &Node[int]{Value: 1, Children: []*Node[int]{{Value: 2}}}
	b := &Node[int]{Value: 1, Children: []*Node[int]{{Value: 2}}}
	c := &Node[int]{Value: 1, Children: []*Node[int]{{Value: 2}}}

	require.True(t, Equal(a, a))
	require.Equal(t, Equal(a, b), Equal(b, a))
	require.True(t, Equal(a, b) && Equal(b, c) && Equal(a, c))
}

func TestCount(t *testing.T) {
	root := &Node[int]{
		Value: 1,
		Children: []*Node[int]{
			{Value: 2},
			{Value: 3, Children: []*Node[int]{{Value: 4}, {Value: 5}}},
		},
	}

	require.Equal(t, 5, Count(root))
}
