package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cats := testTree()

	t.Run("by slug finds category", func(t *testing.T) {
		node, ok := Resolve(cats, BySlug("fuel-sensor"))
		require.True(t, ok)
		assert.Equal(t, "Fuel Sensor", node.Name)
		assert.False(t, node.Subcategory)
	})

	t.Run("by slug finds subcategory with parent", func(t *testing.T) {
		node, ok := Resolve(cats, BySlug("indoor"))
		require.True(t, ok)
		assert.True(t, node.Subcategory)
		assert.Equal(t, "Indoor", node.Name)
		assert.Equal(t, "camera-systems", node.ParentVal)
	})

	t.Run("slug lookup is case insensitive", func(t *testing.T) {
		node, ok := Resolve(cats, BySlug("INDOOR"))
		require.True(t, ok)
		assert.Equal(t, "indoor", node.Val)
	})

	t.Run("by id is exact", func(t *testing.T) {
		node, ok := Resolve(cats, ByID("10"))
		require.True(t, ok)
		assert.Equal(t, "Indoor", node.Name)

		_, ok = Resolve(cats, ByID("99"))
		assert.False(t, ok)
	})

	t.Run("empty id never matches nodes without ids", func(t *testing.T) {
		bare := []Category{{Name: "Camera", Val: "camera"}}
		_, ok := Resolve(bare, ByID(""))
		assert.False(t, ok)
	})

	t.Run("by display name", func(t *testing.T) {
		node, ok := Resolve(cats, ByDisplayName("camera"))
		require.True(t, ok)
		assert.Equal(t, "camera-systems", node.Val)
	})

	t.Run("categories win over subcategories", func(t *testing.T) {
		tree := []Category{
			{Name: "Indoor", Val: "indoor-main"},
			{Name: "Camera", Val: "camera", Subcategories: []Subcategory{{Name: "Indoor", Val: "indoor"}}},
		}
		node, ok := Resolve(tree, ByDisplayName("Indoor"))
		require.True(t, ok)
		assert.False(t, node.Subcategory)
		assert.Equal(t, "indoor-main", node.Val)
	})

	t.Run("not found", func(t *testing.T) {
		_, ok := Resolve(cats, BySlug("missing"))
		assert.False(t, ok)
	})
}
