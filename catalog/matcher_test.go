package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTree() []Category {
	return []Category{
		{
			ID:   "1",
			Name: "Camera",
			Val:  "camera-systems",
			Subcategories: []Subcategory{
				{ID: "10", Name: "Indoor", Val: "indoor"},
				{ID: "11", Name: "Outdoor", Val: "outdoor"},
			},
		},
		{ID: "2", Name: "Fuel Sensor", Val: "fuel-sensor"},
	}
}

func TestMatchesCategory_NoFilter(t *testing.T) {
	p := Product{ProductCode: "AXG01", ProductType: "anything"}
	assert.True(t, MatchesCategory(p, "", testTree()))
	assert.True(t, MatchesCategory(Product{}, "", nil))
}

func TestMatchesCategory_Relational(t *testing.T) {
	cats := testTree()

	t.Run("category val match", func(t *testing.T) {
		p := Product{Category: &CategoryRef{Val: "fuel-sensor"}}
		assert.True(t, MatchesCategory(p, "fuel-sensor", cats))
	})

	t.Run("subcategory val match", func(t *testing.T) {
		p := Product{Subcategory: &CategoryRef{Val: "indoor"}}
		assert.True(t, MatchesCategory(p, "indoor", cats))
	})

	t.Run("case insensitive", func(t *testing.T) {
		p := Product{Category: &CategoryRef{Val: "Fuel-Sensor"}}
		assert.True(t, MatchesCategory(p, "fuel-sensor", cats))
	})

	t.Run("mismatching ref falls through", func(t *testing.T) {
		p := Product{Category: &CategoryRef{Val: "fuel-sensor"}, ProductType: "4CH MDVR"}
		assert.True(t, MatchesCategory(p, "mdvr", cats))
	})
}

func TestMatchesCategory_LegacyKeywords(t *testing.T) {
	cases := []struct {
		name    string
		typ     string
		filter  string
		matches bool
	}{
		{"mdvr substring", "4 Channel MDVR Recorder", "mdvr", true},
		{"mdvr basic version", "Basic Version MDVR X1", "mdvr-basic", true},
		{"mdvr enhanced version", "Enhanced Version MDVR", "mdvr-enhanced", true},
		{"mdvr ai version", "AI Version MDVR Pro", "mdvr-ai", true},
		{"basic does not match plain mdvr type", "4 Channel MDVR", "mdvr-basic", false},
		{"dashcam", "Dual Dashcam", "dashcam", true},
		{"camera via bullet", "IR Bullet 1080p", "camera", true},
		{"camera via dome", "Mini Dome", "camera", true},
		{"rfid via reader", "Long Range Reader", "rfid", true},
		{"rfid via tag", "Windshield Tag", "rfid", true},
		{"accessories via cable", "4-pin Extension Cable", "accessories", true},
		{"accessories via monitor", "7 inch Monitor", "accessories", true},
		{"accessories via sensor", "Fuel Level Sensor", "accessories", true},
		{"case insensitive", "DASHCAM PRO", "dashcam", true},
		{"no keyword hit", "GPS Tracker", "camera", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{ProductType: tc.typ}
			assert.Equal(t, tc.matches, MatchesCategory(p, tc.filter, testTree()))
		})
	}
}

func TestMatchesCategory_DynamicStrict(t *testing.T) {
	cats := testTree()

	t.Run("exact name equality matches", func(t *testing.T) {
		p := Product{ProductType: "Indoor"}
		assert.True(t, MatchesCategory(p, "indoor", cats))
	})

	t.Run("substring must not match", func(t *testing.T) {
		// The old containment rule made the "Indoor" subcategory pick up
		// every product typed "Indoor Camera".
		p := Product{ProductType: "Indoor Camera"}
		assert.False(t, MatchesCategory(p, "indoor", cats))
	})

	t.Run("matches against category name", func(t *testing.T) {
		p := Product{ProductType: "fuel sensor"}
		assert.True(t, MatchesCategory(p, "fuel-sensor", cats))
	})

	t.Run("unknown slug excludes", func(t *testing.T) {
		p := Product{ProductType: "Fuel Sensor"}
		assert.False(t, MatchesCategory(p, "no-such-slug", cats))
	})
}

func TestMatchesCategory_MissingProductType(t *testing.T) {
	p := Product{ProductCode: "AXG01"}
	assert.False(t, MatchesCategory(p, "camera", testTree()))
	assert.False(t, MatchesCategory(p, "indoor", testTree()))
}

func TestFilterProducts(t *testing.T) {
	products := []Product{
		{ProductCode: "A", ProductType: "4CH MDVR"},
		{ProductCode: "B", ProductType: "GPS Tracker"},
		{ProductCode: "C", ProductType: "AI Version MDVR"},
	}

	filtered := FilterProducts(products, "mdvr", testTree())
	assert.Len(t, filtered, 2)
	assert.Equal(t, "A", filtered[0].ProductCode)
	assert.Equal(t, "C", filtered[1].ProductCode)

	assert.Len(t, FilterProducts(products, "", nil), 3)
}
