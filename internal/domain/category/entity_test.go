// internal/domain/category/entity_test.go
package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContrastColor(t *testing.T) {
	cases := []struct {
		hex  string
		want string
	}{
		{"#ffffff", "black"},
		{"#000000", "white"},
		{"#f0f0f0", "black"},
		{"#513a58", "white"},
		{"ffcc00", "black"}, // leading # is optional
		{"#fff", "black"},   // 3-digit shorthand
		{"#123", "white"},
		{"  #ffffff  ", "black"},
		{"", "white"},         // malformed falls back to white
		{"#gggggg", "white"},  // not hex
		{"#ffff", "white"},    // bad length
		{"not-a-color", "white"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ContrastColor(tc.hex), "ContrastColor(%q)", tc.hex)
	}
}

func TestColorFor(t *testing.T) {
	cats := []Category{
		{ID: "1", Name: "Sac", Color: "#513a58"},
		{ID: "2", Name: "Pochette", Color: "#ffcc00"},
	}

	assert.Equal(t, "#513a58", ColorFor("Sac", cats))
	assert.Equal(t, "#ffcc00", ColorFor("Pochette", cats))
	// orphaned reference (category deleted, product untouched)
	assert.Equal(t, DefaultBadgeColor, ColorFor("Ceinture", cats))
	assert.Equal(t, DefaultBadgeColor, ColorFor("Sac", nil))
}

func TestValidate(t *testing.T) {
	valid := Category{Name: "Sac", Color: "#513a58"}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, (&Category{Name: "", Color: "#fff"}).Validate(), ErrInvalidCategory)
	assert.ErrorIs(t, (&Category{Name: "Sac", Color: "  "}).Validate(), ErrInvalidCategory)
	var nilCat *Category
	assert.ErrorIs(t, nilCat.Validate(), ErrInvalidCategory)
}
