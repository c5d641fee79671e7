package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "trims each element", raw: "a, b ,c", want: []string{"a", "b", "c"}},
		{name: "keeps order and duplicates", raw: "z,a,z", want: []string{"z", "a", "z"}},
		{name: "keeps empty elements", raw: ",a,,b,", want: []string{"", "a", "", "b", ""}},
		{name: "single tag", raw: " travel ", want: []string{"travel"}},
		{name: "whitespace only", raw: "   ", want: []string{""}},
		{name: "empty input", raw: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.raw))
		})
	}
}

func TestCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
		assert.NotEqual(t, string(c), c.Label())
	}
	assert.False(t, Category("gadgets").Valid())
	assert.Equal(t, "gadgets", Category("gadgets").Label())
	assert.Equal(t, "Home Decor", CategoryHomeDecor.Label())
}
