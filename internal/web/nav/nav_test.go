package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func activeHrefs(links []Link) []string {
	var out []string
	for _, l := range links {
		if l.Active {
			out = append(out, l.Href)
		}
	}
	return out
}

func TestLinksHighlightExactMatch(t *testing.T) {
	links := Links("/markets")

	assert.Equal(t, []string{"/markets"}, activeHrefs(links))
	for _, l := range links {
		if l.Href == "/markets" {
			assert.Equal(t, "hover:text-blue-600 transition text-blue-600 font-semibold", l.Class)
		} else {
			assert.Equal(t, "hover:text-blue-600 transition text-gray-700", l.Class)
		}
	}
}

func TestLinksNoPrefixMatching(t *testing.T) {
	tests := []string{"/markets/1", "/unknown", "", "/Markets", "/agents/"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Empty(t, activeHrefs(Links(path)))
		})
	}
}

func TestLinksRoot(t *testing.T) {
	assert.Equal(t, []string{"/"}, activeHrefs(Links("/")))
}

func TestItemsOrder(t *testing.T) {
	got := Items()
	assert.Equal(t, []Item{
		{"/", "Home"},
		{"/markets", "Markets"},
		{"/agents", "Agents"},
		{"/launch", "Launch"},
	}, got)

	got[0].Label = "changed"
	assert.Equal(t, "Home", Items()[0].Label)
}
