// Package nav builds the site navigation bar.
package nav

// Link classes. Every link carries BaseClass plus one of the state classes.
const (
	BaseClass     = "hover:text-blue-600 transition"
	ActiveClass   = "text-blue-600 font-semibold"
	InactiveClass = "text-gray-700"
)

// Item is a navigation route.
type Item struct {
	Href  string
	Label string
}

// Link is an Item rendered for a particular current path.
type Link struct {
	Item
	Active bool
	Class  string
}

var items = []Item{
	{Href: "/", Label: "Home"},
	{Href: "/markets", Label: "Markets"},
	{Href: "/agents", Label: "Agents"},
	{Href: "/launch", Label: "Launch"},
}

// Items returns the navigation routes in display order.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Links marks the item whose Href equals pathname as active. Matching is
// exact: "/markets/1" activates nothing.
func Links(pathname string) []Link {
	links := make([]Link, len(items))
	for i, item := range items {
		active := pathname == item.Href
		state := InactiveClass
		if active {
			state = ActiveClass
		}
		links[i] = Link{Item: item, Active: active, Class: BaseClass + " " + state}
	}
	return links
}
