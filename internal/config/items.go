package config

import "github.com/san-kum/algoviz/internal/algo"

// itemsOf builds items from weight, value pairs.
func itemsOf(wv ...int) []algo.Item {
	items := make([]algo.Item, 0, len(wv)/2)
	for i := 0; i+1 < len(wv); i += 2 {
		items = append(items, algo.Item{Weight: wv[i], Value: wv[i+1]})
	}
	return items
}
