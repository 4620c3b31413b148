// Package duck maps backend duck names to skin keys and holds the skin catalog.
package duck

import (
	"strings"
	"unicode"
)

// DefaultKey is the skin used when a name is unknown.
const DefaultKey = "gold"

// Duck is one playable skin.
type Duck struct {
	ID    int    // Backend skin id sent to /game/start
	Key   string // Normalized skin key
	Name  string // Display name
	Color string // Terminal color (hex) used for the duck glyph
}

// Catalog lists the known skins in shop order.
var Catalog = []Duck{
	{ID: 1, Key: "gold", Name: "Gold Duck", Color: "#F5C542"},
	{ID: 2, Key: "blue", Name: "Blue Duck", Color: "#4A90E2"},
	{ID: 3, Key: "red", Name: "Red Duck", Color: "#E24A4A"},
	{ID: 4, Key: "orange", Name: "Orange Duck", Color: "#F39C32"},
	{ID: 5, Key: "pink", Name: "Pink Duck", Color: "#F28DC0"},
	{ID: 6, Key: "purple", Name: "Purple Duck", Color: "#9B59B6"},
	{ID: 7, Key: "white", Name: "White Duck", Color: "#F4F4F4"},
	{ID: 8, Key: "gray", Name: "Gray Duck", Color: "#9E9E9E"},
	{ID: 9, Key: "dark", Name: "Dark Duck", Color: "#4B4B5C"},
	{ID: 10, Key: "browjn", Name: "Brown Duck", Color: "#8B5A2B"},
	{ID: 11, Key: "wine", Name: "Wine Duck", Color: "#722F37"},
	{ID: 12, Key: "black", Name: "Black Duck", Color: "#2B2B2B"},
	{ID: 13, Key: "green", Name: "Green Duck", Color: "#4CAF50"},
}

// aliases fixes keys whose asset names differ from the backend name.
var aliases = map[string]string{
	"brown": "browjn",
}

// Normalize turns a backend name such as "Gray Duck" into a skin key.
// Unknown names yield DefaultKey and ok=false so callers can log them.
func Normalize(name string) (key string, ok bool) {
	key = strings.Replace(name, " Duck", "", 1)
	key = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, key)
	key = strings.ToLower(key)

	if alias, found := aliases[key]; found {
		key = alias
	}
	if _, found := ByKey(key); !found {
		return DefaultKey, false
	}
	return key, true
}

// ByKey finds a skin by normalized key.
func ByKey(key string) (Duck, bool) {
	for _, d := range Catalog {
		if d.Key == key {
			return d, true
		}
	}
	return Duck{}, false
}

// ByID finds a skin by backend id.
func ByID(id int) (Duck, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Duck{}, false
}

// Default returns the fallback skin.
func Default() Duck {
	d, _ := ByKey(DefaultKey)
	return d
}

// DisplayName returns the human name for a key, or the key itself.
func DisplayName(key string) string {
	if d, ok := ByKey(key); ok {
		return d.Name
	}
	return key
}
