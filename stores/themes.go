package stores

// Theme describes one storefront variant. The registry is closed and
// resolved at startup; stores reference a theme by id only.
type Theme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccentColor string `json:"accentColor"`
	Layout      string `json:"layout"`
}

const defaultThemeID = "base-default"

var themeRegistry = map[string]Theme{
	"base-default": {
		ID:          "base-default",
		Name:        "Base",
		AccentColor: "#1a73e8",
		Layout:      "grid",
	},
	"elegant-boutique": {
		ID:          "elegant-boutique",
		Name:        "Elegant Boutique",
		AccentColor: "#8b5e3c",
		Layout:      "editorial",
	},
	"pet-friendly": {
		ID:          "pet-friendly",
		Name:        "Pet Friendly",
		AccentColor: "#2e9e5b",
		Layout:      "playful",
	},
}

// ResolveTheme maps a stored theme id to its variant, falling back to the
// default for unknown ids.
func ResolveTheme(id string) Theme {
	if t, ok := themeRegistry[id]; ok {
		return t
	}
	return themeRegistry[defaultThemeID]
}
