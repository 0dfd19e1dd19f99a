package model

// Theme identifies one of the fixed visual themes a guide can use.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeOcean   Theme = "ocean"
	ThemeForest  Theme = "forest"
	ThemeSunset  Theme = "sunset"
	ThemePurple  Theme = "purple"
)

// RGB is a color triple used by the PDF exporter.
type RGB struct {
	R, G, B int
}

type themeStyle struct {
	name   string
	header RGB
}

var themeStyles = map[Theme]themeStyle{
	ThemeDefault: {name: "Azul Clásico", header: RGB{51, 122, 183}},
	ThemeOcean:   {name: "Océano Profundo", header: RGB{14, 116, 144}},
	ThemeForest:  {name: "Bosque Verde", header: RGB{22, 163, 74}},
	ThemeSunset:  {name: "Atardecer", header: RGB{249, 115, 22}},
	ThemePurple:  {name: "Púrpura Real", header: RGB{147, 51, 234}},
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	_, ok := themeStyles[t]
	return ok
}

// DisplayName returns the Spanish display name of the theme.
func (t Theme) DisplayName() string {
	return themeStyles[t].name
}

// HeaderColor returns the header/footer band color used in PDF exports.
// Unknown themes fall back to the default theme's color.
func (t Theme) HeaderColor() RGB {
	if s, ok := themeStyles[t]; ok {
		return s.header
	}
	return themeStyles[ThemeDefault].header
}
