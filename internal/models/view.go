package models

// DisplayMode enumerates the catalog rendering modes. The preference is
// persisted across sessions.
type DisplayMode string

const (
	DisplayModeGrid DisplayMode = "grid"
	DisplayModeList DisplayMode = "list"
)

// ValidDisplayMode reports whether m is a known display mode.
func ValidDisplayMode(m DisplayMode) bool {
	return m == DisplayModeGrid || m == DisplayModeList
}

// Theme enumerates the color theme preference, persisted across sessions.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ValidTheme reports whether t is a known theme.
func ValidTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}

// SliderState describes the image slider controls for the selected product.
// Hidden means both navigation affordances should not be rendered at all
// (zero or one image); the disabled flags apply when the cursor sits at a
// boundary of the image sequence.
type SliderState struct {
	Index        int  `json:"index"`
	Count        int  `json:"count"`
	PrevDisabled bool `json:"prevDisabled"`
	NextDisabled bool `json:"nextDisabled"`
	Hidden       bool `json:"hidden"`
}
