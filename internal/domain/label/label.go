// Package label holds the value types describing a task label.
package label

// Color is the display color of a label.
type Color string

const (
	ColorGrey   Color = "grey"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
)

// Defaults applied to a freshly created label.
const (
	DefaultColor = ColorGrey
	DefaultTitle = ""
)

// IsValid returns true if the color is one of the defined constants.
func (c Color) IsValid() bool {
	switch c {
	case ColorGrey, ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return string(c)
}

// Info is the display data of a label as known at a given moment.
type Info struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color Color  `json:"color"`
}

// IsDefault reports whether title and color are both the values a new label
// starts with.
func IsDefault(title string, color Color) bool {
	return title == DefaultTitle && (color == "" || color == DefaultColor)
}
