package model

// Color is a note's color tag. It is purely presentational.
type Color string

const (
	ColorDefault Color = "default"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorPink    Color = "pink"
)

// Swatch describes one palette entry.
type Swatch struct {
	ID    Color
	Name  string
	Class string
}

// Palette is the fixed set of color tags, default first.
var Palette = []Swatch{
	{ID: ColorDefault, Name: "Default", Class: "note-default"},
	{ID: ColorRed, Name: "Red", Class: "note-red"},
	{ID: ColorOrange, Name: "Orange", Class: "note-orange"},
	{ID: ColorYellow, Name: "Yellow", Class: "note-yellow"},
	{ID: ColorGreen, Name: "Green", Class: "note-green"},
	{ID: ColorBlue, Name: "Blue", Class: "note-blue"},
	{ID: ColorPurple, Name: "Purple", Class: "note-purple"},
	{ID: ColorPink, Name: "Pink", Class: "note-pink"},
}

// Valid reports whether c is part of the palette.
func (c Color) Valid() bool {
	for _, s := range Palette {
		if s.ID == c {
			return true
		}
	}
	return false
}

// ParseColor returns the palette color named s. An empty string is the
// default color.
func ParseColor(s string) (Color, bool) {
	if s == "" {
		return ColorDefault, true
	}
	c := Color(s)
	return c, c.Valid()
}

// SwatchFor returns the palette entry for c, or the default entry when c
// is not in the palette.
func SwatchFor(c Color) Swatch {
	for _, s := range Palette {
		if s.ID == c {
			return s
		}
	}
	return Palette[0]
}
