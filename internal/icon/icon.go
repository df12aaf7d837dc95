// Package icon renders the fixed set of glyphs used by the pages.
package icon

import (
	"fmt"
	"html/template"
)

type Name int

const (
	Smile Name = iota
	Plus
	Pin
	Trash
	Trash2
	Palette
	Check
	X
	Archive
	Bell
	Image
	Moon
	Sun
	NotebookPen
	AlertTriangle
	AlertCircle
	Info
	Home
	StickyNote
	Search
	LayoutGrid
	Tags
)

// Default is rendered for names that are not in the set.
const Default = Smile

var names = map[string]Name{
	"Smile":         Smile,
	"Plus":          Plus,
	"Pin":           Pin,
	"Trash":         Trash,
	"Trash2":        Trash2,
	"Palette":       Palette,
	"Check":         Check,
	"X":             X,
	"Archive":       Archive,
	"Bell":          Bell,
	"Image":         Image,
	"Moon":          Moon,
	"Sun":           Sun,
	"NotebookPen":   NotebookPen,
	"AlertTriangle": AlertTriangle,
	"AlertCircle":   AlertCircle,
	"Info":          Info,
	"Home":          Home,
	"StickyNote":    StickyNote,
	"Search":        Search,
	"LayoutGrid":    LayoutGrid,
	"Tags":          Tags,
}

// SVG bodies, 24x24 stroke icons.
var bodies = map[Name]string{
	Smile:         `<circle cx="12" cy="12" r="10"/><path d="M8 14s1.5 2 4 2 4-2 4-2"/><line x1="9" x2="9.01" y1="9" y2="9"/><line x1="15" x2="15.01" y1="9" y2="9"/>`,
	Plus:          `<path d="M5 12h14"/><path d="M12 5v14"/>`,
	Pin:           `<line x1="12" x2="12" y1="17" y2="22"/><path d="M5 17h14v-1.76a2 2 0 0 0-1.11-1.79l-1.78-.9A2 2 0 0 1 15 10.76V6h1a2 2 0 0 0 0-4H8a2 2 0 0 0 0 4h1v4.76a2 2 0 0 1-1.11 1.79l-1.78.9A2 2 0 0 0 5 15.24Z"/>`,
	Trash:         `<path d="M3 6h18"/><path d="M19 6v14c0 1-1 2-2 2H7c-1 0-2-1-2-2V6"/><path d="M8 6V4c0-1 1-2 2-2h4c1 0 2 1 2 2v2"/>`,
	Trash2:        `<path d="M3 6h18"/><path d="M19 6v14c0 1-1 2-2 2H7c-1 0-2-1-2-2V6"/><path d="M8 6V4c0-1 1-2 2-2h4c1 0 2 1 2 2v2"/><line x1="10" x2="10" y1="11" y2="17"/><line x1="14" x2="14" y1="11" y2="17"/>`,
	Palette:       `<circle cx="13.5" cy="6.5" r=".5"/><circle cx="17.5" cy="10.5" r=".5"/><circle cx="8.5" cy="7.5" r=".5"/><circle cx="6.5" cy="12.5" r=".5"/><path d="M12 2C6.5 2 2 6.5 2 12s4.5 10 10 10c.93 0 1.65-.75 1.65-1.69 0-.44-.18-.84-.44-1.13-.29-.29-.44-.65-.44-1.13a1.64 1.64 0 0 1 1.67-1.67h2c3.05 0 5.55-2.5 5.55-5.55C21.97 6.01 17.46 2 12 2z"/>`,
	Check:         `<path d="M20 6 9 17l-5-5"/>`,
	X:             `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
	Archive:       `<rect width="20" height="5" x="2" y="3" rx="1"/><path d="M4 8v11a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V8"/><path d="M10 12h4"/>`,
	Bell:          `<path d="M6 8a6 6 0 0 1 12 0c0 7 3 9 3 9H3s3-2 3-9"/><path d="M10.3 21a1.94 1.94 0 0 0 3.4 0"/>`,
	Image:         `<rect width="18" height="18" x="3" y="3" rx="2" ry="2"/><circle cx="9" cy="9" r="2"/><path d="m21 15-3.09-3.09a2 2 0 0 0-2.82 0L6 21"/>`,
	Moon:          `<path d="M12 3a6 6 0 0 0 9 9 9 9 0 1 1-9-9Z"/>`,
	Sun:           `<circle cx="12" cy="12" r="4"/><path d="M12 2v2"/><path d="M12 20v2"/><path d="m4.93 4.93 1.41 1.41"/><path d="m17.66 17.66 1.41 1.41"/><path d="M2 12h2"/><path d="M20 12h2"/><path d="m6.34 17.66-1.41 1.41"/><path d="m19.07 4.93-1.41 1.41"/>`,
	NotebookPen:   `<path d="M13.4 2H6a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2v-7.4"/><path d="M2 6h4"/><path d="M2 10h4"/><path d="M2 14h4"/><path d="M2 18h4"/><path d="M18.4 2.6a2.17 2.17 0 0 1 3 3L16 11l-4 1 1-4Z"/>`,
	AlertTriangle: `<path d="m21.73 18-8-14a2 2 0 0 0-3.48 0l-8 14A2 2 0 0 0 4 21h16a2 2 0 0 0 1.73-3Z"/><path d="M12 9v4"/><path d="M12 17h.01"/>`,
	AlertCircle:   `<circle cx="12" cy="12" r="10"/><line x1="12" x2="12" y1="8" y2="12"/><line x1="12" x2="12.01" y1="16" y2="16"/>`,
	Info:          `<circle cx="12" cy="12" r="10"/><path d="M12 16v-4"/><path d="M12 8h.01"/>`,
	Home:          `<path d="m3 9 9-7 9 7v11a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"/><polyline points="9 22 9 12 15 12 15 22"/>`,
	StickyNote:    `<path d="M15.5 3H5a2 2 0 0 0-2 2v14c0 1.1.9 2 2 2h14a2 2 0 0 0 2-2V8.5L15.5 3Z"/><path d="M15 3v6h6"/>`,
	Search:        `<circle cx="11" cy="11" r="8"/><path d="m21 21-4.3-4.3"/>`,
	LayoutGrid:    `<rect width="7" height="7" x="3" y="3" rx="1"/><rect width="7" height="7" x="14" y="3" rx="1"/><rect width="7" height="7" x="14" y="14" rx="1"/><rect width="7" height="7" x="3" y="14" rx="1"/>`,
	Tags:          `<path d="M9 5H2v7l6.29 6.29c.94.94 2.48.94 3.42 0l3.58-3.58c.94-.94.94-2.48 0-3.42L9 5Z"/><path d="M6 9.01V9"/><path d="m15 5 6.3 6.3a2.4 2.4 0 0 1 0 3.4L17 19"/>`,
}

// Lookup resolves a symbolic name. Unknown names resolve to Default.
func Lookup(name string) Name {
	if n, ok := names[name]; ok {
		return n
	}
	return Default
}

// SVG renders n at the given pixel size.
func (n Name) SVG(size int) template.HTML {
	body, ok := bodies[n]
	if !ok {
		body = bodies[Default]
	}
	if size <= 0 {
		size = 24
	}
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">%s</svg>`,
		size, size, body))
}

// Render looks up name and renders it. It is registered as the "icon"
// template function.
func Render(name string, size int) template.HTML {
	return Lookup(name).SVG(size)
}
