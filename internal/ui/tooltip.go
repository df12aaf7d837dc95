package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

type Position string

const (
	Top    Position = "top"
	Bottom Position = "bottom"
	Left   Position = "left"
	Right  Position = "right"
)

const (
	DefaultTooltipDelay  = 600 * time.Millisecond
	DefaultTooltipOffset = 8
)

// Tooltip wraps an element with a label revealed after Delay on hover, or
// at once on focus. The timer itself runs in the browser.
type Tooltip struct {
	Content  string
	Position Position
	Delay    time.Duration
	Offset   int
}

// Style returns the inline placement for the bubble.
func (t Tooltip) Style() string {
	off := t.Offset
	if off <= 0 {
		off = DefaultTooltipOffset
	}
	switch t.Position {
	case Bottom:
		return fmt.Sprintf("top:100%%;left:50%%;transform:translateX(-50%%);margin-top:%dpx", off)
	case Left:
		return fmt.Sprintf("right:100%%;top:50%%;transform:translateY(-50%%);margin-right:%dpx", off)
	case Right:
		return fmt.Sprintf("left:100%%;top:50%%;transform:translateY(-50%%);margin-left:%dpx", off)
	default:
		return fmt.Sprintf("bottom:100%%;left:50%%;transform:translateX(-50%%);margin-bottom:%dpx", off)
	}
}

var tooltipTmpl = template.Must(template.New("tooltip").Parse(
	`<span class="tooltip" data-tooltip-delay="{{.Delay}}">{{.Child}}<span class="tooltip-bubble" role="tooltip" style="{{.Style}}" hidden>{{.Content}}</span></span>`))

// Wrap renders child inside the tooltip wrapper.
func (t Tooltip) Wrap(child template.HTML) template.HTML {
	delay := t.Delay
	if delay <= 0 {
		delay = DefaultTooltipDelay
	}
	var buf bytes.Buffer
	err := tooltipTmpl.Execute(&buf, struct {
		Delay   int64
		Child   template.HTML
		Style   template.CSS
		Content string
	}{delay.Milliseconds(), child, template.CSS(t.Style()), t.Content})
	if err != nil {
		return child
	}
	return template.HTML(buf.String())
}
