// Package ui renders the small reusable widgets shared by the pages.
package ui

import (
	"bytes"
	"html/template"

	"github.com/dukerupert/memosync/internal/icon"
)

type Variant string

const (
	VariantDanger  Variant = "danger"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// Icon returns the glyph shown in the dialog header.
func (v Variant) Icon() icon.Name {
	switch v {
	case VariantWarning:
		return icon.AlertCircle
	case VariantInfo:
		return icon.Info
	default:
		return icon.AlertTriangle
	}
}

// HeaderClass and ButtonClass are the only things a variant changes.
func (v Variant) HeaderClass() string {
	switch v {
	case VariantWarning:
		return "dialog-head-warning"
	case VariantInfo:
		return "dialog-head-info"
	default:
		return "dialog-head-danger"
	}
}

func (v Variant) ButtonClass() string {
	switch v {
	case VariantWarning:
		return "btn-warning"
	case VariantInfo:
		return "btn-info"
	default:
		return "btn-danger"
	}
}

// Confirm is a modal yes/no prompt rendered into #dialog. The caller owns
// Open; a closed dialog renders nothing.
type Confirm struct {
	Open        bool
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	Variant     Variant

	// ConfirmURL is requested with ConfirmMethod (hx-post, hx-delete, ...)
	// when the user accepts. CancelURL is requested on cancel and Escape.
	ConfirmURL    string
	ConfirmMethod string
	CancelURL     string
}

func (c Confirm) withDefaults() Confirm {
	if c.Title == "" {
		c.Title = "Confirm Action"
	}
	if c.Message == "" {
		c.Message = "Are you sure you want to continue?"
	}
	if c.ConfirmText == "" {
		c.ConfirmText = "Confirm"
	}
	if c.CancelText == "" {
		c.CancelText = "Cancel"
	}
	if c.Variant == "" {
		c.Variant = VariantDanger
	}
	if c.ConfirmMethod == "" {
		c.ConfirmMethod = "post"
	}
	return c
}

// The Escape binding lives on the dialog element itself, so it exists only
// while the dialog is in the DOM.
var confirmTmpl = template.Must(template.New("confirm").Funcs(template.FuncMap{
	"hxattr": func(method, url string) template.HTMLAttr {
		switch method {
		case "get", "post", "put", "patch", "delete":
		default:
			method = "post"
		}
		return template.HTMLAttr(`hx-` + method + `="` + template.HTMLEscapeString(url) + `"`)
	},
}).Parse(`<div class="dialog-backdrop">
  <div class="dialog" role="alertdialog" aria-modal="true" aria-labelledby="dialog-title" tabindex="-1"
       hx-get="{{.CancelURL}}" hx-trigger="keyup[key=='Escape'] from:body" hx-target="#dialog" hx-swap="innerHTML">
    <div class="dialog-head {{.Variant.HeaderClass}}">
      {{.IconSVG}}
      <h3 id="dialog-title">{{.Title}}</h3>
    </div>
    <div class="dialog-body">{{.Message}}</div>
    <div class="dialog-actions">
      <button type="button" class="btn btn-ghost" hx-get="{{.CancelURL}}" hx-target="#dialog" hx-swap="innerHTML">{{.CancelText}}</button>
      <button type="button" class="btn {{.Variant.ButtonClass}}" {{hxattr .ConfirmMethod .ConfirmURL}}>{{.ConfirmText}}</button>
    </div>
  </div>
</div>`))

type confirmView struct {
	Confirm
	IconSVG template.HTML
}

// Render returns the dialog markup, or "" when the dialog is closed.
func (c Confirm) Render() (template.HTML, error) {
	if !c.Open {
		return "", nil
	}
	c = c.withDefaults()
	var buf bytes.Buffer
	if err := confirmTmpl.Execute(&buf, confirmView{Confirm: c, IconSVG: c.Variant.Icon().SVG(20)}); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
