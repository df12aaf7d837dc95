package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dukerupert/memosync/internal/model"
	"github.com/dukerupert/memosync/internal/notes"
	"github.com/dukerupert/memosync/internal/notify"
)

func newNotesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Inspect and edit the note workspace",
	}
	cmd.AddCommand(
		newNotesListCmd(a),
		newNotesAddCmd(a),
		newNotesExportCmd(a),
		newNotesResetCmd(a),
	)
	return cmd
}

// withStore opens the configured storage for the duration of fn.
// Notifications are printed to msgs.
func (a *app) withStore(ctx context.Context, msgs io.Writer, fn func(*notes.Store) error) error {
	storage, closeStorage, err := openStorage(ctx, a.cfg.Storage, a.logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	ns := notes.NewStore(storage, notes.Options{
		Logger: a.logger.With("component", "notes"),
		Notifier: notify.Func(func(_ context.Context, n notify.Notification) {
			fmt.Fprintln(msgs, n.Message)
		}),
	})
	return fn(ns)
}

func newNotesListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, pinned first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), cmd.ErrOrStderr(), func(ns *notes.Store) error {
				view := ns.View(cmd.Context())
				ordered := append(append([]model.Note{}, view.Pinned...), view.Others...)
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(ordered)
				}
				return printNotes(cmd.OutOrStdout(), ordered, time.Now())
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the notes as JSON")
	return cmd
}

func printNotes(out io.Writer, list []model.Note, now time.Time) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(out, "No notes yet")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPIN\tCOLOR\tTITLE\tCREATED")
	for _, n := range list {
		pin := ""
		if n.IsPinned {
			pin = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", n.ID, pin, n.Color, summary(n), humanize.RelTime(n.CreatedAt, now, "ago", "from now"))
	}
	return w.Flush()
}

// summary is the title, or the first line of the content for untitled
// notes, cut to fit a terminal column.
func summary(n model.Note) string {
	s := strings.TrimSpace(n.Title)
	if s == "" {
		s, _, _ = strings.Cut(strings.TrimSpace(n.Content), "\n")
	}
	if r := []rune(s); len(r) > 40 {
		s = string(r[:39]) + "…"
	}
	return s
}

func newNotesAddCmd(a *app) *cobra.Command {
	var (
		title  string
		color  string
		pinned bool
	)

	cmd := &cobra.Command{
		Use:   "add [content...]",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			if model.IsBlank(title, content) {
				return fmt.Errorf("a note needs a title or some content")
			}
			c, ok := model.ParseColor(color)
			if !ok {
				return fmt.Errorf("unknown color %q", color)
			}
			return a.withStore(cmd.Context(), cmd.ErrOrStderr(), func(ns *notes.Store) error {
				note, err := ns.Create(cmd.Context(), title, content, c, pinned)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), note.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&color, "color", "c", string(model.ColorDefault), "color tag")
	cmd.Flags().BoolVarP(&pinned, "pin", "p", false, "pin the note")
	return cmd
}

// exportNote fixes the field names of the YAML export to match the stored
// JSON.
type exportNote struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title,omitempty"`
	Content   string    `yaml:"content,omitempty"`
	Color     string    `yaml:"color"`
	IsPinned  bool      `yaml:"isPinned"`
	CreatedAt time.Time `yaml:"createdAt"`
}

func newNotesExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every note in storage order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			return a.withStore(cmd.Context(), cmd.ErrOrStderr(), func(ns *notes.Store) error {
				return exportNotes(cmd.OutOrStdout(), ns.List(cmd.Context()), format)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func exportNotes(out io.Writer, list []model.Note, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	docs := make([]exportNote, 0, len(list))
	for _, n := range list {
		docs = append(docs, exportNote{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			Color:     string(n.Color),
			IsPinned:  n.IsPinned,
			CreatedAt: n.CreatedAt,
		})
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func newNotesResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the workspace with the starter notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), cmd.ErrOrStderr(), func(ns *notes.Store) error {
				if err := ns.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Workspace reset to the starter notes")
				return nil
			})
		},
	}
}
