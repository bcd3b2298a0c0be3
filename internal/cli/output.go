package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/duckbook/pkg/types"
)

// contactView is the JSON form of one contact.
type contactView struct {
	Name string `json:"name"`
	types.ContactSnapshot
}

// noteView is the JSON form of one note.
type noteView struct {
	ID string `json:"id"`
	types.NoteSnapshot
}

func contactViews(records []*types.Record) []contactView {
	out := make([]contactView, len(records))
	for i, r := range records {
		out[i] = contactView{Name: r.Name().Value(), ContactSnapshot: r.Snapshot()}
	}
	return out
}

func noteViews(notes []*types.Note) []noteView {
	out := make([]noteView, len(notes))
	for i, n := range notes {
		out[i] = noteView{ID: n.ID(), NoteSnapshot: n.Snapshot()}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit writes v as JSON in --json mode and text otherwise.
func (a *app) emit(cmd *cobra.Command, v any, text string) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	_, err := io.WriteString(cmd.OutOrStdout(), text)
	return err
}

// blocks joins the String form of each item, one blank line apart.
func blocks[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, "\n")
}

// pageHeader and pageFooter frame paged listings.
func pageHeader(n int) string { return fmt.Sprintf("%s Page %d %s\n", rule, n, rule) }

const rule = "---------------"

var pageFooter = rule + " end " + rule + "\n"

// renderPages renders every page with a header and a closing footer.
func renderPages[T fmt.Stringer](pages iter.Seq[[]T]) string {
	var b strings.Builder
	i := 0
	for page := range pages {
		i++
		b.WriteString(pageHeader(i))
		b.WriteString(blocks(page))
	}
	b.WriteString(pageFooter)
	return b.String()
}

// collectPages flattens pages into JSON-ready batches.
func collectPages[T any, V any](pages iter.Seq[[]T], view func([]T) []V) [][]V {
	out := [][]V{}
	for page := range pages {
		out = append(out, view(page))
	}
	return out
}
