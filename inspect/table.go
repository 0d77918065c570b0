package inspect

import (
	"io"

	"github.com/delaneyj/reactor/reactive"
	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable renders one row per node with its edge counts and state.
func WriteTable(w io.Writer, title string, snap reactive.GraphSnapshot) {
	tbl := table.NewWriter()
	if title != "" {
		tbl.SetTitle(title)
	}
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"id", "node", "kind", "deps", "subs", "state"})

	for _, n := range snap.Nodes {
		tbl.AppendRow(table.Row{
			n.ID,
			n.Label(),
			n.Kind.String(),
			n.Dependencies,
			n.Subscribers,
			state(n),
		})
	}
	tbl.AppendFooter(table.Row{"", Summary(snap)})
	tbl.Render()
}

func state(n reactive.NodeInfo) string {
	switch {
	case n.Disposed:
		return "disposed"
	case n.Dirty:
		return "dirty"
	default:
		return "clean"
	}
}
