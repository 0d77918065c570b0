// Package inspect renders snapshots of a reactive graph for debugging: a
// table for terminals, Graphviz DOT, JSON for other tools, a one-line summary
// and a topology fingerprint for spotting graph shape changes.
package inspect

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/reactor/reactive"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Fingerprint hashes the shape of a snapshot: node IDs, kinds, names and
// edges. Dirty and disposed state are left out, so two snapshots of the same
// graph taken before and after a write hash the same.
func Fingerprint(snap reactive.GraphSnapshot) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 17)
	for _, n := range snap.Nodes {
		buf = binary.LittleEndian.AppendUint64(buf[:0], n.ID)
		buf = append(buf, byte(n.Kind))
		d.Write(buf)
		d.WriteString(n.Name)
		d.Write([]byte{0})
	}
	d.Write([]byte{0xff})
	for _, e := range snap.Edges {
		buf = binary.LittleEndian.AppendUint64(buf[:0], e.From)
		buf = binary.LittleEndian.AppendUint64(buf, e.To)
		d.Write(buf)
	}
	return d.Sum64()
}

// Summary is a one-line description such as
// "1,204 nodes (200 signals, 1,000 computeds, 4 effects), 2,410 edges, 3 dirty".
func Summary(snap reactive.GraphSnapshot) string {
	var signals, computeds, effects, dirty, disposed int
	for _, n := range snap.Nodes {
		switch n.Kind {
		case reactive.KindSignal:
			signals++
		case reactive.KindComputed:
			computeds++
		case reactive.KindEffect:
			effects++
		}
		if n.Dirty {
			dirty++
		}
		if n.Disposed {
			disposed++
		}
	}

	var sb strings.Builder
	sb.WriteString(count(len(snap.Nodes), "node"))
	sb.WriteString(" (")
	sb.WriteString(count(signals, "signal"))
	sb.WriteString(", ")
	sb.WriteString(count(computeds, "computed"))
	sb.WriteString(", ")
	sb.WriteString(count(effects, "effect"))
	sb.WriteString("), ")
	sb.WriteString(count(len(snap.Edges), "edge"))
	if dirty > 0 {
		sb.WriteString(", ")
		sb.WriteString(humanize.Comma(int64(dirty)))
		sb.WriteString(" dirty")
	}
	if disposed > 0 {
		sb.WriteString(", ")
		sb.WriteString(humanize.Comma(int64(disposed)))
		sb.WriteString(" disposed")
	}
	return sb.String()
}

func count(n int, singular string) string {
	return english.Plural(n, singular, "")
}
