package inspect

import (
	"io"

	"github.com/delaneyj/reactor/reactive"
	"github.com/valyala/quicktemplate"
)

// StreamDOT writes snap as a Graphviz digraph. Edges point from a dependency
// to the node that reads it.
func StreamDOT(qw *quicktemplate.Writer, snap reactive.GraphSnapshot) {
	w := qw.N()
	w.S("digraph reactive {\n")
	w.S("\trankdir=LR;\n")
	for _, n := range snap.Nodes {
		w.S("\tn")
		w.DUL(n.ID)
		w.S(" [label=")
		w.Q(n.Label())
		w.S(" shape=")
		w.S(dotShape(n.Kind))
		switch state(n) {
		case "disposed":
			w.S(" color=gray fontcolor=gray")
		case "dirty":
			w.S(" style=dashed")
		}
		w.S("];\n")
	}
	for _, e := range snap.Edges {
		w.S("\tn")
		w.DUL(e.From)
		w.S(" -> n")
		w.DUL(e.To)
		w.S(";\n")
	}
	w.S("}\n")
}

func dotShape(k reactive.Kind) string {
	switch k {
	case reactive.KindSignal:
		return "box"
	case reactive.KindEffect:
		return "doubleoctagon"
	default:
		return "ellipse"
	}
}

// StreamJSON writes snap as
// {"nodes":[{"id":..,"name":..,"kind":..,...}],"edges":[{"from":..,"to":..}]}.
func StreamJSON(qw *quicktemplate.Writer, snap reactive.GraphSnapshot) {
	w := qw.N()
	w.S(`{"nodes":[`)
	for i, n := range snap.Nodes {
		if i > 0 {
			w.S(",")
		}
		w.S(`{"id":`)
		w.DUL(n.ID)
		w.S(`,"name":`)
		w.Q(n.Name)
		w.S(`,"label":`)
		w.Q(n.Label())
		w.S(`,"kind":`)
		w.Q(n.Kind.String())
		w.S(`,"dependencies":`)
		w.D(n.Dependencies)
		w.S(`,"subscribers":`)
		w.D(n.Subscribers)
		w.S(`,"dirty":`)
		writeBool(w, n.Dirty)
		w.S(`,"disposed":`)
		writeBool(w, n.Disposed)
		w.S("}")
	}
	w.S(`],"edges":[`)
	for i, e := range snap.Edges {
		if i > 0 {
			w.S(",")
		}
		w.S(`{"from":`)
		w.DUL(e.From)
		w.S(`,"to":`)
		w.DUL(e.To)
		w.S("}")
	}
	w.S("]}")
}

func writeBool(w *quicktemplate.QWriter, b bool) {
	if b {
		w.S("true")
		return
	}
	w.S("false")
}

// WriteDOT renders the digraph into a pooled buffer and copies it to w in one
// write, returning the writer's error.
func WriteDOT(w io.Writer, snap reactive.GraphSnapshot) error {
	return render(w, snap, StreamDOT)
}

func WriteJSON(w io.Writer, snap reactive.GraphSnapshot) error {
	return render(w, snap, StreamJSON)
}

func DOT(snap reactive.GraphSnapshot) string {
	return renderString(snap, StreamDOT)
}

func JSON(snap reactive.GraphSnapshot) string {
	return renderString(snap, StreamJSON)
}

type streamer func(*quicktemplate.Writer, reactive.GraphSnapshot)

func render(w io.Writer, snap reactive.GraphSnapshot, stream streamer) error {
	bb := quicktemplate.AcquireByteBuffer()
	defer quicktemplate.ReleaseByteBuffer(bb)

	qw := quicktemplate.AcquireWriter(bb)
	stream(qw, snap)
	quicktemplate.ReleaseWriter(qw)

	_, err := w.Write(bb.B)
	return err
}

func renderString(snap reactive.GraphSnapshot, stream streamer) string {
	bb := quicktemplate.AcquireByteBuffer()
	qw := quicktemplate.AcquireWriter(bb)
	stream(qw, snap)
	quicktemplate.ReleaseWriter(qw)
	s := string(bb.B)
	quicktemplate.ReleaseByteBuffer(bb)
	return s
}
