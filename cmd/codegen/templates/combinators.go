package templates

import (
	"io"

	"github.com/valyala/quicktemplate"
)

// StreamCombinators writes the ComputedN and EffectN helpers for 1..count
// arguments into the reactive package.
func StreamCombinators(qw *quicktemplate.Writer, count int) {
	w := qw.N()
	w.S("// Code generated by cmd/codegen. DO NOT EDIT.\n\n")
	w.S("package reactive\n")

	for n := 1; n <= count; n++ {
		streamComputed(w, n)
		streamEffect(w, n)
	}
}

func streamComputed(w *quicktemplate.QWriter, n int) {
	w.S("\n// Computed")
	w.D(n)
	w.S(" is Computed over ")
	w.D(n)
	w.S(argumentsNoun(n))

	w.S("func Computed")
	w.D(n)
	w.S("[")
	w.S(prefixedStrings("T", n))
	w.S(" any, O comparable](\n")
	w.S("\trs *ReactiveSystem,\n")
	streamArgs(w, n)
	w.S("\tfn func(")
	w.S(prefixedStrings("T", n))
	w.S(") O,\n")
	w.S("\topts ...Option,\n")
	w.S(") *ReadonlySignal[O] {\n")
	w.S("\treturn Computed(rs, func() (O, error) {\n")
	w.S("\t\tvar zero O\n")
	streamReads(w, n, "zero, err")
	w.S("\t\treturn fn(")
	w.S(prefixedStrings("v", n))
	w.S("), nil\n")
	w.S("\t}, opts...)\n")
	w.S("}\n")
}

func streamEffect(w *quicktemplate.QWriter, n int) {
	w.S("\n// Effect")
	w.D(n)
	w.S(" is Effect over ")
	w.D(n)
	w.S(argumentsNoun(n))

	w.S("func Effect")
	w.D(n)
	w.S("[")
	w.S(prefixedStrings("T", n))
	w.S(" any](\n")
	w.S("\trs *ReactiveSystem,\n")
	streamArgs(w, n)
	w.S("\tfn func(")
	w.S(prefixedStrings("T", n))
	w.S(") error,\n")
	w.S("\topts ...Option,\n")
	w.S(") (*EffectRunner, error) {\n")
	w.S("\treturn Effect(rs, func() error {\n")
	streamReads(w, n, "err")
	w.S("\t\treturn fn(")
	w.S(prefixedStrings("v", n))
	w.S(")\n")
	w.S("\t}, opts...)\n")
	w.S("}\n")
}

func argumentsNoun(n int) string {
	if n == 1 {
		return " typed argument.\n"
	}
	return " typed arguments.\n"
}

func streamArgs(w *quicktemplate.QWriter, n int) {
	for i := 0; i < n; i++ {
		w.S("\targ")
		w.D(i)
		w.S(" Readable[T")
		w.D(i)
		w.S("],\n")
	}
}

func streamReads(w *quicktemplate.QWriter, n int, onErr string) {
	for i := 0; i < n; i++ {
		w.S("\t\tv")
		w.D(i)
		w.S(", err := arg")
		w.D(i)
		w.S(".Read()\n")
		w.S("\t\tif err != nil {\n")
		w.S("\t\t\treturn ")
		w.S(onErr)
		w.S("\n")
		w.S("\t\t}\n")
	}
}

func WriteCombinators(qq io.Writer, count int) {
	qw := quicktemplate.AcquireWriter(qq)
	StreamCombinators(qw, count)
	quicktemplate.ReleaseWriter(qw)
}

func CombinatorsGen(count int) string {
	qb := quicktemplate.AcquireByteBuffer()
	WriteCombinators(qb, count)
	qs := string(qb.B)
	quicktemplate.ReleaseByteBuffer(qb)
	return qs
}
