package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/reactor/inspect"
	"github.com/delaneyj/reactor/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "profile"
	dumpKey    = "dump"
	batchKey   = "batch"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure write propagation through w chains of h computeds",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Timed writes per graph",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file, empty to disable",
				Value: "default.pgo",
			},
			&cli.BoolFlag{
				Name:  dumpKey,
				Usage: "Log a summary and fingerprint of every graph built",
			},
			&cli.UintFlag{
				Name:  batchKey,
				Usage: "Also time this many writes grouped in one batch, 0 to skip",
				Value: 10,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100, 1_000}
)

func addOne(oldValue int) int {
	return oldValue + 1
}

func pass(int) error {
	return nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	b := &bench{
		iters: int(cmd.Uint(itersKey)),
		batch: int(cmd.Uint(batchKey)),
		dump:  cmd.Bool(dumpKey),
	}
	if b.iters < 1 {
		return fmt.Errorf("%s must be at least 1", itersKey)
	}

	log.Printf("warming up")
	if err := b.propagate(false); err != nil {
		return err
	}

	if err := b.propagate(true); err != nil {
		return err
	}
	if b.batch > 0 {
		return b.batched()
	}
	return nil
}

type bench struct {
	iters int
	batch int
	dump  bool
}

// build wires w chains of h computeds onto one source, each ending in an effect.
func (b *bench) build(w, h int) (*reactive.ReactiveSystem, *reactive.WriteableSignal[int], error) {
	rs := reactive.CreateReactiveSystem()
	src := reactive.Signal(rs, 1, reactive.WithName("src"))
	for i := 0; i < w; i++ {
		var last reactive.Readable[int] = src
		for j := 0; j < h; j++ {
			last = reactive.Computed1(rs, last, addOne)
		}
		if _, err := reactive.Effect1(rs, last, pass); err != nil {
			return nil, nil, err
		}
	}

	if b.dump {
		snap := reactive.Snapshot(src)
		log.Printf("graph %d * %d: %s, fingerprint %016x", w, h, inspect.Summary(snap), inspect.Fingerprint(snap))
		if len(snap.Nodes) <= 32 {
			inspect.WriteTable(os.Stderr, fmt.Sprintf("%d * %d", w, h), snap)
		}
	}
	return rs, src, nil
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRow(table.Row{
		name,
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
	})
}

func (b *bench) propagate(shouldRender bool) error {
	tbl := newTable("reactive: propagate")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: b.iters})

			_, src, err := b.build(w, h)
			if err != nil {
				return err
			}

			for i := 0; i < b.iters; i++ {
				start := time.Now()
				if err := src.SetValue(src.Peek() + 1); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}

func (b *bench) batched() error {
	tbl := newTable(fmt.Sprintf("reactive: %d writes per batch", b.batch))

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: b.iters})

			rs, src, err := b.build(w, h)
			if err != nil {
				return err
			}

			for i := 0; i < b.iters; i++ {
				start := time.Now()
				err := rs.Batch(func() error {
					for j := 0; j < b.batch; j++ {
						if err := src.SetValue(src.Peek() + 1); err != nil {
							return err
						}
					}
					return nil
				})
				if err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, fmt.Sprintf("batch: %d * %d", w, h), tach)
		}
	}

	tbl.Render()
	return nil
}
