package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/delaneyj/reactor/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	repeatsKey = "repeats"
	onlyKey    = "only"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_reactively",
		Usage: "Run the layered dynamic graph suite against the reactive package",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Timed runs per config, the best one is reported",
				Value: 5,
			},
			&cli.StringSliceFlag{
				Name:  onlyKey,
				Usage: "Only run the named configs",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

var perfTestCfgs = []benchmarkTestConfig{
	{
		name:           "simple component",
		width:          10,
		staticFraction: 1,
		nSources:       2,
		totalLayers:    5,
		readFraction:   0.2,
		iterations:     600000,
	},
	{
		name:           "dynamic component",
		width:          10,
		totalLayers:    10,
		staticFraction: 0.75,
		nSources:       6,
		readFraction:   0.2,
		iterations:     15000,
	},
	{
		name:           "large web app",
		width:          1000,
		totalLayers:    12,
		staticFraction: 0.95,
		nSources:       4,
		readFraction:   1,
		iterations:     7000,
	},
	{
		name:           "wide dense",
		width:          1000,
		totalLayers:    5,
		staticFraction: 1,
		nSources:       25,
		readFraction:   1,
		iterations:     3000,
	},
	{
		name:           "deep",
		width:          5,
		totalLayers:    500,
		staticFraction: 1,
		nSources:       3,
		readFraction:   1,
		iterations:     500,
	},
	{
		name:           "very dynamic",
		width:          100,
		totalLayers:    15,
		staticFraction: 0.5,
		nSources:       6,
		readFraction:   1,
		iterations:     2000,
	},
}

type results struct {
	sum      int
	count    int64
	duration time.Duration
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting reactively benchmark, please wait...")
	defer log.Print("Finished reactively benchmark")

	testRepeats := int(cmd.Uint(repeatsKey))
	if testRepeats < 1 {
		return fmt.Errorf("%s must be at least 1", repeatsKey)
	}
	only := cmd.StringSlice(onlyKey)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "sum",
		"updateRate", "title",
	})

	for _, cfg := range perfTestCfgs {
		if len(only) > 0 && !slices.Contains(only, cfg.name) {
			continue
		}
		log.Printf("Running '%s' config", cfg.name)

		counter := new(int64)
		graph, err := benchmarkMakeGraph(&benchmarkMakeGraphConfig{
			counter:        counter,
			width:          cfg.width,
			totalLayers:    cfg.totalLayers,
			nSources:       cfg.nSources,
			staticFraction: cfg.staticFraction,
		})
		if err != nil {
			return fmt.Errorf("build '%s': %w", cfg.name, err)
		}

		runOnce := func() (int, error) {
			return benchmarkRunGraph(graph, cfg.iterations, cfg.readFraction)
		}
		// warm up
		if _, err := runOnce(); err != nil {
			return fmt.Errorf("run '%s': %w", cfg.name, err)
		}

		best := &results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i+1, testRepeats, (i+1)*100/testRepeats)
			*counter = 0
			start := time.Now()
			sum, err := runOnce()
			if err != nil {
				return fmt.Errorf("run '%s': %w", cfg.name, err)
			}
			duration := time.Since(start)

			if duration < best.duration {
				best.duration = duration
				best.sum = sum
				best.count = *counter
			}
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))

		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(best.sum)),
			humanize.Comma(int64(updateRate)),
			cfg.title(),
		})
	}
	table.Render()
	return nil
}

type benchmarkTestConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int64   // width of dependency graph to construct
	totalLayers    int64   // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes that always read all of their sources
	nSources       int64   // number of sources each node reads from the layer above
	readFraction   float64 // fraction of leaves read back in each iteration
	iterations     int64
}

func (cfg benchmarkTestConfig) title() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type benchmarkGraph struct {
	rs      *reactive.ReactiveSystem
	sources []*reactive.WriteableSignal[int]
	layers  [][]*reactive.ReadonlySignal[int]
}

type benchmarkMakeGraphConfig struct {
	counter                      *int64
	width, totalLayers, nSources int64
	staticFraction               float64
}

func benchmarkMakeGraph(cfg *benchmarkMakeGraphConfig) (*benchmarkGraph, error) {
	if cfg.totalLayers < 2 {
		return nil, fmt.Errorf("need at least 2 layers, got %d", cfg.totalLayers)
	}

	rs := reactive.CreateReactiveSystem()
	sources := make([]*reactive.WriteableSignal[int], cfg.width)
	prevRow := make([]reactive.Readable[int], cfg.width)
	for i := range sources {
		sources[i] = reactive.Signal(rs, i)
		prevRow[i] = sources[i]
	}

	random := rand.New(rand.NewSource(0))
	layers := make([][]*reactive.ReadonlySignal[int], cfg.totalLayers-1)
	for l := range layers {
		layers[l] = makeBenchmarkRow(&benchmarkRowConfig{
			rs:             rs,
			sources:        prevRow,
			counter:        cfg.counter,
			staticFraction: cfg.staticFraction,
			nSources:       cfg.nSources,
			rand:           random,
		})
		prevRow = make([]reactive.Readable[int], len(layers[l]))
		for i, c := range layers[l] {
			prevRow[i] = c
		}
	}

	return &benchmarkGraph{rs: rs, sources: sources, layers: layers}, nil
}

// benchmarkRunGraph writes one source per iteration and reads back a random
// subset of the leaves, returning the sum of the leaves read at the end.
func benchmarkRunGraph(graph *benchmarkGraph, iterations int64, readFraction float64) (int, error) {
	random := rand.New(rand.NewSource(0))
	leaves := graph.layers[len(graph.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	readLeaves := benchmarkRemoveElems(leaves, skipCount, random)

	for i := 0; i < int(iterations); i++ {
		err := graph.rs.Batch(func() error {
			sourceDex := i % len(graph.sources)
			return graph.sources[sourceDex].SetValue(i + sourceDex)
		})
		if err != nil {
			return 0, err
		}

		for _, leaf := range readLeaves {
			if _, err := leaf.Value(); err != nil {
				return 0, err
			}
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		v, err := leaf.Value()
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func benchmarkRemoveElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}

type benchmarkRowConfig struct {
	rs             *reactive.ReactiveSystem
	sources        []reactive.Readable[int]
	counter        *int64
	staticFraction float64
	nSources       int64
	rand           *rand.Rand
}

func makeBenchmarkRow(cfg *benchmarkRowConfig) []*reactive.ReadonlySignal[int] {
	row := make([]*reactive.ReadonlySignal[int], len(cfg.sources))

	for myDex := range cfg.sources {
		mySources := make([]reactive.Readable[int], 0, cfg.nSources)
		for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
			mySources = append(mySources, cfg.sources[(myDex+sourceDex)%len(cfg.sources)])
		}

		if cfg.rand.Float64() < cfg.staticFraction {
			row[myDex] = reactive.Computed(cfg.rs, func() (int, error) {
				*cfg.counter++
				sum := 0
				for _, source := range mySources {
					v, err := source.Read()
					if err != nil {
						return 0, err
					}
					sum += v
				}
				return sum, nil
			})
			continue
		}

		// dynamic node, skips one of its tail sources whenever the head is odd
		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = reactive.Computed(cfg.rs, func() (int, error) {
			*cfg.counter++
			sum, err := first.Read()
			if err != nil {
				return 0, err
			}
			if len(tail) == 0 {
				return sum, nil
			}
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)

			for i, source := range tail {
				if shouldDrop && i == dropDex {
					continue
				}
				v, err := source.Read()
				if err != nil {
					return 0, err
				}
				sum += v
			}
			return sum, nil
		})
	}

	return row
}
