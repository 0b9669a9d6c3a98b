package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/propcell/property"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const configKey = "config"

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_dynamic",
		Usage: "Measure layered graphs of bindings with changing dependencies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "YAML file of graph configurations",
				Value: "benchmark_dynamic.yaml",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type results struct {
	sum      int
	count    int64
	duration time.Duration
	stats    property.Stats
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting dynamic graph benchmark, please wait...")
	defer log.Print("Finished dynamic graph benchmark")

	cfgFile, err := loadOptional(cmd.String(configKey))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "evaluations", "title",
	})

	testRepeats := cfgFile.Repeats
	for _, cfg := range cfgFile.Graphs {
		log.Printf("Running '%s' config", cfg.Name)
		counter := new(int64)
		graph := makeGraph(cfg, counter)

		runOnce := func() int {
			return runGraph(graph, cfg.Iterations, cfg.ReadFraction)
		}
		// run once to warm up
		runOnce()

		best := &results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.Name, i+1, testRepeats, (i+1)*100/testRepeats)
			*counter = 0
			before := graph.rs.Stats()
			start := time.Now()
			sum := runOnce()
			duration := time.Since(start)

			if duration < best.duration {
				after := graph.rs.Stats()
				best.duration = duration
				best.sum = sum
				best.count = *counter
				best.stats = property.Stats{
					Evaluations: after.Evaluations - before.Evaluations,
					DirtyMarks:  after.DirtyMarks - before.DirtyMarks,
					Live:        after.Live,
				}
			}
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))

		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.Width, cfg.TotalLayers), // size
			fmt.Sprint(cfg.NSources),                         // nSources
			fmt.Sprint(cfg.ReadFraction),                     // read%
			fmt.Sprint(cfg.StaticFraction),                   // static%
			humanize.Comma(cfg.Iterations),                   // nTimes
			cfg.Name,                                         // test
			fmt.Sprint(best.duration),                        // time
			humanize.Comma(int64(updateRate)),                // updateRate
			humanize.Comma(int64(best.stats.Evaluations)),    // evaluations
			makeTitle(cfg),                                   // title
		})
	}
	table.Render()
	return nil
}

func makeTitle(cfg graphConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.Width, cfg.TotalLayers, cfg.NSources))
	if cfg.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.ReadFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.ReadFraction))
	}
	return sb.String()
}

type graph struct {
	rs      *property.ReactiveSystem
	sources []*property.Property[int]
	layers  [][]*property.Property[int]
}

func makeGraph(cfg graphConfig, counter *int64) *graph {
	rs := property.NewReactiveSystem()
	sources := make([]*property.Property[int], cfg.Width)
	for i := range sources {
		sources[i] = property.New(rs, i)
	}

	random := rand.New(rand.NewSource(0))
	prevRow := sources
	layers := make([][]*property.Property[int], cfg.TotalLayers-1)
	for l := range layers {
		layers[l] = makeRow(rs, prevRow, cfg, counter, random)
		prevRow = layers[l]
	}
	return &graph{rs: rs, sources: sources, layers: layers}
}

func makeRow(rs *property.ReactiveSystem, sources []*property.Property[int], cfg graphConfig, counter *int64, random *rand.Rand) []*property.Property[int] {
	row := make([]*property.Property[int], len(sources))
	for myDex := range sources {
		mySources := make([]*property.Property[int], 0, cfg.NSources)
		for sourceDex := 0; sourceDex < int(cfg.NSources); sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		if random.Float64() < cfg.StaticFraction {
			// static node, always reference sources
			row[myDex] = property.NewBinding(rs, func() int {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += source.Get()
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = property.NewBinding(rs, func() int {
			*counter++
			sum := first.Get()
			if len(tail) == 0 {
				return sum
			}
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)
			for i := 0; i < len(tail); i++ {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += tail[i].Get()
			}
			return sum
		})
	}
	return row
}

// runGraph writes one of the sources and reads some or all of the leaves on
// each iteration, returning the sum of the leaves read.
func runGraph(g *graph, iterations int64, readFraction float64) int {
	random := rand.New(rand.NewSource(0))
	leaves := g.layers[len(g.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < int(iterations); i++ {
		sourceDex := i % len(g.sources)
		g.sources[sourceDex].Set(i + sourceDex)

		for _, leaf := range readLeaves {
			leaf.GetUntracked()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.GetUntracked()
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
