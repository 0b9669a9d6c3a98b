package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/propcell/animation"
	"github.com/delaneyj/propcell/metrics"
	"github.com/delaneyj/propcell/property"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

const (
	maxWidthKey  = "width"
	maxHeightKey = "height"
	itersKey     = "iters"
	profileKey   = "profile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure propagation through chains of bindings",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  maxWidthKey,
				Usage: "Largest number of parallel chains, stepping by powers of ten",
				Value: 1_000,
			},
			&cli.IntFlag{
				Name:  maxHeightKey,
				Usage: "Largest chain length, stepping by powers of ten",
				Value: 1_000,
			},
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes per graph",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "CPU profile output, empty to disable",
				Value: "default.pgo",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
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

	log.Printf("warming up")

	iters := int(cmd.Int(itersKey))
	sizes := func(max int) []int {
		var out []int
		for n := 1; n <= max; n *= 10 {
			out = append(out, n)
		}
		return out
	}
	ww, hh := sizes(int(cmd.Int(maxWidthKey))), sizes(int(cmd.Int(maxHeightKey)))

	if err := benchmarkPropagate(ww, hh, iters); err != nil {
		return err
	}
	benchmarkAnimations(ww, iters)
	return nil
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
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

func addOne(prev *property.Property[int]) func() int {
	return func() int {
		return prev.Get() + 1
	}
}

// benchmarkPropagate builds w chains of h bindings over one source, each
// chain observed by a tracker, and times a write followed by a frame.
func benchmarkPropagate(ww, hh []int, iters int) error {
	tbl := newTable("Property propagation")
	stats := table.NewWriter()
	stats.SetTitle("Engine counters")
	stats.SetOutputMirror(os.Stdout)
	stats.AppendHeader(table.Row{"benchmark", "metric", "value"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := property.NewReactiveSystem()
			registry := prometheus.NewRegistry()
			collector, err := metrics.New(rs, metrics.WithRegistry(registry))
			if err != nil {
				return err
			}

			src := property.New(rs, 1)
			trackers := make([]*property.Tracker, w)
			leaves := make([]*property.Property[int], w)
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					last = property.NewBinding(rs, addOne(last))
				}
				leaves[i] = last
				trackers[i] = property.NewTracker(rs, nil)
			}

			frame := func() {
				for i, t := range trackers {
					leaf := leaves[i]
					t.EvaluateIfDirty(func() { leaf.Get() })
				}
			}
			frame()

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.GetUntracked() + 1)
				frame()
				tach.AddTime(time.Since(start))
			}

			name := fmt.Sprintf("propagate: %d * %d", w, h)
			appendCalc(tbl, name, tach)

			collector.Observe()
			families, err := registry.Gather()
			if err != nil {
				return err
			}
			for _, mf := range families {
				for _, m := range mf.GetMetric() {
					v := m.GetCounter().GetValue()
					if g := m.GetGauge(); g != nil {
						v = g.GetValue()
					}
					stats.AppendRow(table.Row{name, mf.GetName(), v})
				}
			}
		}
	}

	tbl.Render()
	stats.Render()
	return nil
}

// benchmarkAnimations times frames of w properties animating at once.
func benchmarkAnimations(ww []int, iters int) {
	tbl := newTable("Animated properties")

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		rs := property.NewReactiveSystem()
		driver := rs.AnimationDriver()
		target := property.New(rs, 0.0)
		props := make([]*property.Property[float64], w)
		for i := range props {
			props[i] = property.New(rs, 0.0)
			props[i].SetAnimatedBinding(
				target.Get,
				animation.Animate(time.Duration(iters)*time.Millisecond, animation.EaseInOut),
				property.LerpFloat64,
			)
		}
		target.Set(1)

		for i := 0; i < iters; i++ {
			start := time.Now()
			driver.UpdateAnimations(animation.Instant(i))
			for _, p := range props {
				p.Get()
			}
			tach.AddTime(time.Since(start))
		}

		appendCalc(tbl, fmt.Sprintf("animate: %d", w), tach)
	}

	tbl.Render()
}
