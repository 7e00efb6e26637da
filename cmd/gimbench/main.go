package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/b97tsk/gimgen"
	"github.com/b97tsk/gimgen/funcs"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-metrics"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	iterationsKey = "iterations"
	widthKey      = "width"
	deferredKey   = "deferred"
	metricsKey    = "metrics"
	verboseKey    = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "gimbench",
		Usage: "Measure how fast coroutines suspend and resume",
		Commands: []*cli.Command{
			{
				Name:   "drive",
				Usage:  "Resume a coroutine awaiting a manual signal",
				Flags:  commonFlags(),
				Action: drive,
			},
			{
				Name:  "race",
				Usage: "Resume a coroutine awaiting the first of many manual signals",
				Flags: append(commonFlags(), &cli.IntFlag{
					Name:  widthKey,
					Usage: "Number of signals in each race",
					Value: 8,
				}),
				Action: race,
			},
			{
				Name:   "debounce",
				Usage:  "Call a debounced function on a manual clock",
				Flags:  commonFlags(),
				Action: debounce,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  iterationsKey,
			Usage: "Number of resumptions to measure",
			Value: 10_000,
		},
		&cli.BoolFlag{
			Name:  deferredKey,
			Usage: "Defer resumptions to an executor instead of running them synchronously",
		},
		&cli.BoolFlag{
			Name:  metricsKey,
			Usage: "Collect coroutine metrics in memory and print them",
		},
		&cli.BoolFlag{
			Name:  verboseKey,
			Usage: "Log coroutine state transitions",
		},
	}
}

var sink *metrics.InmemSink

func setup(cmd *cli.Command) {
	if cmd.Bool(verboseKey) {
		gimgen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if cmd.Bool(metricsKey) {
		sink = metrics.NewInmemSink(time.Hour, time.Hour)
		gimgen.SetMetricSink(sink)
	} else {
		gimgen.SetMetricSink(&metrics.BlackholeSink{})
	}
	if cmd.Bool(deferredKey) {
		var e gimgen.Executor
		e.Autorun(e.Run)
		gimgen.ChangeRunStrategy(e.Spawn)
	}
}

type result struct {
	title string
	iters int
	tach  *tachymeter.Tachymeter
	extra table.Row
}

func render(r result, extraHeader table.Row) {
	tbl := table.NewWriter()
	tbl.SetTitle(r.title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(append(table.Row{"iterations", "avg", "min", "p75", "p99", "max"}, extraHeader...))
	calc := r.tach.Calc()
	tbl.AppendRow(append(table.Row{
		humanize.Comma(int64(r.iters)),
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
	}, r.extra...))
	tbl.Render()
	renderMetrics()
}

func renderMetrics() {
	if sink == nil {
		return
	}

	tbl := table.NewWriter()
	tbl.SetTitle("Metrics")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"counter", "count"})

	for _, interval := range sink.Data() {
		names := make([]string, 0, len(interval.Counters))
		for name := range interval.Counters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			tbl.AppendRow(table.Row{name, humanize.Comma(int64(interval.Counters[name].Count))})
		}
	}

	tbl.Render()
}

func drive(ctx context.Context, cmd *cli.Command) error {
	setup(cmd)

	iters := int(cmd.Int(iterationsKey))
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	sig := gimgen.NewManualSignal()
	received := 0

	co := gimgen.RunWithOptions(func(co *gimgen.Coroutine) gimgen.Step {
		if co.Received() != nil {
			received++
		}
		return co.Await(sig)
	}, gimgen.WithName("drive"))

	for i := 0; i < iters; i++ {
		start := time.Now()
		sig.Trigger(i)
		tach.AddTime(time.Since(start))
	}

	if received != iters {
		return fmt.Errorf("drive: received %d of %d resumptions (state %v)", received, iters, co.State())
	}

	render(result{title: "Drive", iters: iters, tach: tach}, nil)
	return nil
}

func race(ctx context.Context, cmd *cli.Command) error {
	setup(cmd)

	iters := int(cmd.Int(iterationsKey))
	width := int(cmd.Int(widthKey))
	if width < 1 {
		return fmt.Errorf("race: width must be positive, got %d", width)
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	signals := make([]gimgen.Signal, width)
	manuals := make([]*gimgen.ManualSignal, width)
	for i := range signals {
		manuals[i] = gimgen.NewManualSignal()
		signals[i] = manuals[i]
	}

	wins := make(map[gimgen.Signal]int, width)

	gimgen.RunWithOptions(gimgen.Sequential(func(await gimgen.AwaitFunc) (any, error) {
		for {
			v, err := await(gimgen.AnySignal(signals...))
			if err != nil {
				return nil, err
			}
			wins[v.(gimgen.AnyResult).Signal]++
		}
	}), gimgen.WithName("race"))

	for i := 0; i < iters; i++ {
		start := time.Now()
		manuals[i%width].Trigger(i)
		tach.AddTime(time.Since(start))
	}

	total := 0
	for _, n := range wins {
		total += n
	}

	render(result{
		title: fmt.Sprintf("Race of %d", width),
		iters: iters,
		tach:  tach,
		extra: table.Row{humanize.Comma(int64(total))},
	}, table.Row{"wins"})
	return nil
}

func debounce(ctx context.Context, cmd *cli.Command) error {
	setup(cmd)

	iters := int(cmd.Int(iterationsKey))
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	clock := gimgen.NewManualClock(time.Unix(0, 0))
	calls := 0
	fn := funcs.Debounce(clock, 10*time.Millisecond, func() { calls++ })

	for i := 0; i < iters; i++ {
		start := time.Now()
		fn()
		// Every fourth gap is long enough to let the call through.
		if i%4 == 3 {
			clock.Advance(20 * time.Millisecond)
		} else {
			clock.Advance(5 * time.Millisecond)
		}
		tach.AddTime(time.Since(start))
	}

	render(result{
		title: "Debounce",
		iters: iters,
		tach:  tach,
		extra: table.Row{humanize.Comma(int64(calls))},
	}, table.Row{"calls"})
	return nil
}
