// Command spwmgen writes a sine-weighted PWM duty table for a hardware timer.
//
// Usage:
//
//	spwmgen [flags]
//
// The table holds one on-time tick count per sample slot of one sine period
// and is written as a flat little-endian array of the selected integer type.
//
// Examples:
//
//	spwmgen -clock 72e6 -freq 50 -samples 100 -type uint16 -dir assets
//	spwmgen -clock 16e6 -freq 400 -samples 64 -type int8 -verify
//	spwmgen -samples 256 -trace spwm.csv -report
//	spwmgen -samples 100 -report -report-window hann
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-spwm/dsp/core"
	"github.com/cwbudde/algo-spwm/dsp/lut"
	"github.com/cwbudde/algo-spwm/dsp/spwm"
	"github.com/cwbudde/algo-spwm/dsp/window"
	"github.com/cwbudde/algo-spwm/measure/thd"
	timestats "github.com/cwbudde/algo-spwm/stats/time"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	reportHarmonics = 20
	// Pulse-train analysis evaluates every harmonic over every tick.
	maxPulseTrainTicks = 1 << 22
)

type options struct {
	clock       float64
	freq        int
	samples     int
	width       string
	rounding    string
	dir         string
	name        string
	workers     int
	strict      bool
	tracePath   string
	tracePoints int
	report      bool
	window      string
	verify      bool
	verbose     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}

	if err != nil {
		return exitUsage
	}

	logger := newLogger(stderr, opts.verbose)
	defer func() { _ = logger.Sync() }()

	err = generate(opts, logger, stdout)
	if err != nil {
		logger.Error("spwm generation failed", errorFields(err)...)
		return exitError
	}

	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("spwmgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&opts.clock, "clock", 72e6, "timer clock frequency in Hz")
	fs.IntVar(&opts.freq, "freq", 50, "output sine frequency in Hz")
	fs.IntVar(&opts.samples, "samples", 100, "table entries per sine period")
	fs.StringVar(&opts.width, "type", "uint16", "element type: int8, uint8, int16, uint16, int32, uint32")
	fs.StringVar(&opts.rounding, "rounding", "even", "tie rounding: even (half-to-even) or away (half away from zero)")
	fs.StringVar(&opts.dir, "dir", "assets", "asset directory")
	fs.StringVar(&opts.name, "name", lut.DefaultAssetName, "asset file name")
	fs.IntVar(&opts.workers, "workers", 1, "goroutines used for slot integration")
	fs.BoolVar(&opts.strict, "strict", false, "fail instead of clamping out-of-range duty values")
	fs.StringVar(&opts.tracePath, "trace", "", "write a phase/ideal/level/mean CSV trace to this path")
	fs.IntVar(&opts.tracePoints, "trace-points", 4096, "maximum trace rows (0 = every tick)")
	fs.BoolVar(&opts.report, "report", false, "print table statistics and harmonic distortion")
	fs.StringVar(&opts.window, "report-window", "rectangular",
		"analysis window for -report: rectangular, hann, hamming, blackman, blackman-harris-4t, flat-top")
	fs.BoolVar(&opts.verify, "verify", false, "re-read the written asset and compare it with the table")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: spwmgen [flags]\n\n")
		fmt.Fprintf(stderr, "Writes a sine-weighted PWM duty table for a hardware timer.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  spwmgen -clock 72e6 -freq 50 -samples 100 -type uint16\n")
		fmt.Fprintf(stderr, "  spwmgen -samples 256 -trace spwm.csv -report\n")
	}

	err := fs.Parse(args)
	if err != nil {
		return options{}, err
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected arguments: %v\n", fs.Args())
		fs.Usage()

		return options{}, errors.New("unexpected arguments")
	}

	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder(encCfg)
	level := zapcore.InfoLevel

	if verbose {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encCfg)
		level = zapcore.DebugLevel
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}

func generate(opts options, logger *zap.Logger, stdout io.Writer) error {
	width, err := lut.ParseWidth(opts.width)
	if err != nil {
		return err
	}

	rounding, err := core.ParseRoundingMode(opts.rounding)
	if err != nil {
		return err
	}

	win, err := window.ParseType(opts.window)
	if err != nil {
		return err
	}

	params := spwm.Params{
		ClockFreq:   opts.clock,
		OutputFreq:  opts.freq,
		SampleCount: opts.samples,
		Width:       width,
	}

	spwmOpts := []spwm.Option{
		spwm.WithLogger(logger),
		spwm.WithRounding(rounding),
		spwm.WithWorkers(opts.workers),
	}
	if opts.strict {
		spwmOpts = append(spwmOpts, spwm.WithStrictRange())
	}

	table, err := spwm.Generate(params, spwmOpts...)
	if err != nil {
		return err
	}

	path, size, err := writeTable(opts.dir, opts.name, table, width)
	if err != nil {
		return err
	}

	logger.Info("spwm table written",
		zap.String("path", path),
		zap.Int("bytes", size),
		zap.Int("samples", table.Len()),
		zap.Int("clock_per_sample", table.ClockPerSample),
		zap.Stringer("type", width),
		zap.Stringer("rounding", rounding),
		zap.Int("clamped", table.Clamped))

	if opts.verify {
		err = verify(path, width, table)
		if err != nil {
			return err
		}

		logger.Debug("asset verified", zap.String("path", path))
	}

	if opts.tracePath != "" {
		err = writeTrace(opts.tracePath, table, opts.tracePoints)
		if err != nil {
			return err
		}

		logger.Info("trace written", zap.String("path", opts.tracePath))
	}

	if opts.report {
		return printReport(stdout, params, table, win)
	}

	return nil
}

// writeTable encodes table before touching the asset directory, so an entry
// that does not fit width leaves no file behind.
func writeTable(dir, name string, table spwm.DutyTable, width lut.Width) (string, int, error) {
	data, err := table.Encode(width)
	if err != nil {
		return "", 0, err
	}

	path, err := lut.WriteFile(dir, name, data)
	if err != nil {
		return "", 0, err
	}

	return path, len(data), nil
}

func verify(path string, width lut.Width, table spwm.DutyTable) error {
	back, err := lut.ReadFile(path, width)
	if err != nil {
		return err
	}

	if !slices.Equal(back, table.Ticks) {
		return fmt.Errorf("verify %s: decoded table differs from generated table", path)
	}

	return nil
}

func writeTrace(path string, table spwm.DutyTable, points int) error {
	var buf bytes.Buffer

	err := spwm.Trace(table, points).WriteCSV(&buf)
	if err != nil {
		return err
	}

	err = renameio.WriteFile(path, buf.Bytes(), 0o644)
	if err != nil {
		return fmt.Errorf("write trace %s: %w", path, err)
	}

	return nil
}

func printReport(w io.Writer, p spwm.Params, table spwm.DutyTable, win window.Type) error {
	ticks := timestats.Calculate(timestats.Ints(table.Ticks))
	duty := timestats.DC(table.Fractions())
	averaged := spwm.Averaged(table)

	analyzer := thd.NewCalculator(thd.Config{MaxHarmonics: reportHarmonics, WindowType: win})
	avg := analyzer.AnalyzePeriod(averaged)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := [][2]string{
		{"clock", fmt.Sprintf("%g Hz", p.ClockFreq)},
		{"output", fmt.Sprintf("%d Hz", p.OutputFreq)},
		{"samples", fmt.Sprintf("%d", table.Len())},
		{"clock per sample", fmt.Sprintf("%d", table.ClockPerSample)},
		{"type", p.Width.String()},
		{"ticks min", fmt.Sprintf("%g @ %d", ticks.Min, ticks.MinPos)},
		{"ticks max", fmt.Sprintf("%g @ %d", ticks.Max, ticks.MaxPos)},
		{"mean duty", fmt.Sprintf("%.6f", duty)},
		{"clamped", fmt.Sprintf("%d", table.Clamped)},
		{"RMS (averaged)", fmt.Sprintf("%.6f", timestats.RMS(averaged))},
		{"analysis window", fmt.Sprintf("%s, %d periods", win, thd.MinCycles(win))},
		{"fundamental (averaged)", fmt.Sprintf("%.6f", avg.FundamentalLevel)},
		{"THD (averaged)", fmt.Sprintf("%.6f%% (%.2f dB)", avg.THD*100, avg.THD_dB)},
		{"THD+N (averaged)", fmt.Sprintf("%.6f%% (%.2f dB)", avg.THDN*100, avg.THDN_dB)},
	}

	if total := table.Len() * table.ClockPerSample * thd.MinCycles(win); total <= maxPulseTrainTicks {
		levels := spwm.Reconstruct(table)

		signal := make([]float64, len(levels))
		for i, l := range levels {
			signal[i] = float64(l)
		}

		pulse := analyzer.AnalyzePeriod(signal)
		rows = append(rows,
			[2]string{"fundamental (pulse train)", fmt.Sprintf("%.6f", pulse.FundamentalLevel)},
			[2]string{"THD (pulse train)", fmt.Sprintf("%.6f%% (%.2f dB, %s)", pulse.THD*100, pulse.THD_dB, pulse.Method)})
	} else {
		rows = append(rows, [2]string{"THD (pulse train)", fmt.Sprintf("skipped, %d ticks", total)})
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1]); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return tw.Flush()
}

// errorFields attaches the context carried by typed errors to the log entry.
func errorFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}

	var (
		cerr *spwm.ConfigError
		ierr *spwm.InstabilityError
		rerr *lut.RangeError
	)

	switch {
	case errors.As(err, &cerr):
		fields = append(fields,
			zap.Float64("clock_hz", cerr.ClockFreq),
			zap.Int("output_hz", cerr.OutputFreq),
			zap.Int("samples", cerr.SampleCount))
	case errors.As(err, &ierr):
		fields = append(fields,
			zap.Int("index", ierr.Index),
			zap.Float64("phase_start", ierr.Start),
			zap.Float64("phase_end", ierr.End))
	case errors.As(err, &rerr):
		fields = append(fields,
			zap.Int("index", rerr.Index),
			zap.Int("value", rerr.Value),
			zap.Stringer("type", rerr.Width))
	}

	return fields
}
