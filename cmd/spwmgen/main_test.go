package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-spwm/dsp/lut"
	"github.com/cwbudde/algo-spwm/dsp/spwm"
)

func TestRunDefaultTable(t *testing.T) {
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer

	if code := run([]string{"-dir", dir}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, lut.DefaultAssetName))
	if err != nil {
		t.Fatal(err)
	}

	if len(data) != 200 {
		t.Fatalf("asset holds %d bytes, want 200", len(data))
	}

	ticks, err := lut.Decode(data, lut.Uint16)
	if err != nil {
		t.Fatal(err)
	}

	for i, want := range map[int]int{0: 7426, 24: 14395, 75: 5} {
		if ticks[i] != want {
			t.Errorf("ticks[%d] = %d, want %d", i, ticks[i], want)
		}
	}

	if !strings.Contains(stderr.String(), "spwm table written") {
		t.Errorf("missing write log in:\n%s", stderr.String())
	}

	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}
}

func TestRunRejectsNarrowType(t *testing.T) {
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer

	if code := run([]string{"-dir", dir, "-type", "int8"}, &stdout, &stderr); code != exitError {
		t.Fatalf("exit = %d, want %d", code, exitError)
	}

	if !strings.Contains(stderr.String(), "invalid configuration") {
		t.Errorf("stderr does not name the configuration error:\n%s", stderr.String())
	}

	if _, err := os.Stat(filepath.Join(dir, lut.DefaultAssetName)); !os.IsNotExist(err) {
		t.Fatalf("asset exists after failure: %v", err)
	}
}

func TestWriteTableLeavesNoFileOnEncodeFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")
	table := spwm.DutyTable{Ticks: []int{100, 200, 300}, ClockPerSample: 300}

	_, _, err := writeTable(dir, lut.DefaultAssetName, table, lut.Uint8)
	if !errors.Is(err, lut.ErrValueOutOfRange) {
		t.Fatalf("error = %v, want ErrValueOutOfRange", err)
	}

	var rerr *lut.RangeError
	if !errors.As(err, &rerr) || rerr.Index != 2 {
		t.Fatalf("error = %v, want entry 2", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("asset directory touched after encode failure: %v", err)
	}

	path, size, err := writeTable(dir, lut.DefaultAssetName, table, lut.Uint16)
	if err != nil {
		t.Fatal(err)
	}

	if size != 6 || path != filepath.Join(dir, lut.DefaultAssetName) {
		t.Fatalf("writeTable() = (%q, %d)", path, size)
	}
}

func TestRunInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "zero samples", args: []string{"-samples", "0"}, want: exitError},
		{name: "zero freq", args: []string{"-freq", "0"}, want: exitError},
		{name: "clock too low", args: []string{"-clock", "100"}, want: exitError},
		{name: "unknown type", args: []string{"-type", "int64"}, want: exitError},
		{name: "unknown rounding", args: []string{"-rounding", "up"}, want: exitError},
		{name: "unknown window", args: []string{"-report-window", "kaiser"}, want: exitError},
		{name: "unknown flag", args: []string{"-bogus"}, want: exitUsage},
		{name: "extra argument", args: []string{"out.bin"}, want: exitUsage},
		{name: "help", args: []string{"-h"}, want: exitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-dir", t.TempDir()}, tt.args...)

			var stdout, stderr bytes.Buffer

			if got := run(args, &stdout, &stderr); got != tt.want {
				t.Fatalf("exit = %d, want %d, stderr:\n%s", got, tt.want, stderr.String())
			}
		})
	}
}

func TestRunVerifyTraceReport(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "trace.csv")

	var stdout, stderr bytes.Buffer

	code := run([]string{
		"-dir", dir,
		"-name", "small.data",
		"-clock", "6400",
		"-freq", "1",
		"-samples", "64",
		"-type", "uint8",
		"-workers", "4",
		"-verify",
		"-trace", trace,
		"-trace-points", "0",
		"-report",
	}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}

	back, err := lut.ReadFile(filepath.Join(dir, "small.data"), lut.Uint8)
	if err != nil {
		t.Fatal(err)
	}

	if len(back) != 64 {
		t.Fatalf("asset holds %d entries, want 64", len(back))
	}

	csv, err := os.ReadFile(trace)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	if lines[0] != "phase,ideal,level,mean" {
		t.Fatalf("trace header = %q", lines[0])
	}

	if len(lines) != 64*100+1 {
		t.Fatalf("trace rows = %d, want %d", len(lines)-1, 64*100)
	}

	for _, row := range []string{"clock per sample", "RMS (averaged)", "rectangular, 1 periods", "THD (averaged)", "THD (pulse train)"} {
		if !strings.Contains(stdout.String(), row) {
			t.Errorf("report lacks %q:\n%s", row, stdout.String())
		}
	}
}

func TestRunReportWindows(t *testing.T) {
	for _, name := range []string{"hann", "blackman-harris-4t", "flat-top"} {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run([]string{
				"-dir", t.TempDir(),
				"-clock", "6400", "-freq", "1", "-samples", "64",
				"-report", "-report-window", name,
			}, &stdout, &stderr)
			if code != exitOK {
				t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
			}

			report := stdout.String()
			if !strings.Contains(report, "analysis window") || !strings.Contains(report, name) {
				t.Fatalf("report does not name window %q:\n%s", name, report)
			}

			if got := reportValue(report, "fundamental (averaged)"); !strings.HasPrefix(got, "0.99") {
				t.Errorf("averaged fundamental = %q with %s", got, name)
			}
		})
	}
}

func TestRunStrictAcceptsInRangeTable(t *testing.T) {
	// Slot means of sin stay inside [-1, 1], so nothing is ever clamped.
	var stdout, stderr bytes.Buffer

	if code := run([]string{"-dir", t.TempDir(), "-strict", "-rounding", "away"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}
}

func TestRunVerboseLogsDebug(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if code := run([]string{"-dir", t.TempDir(), "-v", "-verify"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}

	if !strings.Contains(stderr.String(), "DEBUG") {
		t.Fatalf("no debug entries in:\n%s", stderr.String())
	}
}

// reportValue returns the value column of the report row named key.
func reportValue(report, key string) string {
	for _, line := range strings.Split(report, "\n") {
		if rest, ok := strings.CutPrefix(line, key); ok && strings.HasPrefix(rest, "  ") {
			return strings.TrimSpace(rest)
		}
	}

	return ""
}
