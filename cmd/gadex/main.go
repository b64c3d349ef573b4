// Command gadex computes non-LTE molecular line excitation with an
// escape-probability treatment of radiative trapping. It reads a LAMDA
// molecular data file and an HCL run file describing the physical
// conditions, then prints the line table for a single run and/or sweeps a
// parameter grid with an optional HTML chart.
//
// Usage:
//
//	gadex -f run.hcl [-v]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/lmittmann/tint"

	"github.com/autocorr/gadex/core"
	"github.com/autocorr/gadex/grid"
	"github.com/autocorr/gadex/molfile"
	"github.com/autocorr/gadex/stateq"
)

func main() {
	var (
		path    = flag.String("f", "", "run file (HCL)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *path); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	rf, err := loadRunFile(path)
	if err != nil {
		return err
	}
	geom, err := core.ParseGeometry(rf.Geometry)
	if err != nil {
		return err
	}

	mol, err := molfile.ReadFile(rf.Molfile)
	if err != nil {
		return err
	}
	slog.Info("molecule loaded", "name", mol.Name, "levels", mol.NLevels(), "lines", mol.NLines())

	if rf.Run != nil {
		if err := singleRun(ctx, mol, geom, rf.Run); err != nil {
			return err
		}
	}
	if rf.Sweep != nil {
		if err := sweepRun(ctx, mol, geom, rf.Sweep); err != nil {
			return err
		}
	}

	return nil
}

func singleRun(ctx context.Context, mol *core.Molecule, geom core.Geometry, rb *runBlock) error {
	run, err := core.NewRunDef(mol, core.RunDef{
		Partner: rb.Partner,
		Density: rb.Density,
		Tkin:    rb.Tkin,
		Tbg:     rb.Tbg,
		Cdmol:   rb.Cdmol,
		DeltaV:  rb.DeltaV,
		FreqMin: rb.FreqMin,
		FreqMax: rb.FreqMax,
		Geom:    geom,
	})
	if err != nil {
		return err
	}

	res, err := stateq.Solve(ctx, run)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		slog.Warn(w)
	}
	slog.Info("solve finished", "iterations", res.Iterations, "converged", res.Converged)

	return printLines(os.Stdout, res)
}

func printLines(w io.Writer, res *stateq.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "LINE\tFREQ\tE_UP\tT_EX\tTAU\tT_R\tFLUX\tFLUX\t")
	fmt.Fprintln(tw, "\t(GHz)\t(K)\t(K)\t\t(K)\t(K km/s)\t(erg/cm2/s)\t")
	for _, line := range res.Lines {
		fmt.Fprintf(tw, "%s-%s\t%.4f\t%.1f\t%.3f\t%.3g\t%.4f\t%.4g\t%.4g\t\n",
			line.UpperLabel, line.LowerLabel,
			line.Freq, line.Eup, line.Tex, line.Tau,
			line.TRad, line.FluxKkms, line.FluxCgs)
	}

	return tw.Flush()
}

func sweepRun(ctx context.Context, mol *core.Molecule, geom core.Geometry, sb *sweepBlock) error {
	sweep := &grid.Sweep{
		Mol:     mol,
		Partner: sb.Partner,
		Tbg:     sb.Tbg,
		DeltaV:  sb.DeltaV,
		Geom:    geom,
		Density: sb.Density.axis(),
		Tkin:    sb.Tkin.axis(),
		Cdmol:   sb.Cdmol.axis(),
	}

	points, err := sweep.Run(ctx)
	if err != nil {
		return err
	}
	slog.Info("sweep finished", "points", len(points))

	if sb.Chart == "" {
		return nil
	}
	f, err := os.Create(sb.Chart)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s line %d", mol.Name, sb.Line)
	if err := grid.Chart(f, points, sb.Line, title); err != nil {
		f.Close()
		return err
	}
	slog.Info("chart written", "path", sb.Chart)

	return f.Close()
}
