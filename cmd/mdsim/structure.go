package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/mdsim/internal/lattice"
	"github.com/san-kum/mdsim/internal/liquid"
	"github.com/san-kum/mdsim/internal/rng"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

func newLatticeCmd() *cobra.Command {
	var (
		length             float64
		b, c               float64
		alpha, beta, gamma float64
		cells              []int
		asCSV              bool
	)
	cmd := &cobra.Command{
		Use:       "lattice [cubic|bcc|fcc]",
		Short:     "generate a crystal lattice",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"cubic", "bcc", "fcc"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := lattice.ParseKind(args[0])
			if err != nil {
				return err
			}
			if len(cells) != 3 {
				return fmt.Errorf("--cells needs 3 counts, got %v", cells)
			}
			g := lattice.Geometry{
				A: length, B: length, C: length,
				Alpha: degrees(alpha), Beta: degrees(beta), Gamma: degrees(gamma),
			}
			if cmd.Flags().Changed("b") {
				g.B = b
			}
			if cmd.Flags().Changed("c") {
				g.C = c
			}
			l, err := lattice.Generate(kind, g, lattice.Cells{A: cells[0], B: cells[1], C: cells[2]})
			if err != nil {
				return err
			}
			if asCSV {
				return writeSites(l)
			}

			fmt.Printf("lattice: %s %dx%dx%d\n", l.Kind, cells[0], cells[1], cells[2])
			fmt.Printf("sites: %d (corner %d, center %d, face %d)\n",
				l.Len(), l.Count(lattice.Corner), l.Count(lattice.Center), l.Count(lattice.Face))
			fmt.Printf("bounds: %.4f %.4f %.4f A\n", l.Bounds.X, l.Bounds.Y, l.Bounds.Z)
			fmt.Printf("density: %.6g sites/A^3\n", l.Density())
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&length, "length", 5.26, "cell edge length in A")
	f.Float64Var(&b, "b", 0, "second cell edge in A (default --length)")
	f.Float64Var(&c, "c", 0, "third cell edge in A (default --length)")
	f.Float64Var(&alpha, "alpha", 90, "angle between b and c in degrees")
	f.Float64Var(&beta, "beta", 90, "angle between a and c in degrees")
	f.Float64Var(&gamma, "gamma", 90, "angle between a and b in degrees")
	f.IntSliceVar(&cells, "cells", []int{3, 3, 3}, "cell counts a,b,c")
	f.BoolVar(&asCSV, "csv", false, "print sites as csv")
	return cmd
}

func degrees(d float64) float64 { return d * math.Pi / 180 }

func writeSites(l *lattice.Lattice) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"x", "y", "z", "role"}); err != nil {
		return err
	}
	for _, s := range l.Sites {
		row := []string{
			strconv.FormatFloat(s.Position.X, 'f', 6, 64),
			strconv.FormatFloat(s.Position.Y, 'f', 6, 64),
			strconv.FormatFloat(s.Position.Z, 'f', 6, 64),
			s.Role.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func newLiquidCmd() *cobra.Command {
	var (
		density, mass float64
		box           []float64
		liquidSeed    int64
	)
	cmd := &cobra.Command{
		Use:   "liquid",
		Short: "pack a liquid at a target density",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(box) != 3 {
				return fmt.Errorf("--box needs 3 lengths, got %v", box)
			}
			nominal := r3.Vec{X: box[0], Y: box[1], Z: box[2]}
			l, err := liquid.New(density, mass, nominal, rng.New(liquidSeed).ForSubsystem(rng.SubsystemLiquid))
			if err != nil {
				return err
			}
			d := l.PairwiseDistances()
			closest := math.Inf(1)
			for _, r := range d {
				closest = math.Min(closest, r)
			}

			fmt.Printf("particles: %d\n", l.Len())
			fmt.Printf("boundary: %.4f %.4f %.4f A\n", l.Boundary.X, l.Boundary.Y, l.Boundary.Z)
			fmt.Printf("volume: %.4f A^3\n", l.Volume())
			if len(d) > 0 {
				fmt.Printf("closest pair: %.4f A\n", closest)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&density, "density", 1.0, "density in g/ml")
	f.Float64Var(&mass, "mass", 18.0, "molar mass in g/mol")
	f.Float64SliceVar(&box, "box", []float64{20, 20, 20}, "nominal box lengths x,y,z in A")
	f.Int64Var(&liquidSeed, "seed", 0, "random seed")
	return cmd
}
