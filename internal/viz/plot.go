package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mdsim/internal/md"
)

// PlotSamples renders the temperature history and the kinetic, potential
// and total energy of a run.
func PlotSamples(samples []md.Sample, width int) string {
	if len(samples) < 2 {
		return "not enough samples to plot\n"
	}
	temps := make([]float64, len(samples))
	ke := make([]float64, len(samples))
	pe := make([]float64, len(samples))
	total := make([]float64, len(samples))
	for i, s := range samples {
		temps[i] = s.Temperature
		ke[i] = s.Kinetic
		pe[i] = s.Potential
		total[i] = s.Total()
	}

	var b strings.Builder
	b.WriteString(asciigraph.Plot(temps,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Caption("temperature (K)"),
	))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.PlotMany([][]float64{ke, pe, total},
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue, asciigraph.Default),
		asciigraph.SeriesLegends("kinetic", "potential", "total"),
		asciigraph.Caption(fmt.Sprintf("energy (kcal/mol), steps %d-%d", samples[0].Step, samples[len(samples)-1].Step)),
	))
	b.WriteString("\n")
	return b.String()
}
