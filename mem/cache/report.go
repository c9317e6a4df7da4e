package cache

import (
	"fmt"
	"io"
	"strings"
)

// FormatHitRate prints a hit rate with four decimals, or "undefined" when
// there is no access.
func FormatHitRate(rate float64, err error) string {
	if err != nil {
		return "undefined"
	}

	return fmt.Sprintf("%.4f", rate)
}

// WriteReport prints the statistics block followed by a per-kind and
// per-bank breakdown.
func WriteReport(w io.Writer, c *Comp) error {
	stats := c.Statistics()
	spec := c.Spec()

	b := new(strings.Builder)

	fmt.Fprintf(b, "\nCache Statistics\n")
	fmt.Fprintf(b, "-----------------\n\n")
	fmt.Fprintf(b, "Accesses: %d\n", stats.Accesses)
	fmt.Fprintf(b, "Hits:     %d\n", stats.Hits)
	fmt.Fprintf(b, "Hit Rate: %s\n", FormatHitRate(stats.HitRate()))

	fmt.Fprintf(b, "\nConfiguration: %d bytes, %s, %s\n",
		spec.TotalByteSize, spec.Mapping, spec.Organization)
	fmt.Fprintf(b, "Misses:       %d (cold %d, replacement %d)\n",
		stats.Misses(), stats.ColdMisses, stats.ReplacementMisses)

	for _, kind := range []AccessKind{Instruction, Data} {
		k := stats.Kind(kind)
		fmt.Fprintf(b, "%s accesses:   %d, hits %d, hit rate %s\n",
			kind, k.Accesses, k.Hits, FormatHitRate(k.HitRate()))
	}

	for _, info := range c.Banks() {
		fmt.Fprintf(b, "%s: %d/%d blocks valid\n",
			info.Name, info.Occupancy, info.NumBlocks)
	}

	_, err := io.WriteString(w, b.String())

	return err
}
