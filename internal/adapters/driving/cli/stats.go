package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperstream/internal/adapters/driving/cli/styles"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog and parse directory statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	corpus, err := openCorpus(cmd)
	if err != nil {
		return err
	}

	stats, err := corpus.Statistics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	s := styles.DefaultStyles()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, s.Table("Catalog",
		s.Row("Rows", stats.Rows),
		s.Row("Unique identities", stats.UniqueIdentities),
		s.Row("Canonical files", stats.CanonicalFiles),
	))
	fmt.Fprintln(out, s.Table("Parse kinds",
		s.Row("Rows with kind A", stats.RowsWithKindA),
		s.Row("Rows with kind B", stats.RowsWithKindB),
		s.Row("Kind A only", stats.RowsKindAOnly),
		s.Row("Kind B only", stats.RowsKindBOnly),
		s.Row("Both kinds", stats.RowsWithBoth),
		s.Row("Neither kind", stats.RowsNeither),
		s.Row("Kind A fragments", stats.KindAFiles),
	))

	if len(stats.ParseDirs) == 0 {
		return nil
	}
	var rows []string
	for _, dir := range slices.Sorted(maps.Keys(stats.ParseDirs)) {
		rows = append(rows, s.Row(dir, stats.ParseDirs[dir]))
	}
	fmt.Fprintln(out, s.Table("Parse directories", rows...))
	return nil
}
