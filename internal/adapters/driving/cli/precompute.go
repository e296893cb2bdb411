package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperstream/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driving"
)

var precomputeCmd = &cobra.Command{
	Use:   "precompute [file-id...]",
	Short: "Compute per-file artifacts in parallel",
	Long: `Decodes every selected file and stores its artifacts: sentences, words,
lemmas, citations and metadata. Files that fail are listed in the report
and do not stop the run. With no file ids the whole canonical file set
is processed.`,
	RunE: runPrecompute,
}

// Flags for the precompute command.
var (
	precomputeKinds   string
	precomputeStore   string
	precomputeOut     string
	precomputeWorkers int
)

func init() {
	flags := precomputeCmd.Flags()
	flags.StringVar(&precomputeKinds, "kinds", "", "comma separated artifact kinds (default all)")
	flags.StringVar(&precomputeStore, "store", "", "artifact store: sqlite or dir")
	flags.StringVar(&precomputeOut, "out", "", "artifact location (default <config dir>/artifacts)")
	flags.IntVarP(&precomputeWorkers, "workers", "w", 0, "files processed concurrently")
	rootCmd.AddCommand(precomputeCmd)
}

func runPrecompute(cmd *cobra.Command, args []string) error {
	if opener == nil {
		return errors.New("precompute service not configured")
	}
	cs, err := corpusSettings(cmd)
	if err != nil {
		return err
	}
	kinds, err := parseKinds(precomputeKinds)
	if err != nil {
		return err
	}

	ps := settingsService.Precompute()
	if cmd.Flags().Changed("store") {
		ps.Store = precomputeStore
	}
	if cmd.Flags().Changed("out") {
		ps.Out = precomputeOut
	}
	if precomputeWorkers < 0 {
		return fmt.Errorf("%w: --workers must be positive", domain.ErrInvalidInput)
	}
	if precomputeWorkers > 0 {
		ps.Workers = precomputeWorkers
	}

	svc, closer, err := opener.OpenPrecompute(cmd.Context(), cs, ps)
	if err != nil {
		return fmt.Errorf("failed to open precompute: %w", err)
	}
	defer closer.Close()

	report, err := svc.Run(cmd.Context(), domain.Select(args), driving.PrecomputeOptions{
		Kinds:         kinds,
		Workers:       ps.Workers,
		ProgressEvery: ps.ProgressEvery,
	})
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("precompute failed: %w", err)
	}
	return nil
}

func parseKinds(value string) ([]domain.ArtifactKind, error) {
	var kinds []domain.ArtifactKind
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind := domain.ArtifactKind(part)
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: unknown artifact kind %q", domain.ErrInvalidInput, part)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func printReport(cmd *cobra.Command, report *domain.PrecomputeReport) {
	s := styles.DefaultStyles()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, s.Table("Precompute",
		s.Row("Run", report.RunID),
		s.Row("Files", report.Files),
		s.Row("Artifacts", report.Artifacts),
		s.Row("Failures", len(report.Failures)),
		s.Row("Elapsed", report.Finished.Sub(report.Started).Round(time.Millisecond)),
	))

	if len(report.Failures) == 0 {
		fmt.Fprintln(out, s.Success.Render("All files processed."))
		return
	}
	fmt.Fprintln(out, s.Warning.Render("Failed files:"))
	for _, f := range report.Failures {
		fmt.Fprintf(out, "  %s %s\n", f.FileID, s.Muted.Render(f.Err.Error()))
	}
}
