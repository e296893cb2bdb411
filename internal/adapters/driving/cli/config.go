package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persisted settings",
	Long: `View and change the settings stored in config.toml.
Command line flags override these values for a single run.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored and effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Validate and store one setting",
	Long: `Validates and stores one setting. Lists are comma separated.

Example:
  paperstream config set corpus.root /data/cord19
  paperstream config set policy.prefer b
  paperstream config set pipeline.filters lowercase,stem`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	out := cmd.OutOrStdout()
	values := settingsService.Values()
	fmt.Fprintln(out, "[Stored]")
	if len(values) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, key := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(out, "  %s = %v\n", key, values[key])
	}
	fmt.Fprintln(out)

	cs, err := settingsService.Corpus()
	if err != nil {
		return fmt.Errorf("invalid corpus settings: %w", err)
	}
	ps := settingsService.Precompute()
	pipeline := settingsService.Pipeline()

	root := cs.Root
	if root == "" {
		root = "(not set)"
	}
	fmt.Fprintln(out, "[Effective]")
	fmt.Fprintf(out, "  Root: %s\n", root)
	fmt.Fprintf(out, "  Metadata: %s\n", cs.Metadata)
	fmt.Fprintf(out, "  Columns: %s, %s, %s\n", cs.Columns.ID, cs.Columns.KindA, cs.Columns.KindB)
	fmt.Fprintf(out, "  Parse dirs: %v\n", cs.ParseDirs)
	fmt.Fprintf(out, "  Content: title=%t abstract=%t body=%t\n",
		cs.Content.IncludeTitle, cs.Content.IncludeAbstract, cs.Content.IncludeBody)
	fmt.Fprintf(out, "  Prefer: %s (on neither: %s)\n", cs.Policy.Preference(), cs.Policy.Neither())
	fmt.Fprintf(out, "  Tokenizers: word=%s sentence=%s\n", cs.WordTokenizer, cs.SentenceTokenizer)
	fmt.Fprintf(out, "  Filters: %v\n", pipeline.Filters)
	fmt.Fprintf(out, "  Precompute: store=%s workers=%d progress_every=%d\n",
		ps.Store, ps.Workers, ps.ProgressEvery)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s set.\n", args[0])
	return nil
}
