// Package cli provides the paperstream command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driving"
	"github.com/custodia-labs/paperstream/internal/logger"
)

// version is set at build time.
var version = "dev"

// Opener builds the corpus-bound services from effective settings.
// Corpus services depend on flags, so they are opened per command.
type Opener interface {
	// OpenCorpus loads and resolves the corpus described by settings.
	OpenCorpus(ctx context.Context, corpus domain.CorpusSettings) (driving.CorpusService, error)

	// OpenPrecompute opens a corpus together with its artifact store.
	// The returned closer releases the store.
	OpenPrecompute(
		ctx context.Context,
		corpus domain.CorpusSettings,
		precompute domain.PrecomputeSettings,
	) (driving.PrecomputeService, io.Closer, error)
}

// Setup builds the settings service and the opener once flags are parsed.
type Setup func(configDir string) (driving.SettingsService, Opener, error)

var (
	settingsService driving.SettingsService
	opener          Opener
	setup           Setup
)

// Persistent flags.
var (
	configDir         string
	flagRoot          string
	flagMetadata      string
	flagPrefer        string
	flagOnNeither     string
	flagWordTokenizer string
	flagSentTokenizer string
	flagNoTitle       bool
	flagNoAbstract    bool
	flagNoBody        bool
	verbose           bool
)

var rootCmd = &cobra.Command{
	Use:   "paperstream",
	Short: "Stream text out of CORD-19 style paper corpora",
	Long: `Paperstream reads a metadata catalog and its JSON parse files, picks one
canonical parse per paper, and streams raw text, words, sentences or
paragraphs. It can also precompute per-file artifacts in parallel.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if setup == nil || settingsService != nil {
			return nil
		}
		settings, o, err := setup(configDir)
		if err != nil {
			return fmt.Errorf("failed to initialise: %w", err)
		}
		settingsService, opener = settings, o
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config", "", "config directory (default ~/.paperstream)")
	flags.StringVar(&flagRoot, "root", "", "corpus root directory or URL")
	flags.StringVar(&flagMetadata, "metadata", "", "catalog path relative to the root")
	flags.StringVar(&flagPrefer, "prefer", "", "preferred parse kind: a, b or none")
	flags.StringVar(&flagOnNeither, "on-neither", "", "with no preference: exclude or include_all")
	flags.StringVar(&flagWordTokenizer, "word-tokenizer", "", "word tokenizer: wordpunct or uax29")
	flags.StringVar(&flagSentTokenizer, "sentence-tokenizer", "", "sentence tokenizer: uax29 or none")
	flags.BoolVar(&flagNoTitle, "no-title", false, "skip titles")
	flags.BoolVar(&flagNoAbstract, "no-abstract", false, "skip abstracts")
	flags.BoolVar(&flagNoBody, "no-body", false, "skip body text")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log catalog, resolution and progress details")
}

// Execute runs the root command.
func Execute(ctx context.Context, s Setup) error {
	setup = s
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// corpusSettings returns the configured corpus settings with flag overrides.
func corpusSettings(cmd *cobra.Command) (domain.CorpusSettings, error) {
	if settingsService == nil {
		return domain.CorpusSettings{}, errors.New("settings service not configured")
	}
	cs, err := settingsService.Corpus()
	if err != nil {
		return cs, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cs.Root = flagRoot
	}
	if flags.Changed("metadata") {
		cs.Metadata = flagMetadata
	}
	if flags.Changed("word-tokenizer") {
		cs.WordTokenizer = flagWordTokenizer
	}
	if flags.Changed("sentence-tokenizer") {
		cs.SentenceTokenizer = flagSentTokenizer
	}
	if flags.Changed("prefer") || flags.Changed("on-neither") {
		prefer, neither := cs.Policy.Preference(), cs.Policy.Neither()
		if flags.Changed("prefer") {
			prefer = flagPrefer
		}
		if flags.Changed("on-neither") {
			neither = domain.NeitherMode(flagOnNeither)
		}
		if cs.Policy, err = domain.ParsePreference(prefer, neither); err != nil {
			return cs, err
		}
	}
	if flagNoTitle {
		cs.Content.IncludeTitle = false
	}
	if flagNoAbstract {
		cs.Content.IncludeAbstract = false
	}
	if flagNoBody {
		cs.Content.IncludeBody = false
	}

	if cs.Root == "" {
		return cs, fmt.Errorf("%w: corpus root not set, use --root or 'paperstream config set corpus.root <path>'",
			domain.ErrInvalidInput)
	}
	return cs, nil
}

// openCorpus opens the corpus for a command.
func openCorpus(cmd *cobra.Command) (driving.CorpusService, error) {
	if opener == nil {
		return nil, errors.New("corpus service not configured")
	}
	cs, err := corpusSettings(cmd)
	if err != nil {
		return nil, err
	}
	corpus, err := opener.OpenCorpus(cmd.Context(), cs)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	return corpus, nil
}
