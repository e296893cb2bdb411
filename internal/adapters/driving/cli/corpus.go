package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/logger"
)

var fileidsCmd = &cobra.Command{
	Use:   "fileids",
	Short: "List the canonical file set",
	Args:  cobra.NoArgs,
	RunE:  runFileIDs,
}

var rawCmd = &cobra.Command{
	Use:   "raw [file-id...]",
	Short: "Print extracted text",
	Long: `Prints the title, abstract and body of each selected file, one section
per line. Fails on the first file that cannot be decoded.
With no file ids the whole canonical file set is printed.`,
	RunE: runRaw,
}

var wordsCmd = &cobra.Command{
	Use:   "words [file-id...]",
	Short: "Stream word tokens, one per line",
	RunE:  runWords,
}

var sentsCmd = &cobra.Command{
	Use:   "sents [file-id...]",
	Short: "Stream sentences as JSON arrays, one per line",
	RunE:  runSents,
}

var parasCmd = &cobra.Command{
	Use:   "paras [file-id...]",
	Short: "Stream paragraphs as JSON arrays of sentences, one per line",
	RunE:  runParas,
}

var metadataCmd = &cobra.Command{
	Use:   "metadata [file-id...]",
	Short: "Print catalog rows for files as JSON",
	Long: `Prints the catalog rows that name each selected file.
With --all the whole catalog is printed, keyed by document identity.`,
	RunE: runMetadata,
}

var citationsCmd = &cobra.Command{
	Use:   "citations [file-id...]",
	Short: "Print bibliography entries as JSON",
	RunE:  runCitations,
}

// metadataAll is a flag for the metadata command.
var metadataAll bool

func init() {
	metadataCmd.Flags().BoolVar(&metadataAll, "all", false, "print the whole catalog")

	rootCmd.AddCommand(fileidsCmd)
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(sentsCmd)
	rootCmd.AddCommand(parasCmd)
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(citationsCmd)
}

func runFileIDs(cmd *cobra.Command, _ []string) error {
	corpus, err := openCorpus(cmd)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, id := range corpus.FileIDs() {
		fmt.Fprintln(w, id)
	}
	return w.Flush()
}

func runRaw(cmd *cobra.Command, args []string) error {
	corpus, err := openCorpus(cmd)
	if err != nil {
		return err
	}

	text, err := corpus.Raw(cmd.Context(), domain.Select(args))
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}

func runWords(cmd *cobra.Command, args []string) error {
	corpus, err := openCorpus(cmd)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	return drain(cmd, corpus.Words(cmd.Context(), domain.Select(args)), func(word string) error {
		_, err := fmt.Fprintln(w, word)
		return err
	})
}

func runSents(cmd *cobra.Command, args []string) error {
	corpus, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	seq, err := corpus.Sentences(cmd.Context(), domain.Select(args))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	enc := json.NewEncoder(w)
	return drain(cmd, seq, func(sentence []string) error {
		return enc.Encode(sentence)
	})
}

func runParas(cmd *cobra.Command, args []string) error {
	corpus, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	seq, err := corpus.Paragraphs(cmd.Context(), domain.Select(args))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	enc := json.NewEncoder(w)
	return drain(cmd, seq, func(paragraph [][]string) error {
		return enc.Encode(paragraph)
	})
}

func runMetadata(cmd *cobra.Command, args []string) error {
	corpus, err := openCorpus(cmd)
	if err != nil {
		return err
	}

	if metadataAll {
		catalog := make(map[string][]domain.CatalogRow, corpus.Catalog().Len())
		for uid, rows := range corpus.Catalog().All() {
			catalog[uid] = rows
		}
		return outputJSON(cmd, catalog)
	}
	return outputJSON(cmd, corpus.Metadata(domain.Select(args)))
}

func runCitations(cmd *cobra.Command, args []string) error {
	corpus, err := openCorpus(cmd)
	if err != nil {
		return err
	}

	citations, citeErr := corpus.Citations(cmd.Context(), domain.Select(args))
	if err := outputJSON(cmd, citations); err != nil {
		return err
	}
	if citeErr != nil {
		return fmt.Errorf("some files failed: %w", citeErr)
	}
	return nil
}

// drain writes every unit of seq. Files that fail to decode are reported
// on stderr and skipped; any other error stops the stream.
func drain[T any](cmd *cobra.Command, seq iter.Seq2[T, error], write func(T) error) error {
	skipped := 0
	for unit, err := range seq {
		if err != nil {
			var fe *domain.FileError
			if !errors.As(err, &fe) {
				return err
			}
			skipped++
			cmd.PrintErrf("warning: %v\n", err)
			continue
		}
		if err := write(unit); err != nil {
			return err
		}
	}
	if skipped > 0 {
		logger.Warn("%d files skipped", skipped)
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
