package cli

import (
	"bytes"
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/paperstream/internal/adapters/driven/catalog/csv"
	"github.com/custodia-labs/paperstream/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/paperstream/internal/adapters/driven/tokenizer"
	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driving"
	"github.com/custodia-labs/paperstream/internal/core/services"
	"github.com/custodia-labs/paperstream/internal/tokenfilters"
)

const testCatalog = "cord_uid,title,pdf_json_files,pmc_json_files\n" +
	"u1,Alpha,a1.json; a2.json,\n" +
	"u2,Gamma,,b1.json\n" +
	"u3,Both,a3.json,b3.json\n"

var testRecords = map[string]string{
	"a1.json": `{"metadata": {"title": "Alpha"},
		"abstract": [{"text": "Viruses replicate."}],
		"body_text": [{"text": "Body one."}],
		"bib_entries": {"BIBREF0": {"title": "A reference"}}}`,
	"a2.json": `{"metadata": {"title": "Beta"}, "body_text": [{"text": "Second fragment."}]}`,
	"b1.json": `{"metadata": {"title": "Gamma"}, "body_text": [{"text": "PMC text."}]}`,
	"b3.json": `{"metadata": {"title": "Both B"}, "body_text": [{"text": "Kind B body."}]}`,
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// testOpener opens corpora over in-memory adapters and records the
// settings it was asked for.
type testOpener struct {
	records   *memory.RecordStore
	artifacts *memory.ArtifactStore

	corpus     domain.CorpusSettings
	precompute domain.PrecomputeSettings
	closed     bool
}

func (o *testOpener) OpenCorpus(ctx context.Context, cs domain.CorpusSettings) (driving.CorpusService, error) {
	return o.open(ctx, cs)
}

func (o *testOpener) OpenPrecompute(
	ctx context.Context,
	cs domain.CorpusSettings,
	ps domain.PrecomputeSettings,
) (driving.PrecomputeService, io.Closer, error) {
	corpus, err := o.open(ctx, cs)
	if err != nil {
		return nil, nil, err
	}
	pipeline, err := tokenfilters.Build(tokenfilters.DefaultRegistry(), domain.DefaultPipelineConfig())
	if err != nil {
		return nil, nil, err
	}
	o.precompute = ps
	svc := services.NewPrecomputeService(corpus, o.artifacts, pipeline, ps)
	return svc, closerFunc(func() error { o.closed = true; return nil }), nil
}

func (o *testOpener) open(ctx context.Context, cs domain.CorpusSettings) (*services.CorpusService, error) {
	o.corpus = cs
	word, err := tokenizer.NewWord(cs.WordTokenizer)
	if err != nil {
		return nil, err
	}
	sent, err := tokenizer.NewSentence(cs.SentenceTokenizer)
	if err != nil {
		return nil, err
	}
	return services.NewCorpusService(ctx,
		memory.NewCatalogSource(testCatalog),
		csv.NewLoader(),
		o.records,
		services.CorpusOptions{
			Columns:           cs.Columns,
			Content:           cs.Content,
			Policy:            cs.Policy,
			WordTokenizer:     word,
			SentenceTokenizer: sent,
			ParseDirs:         cs.ParseDirs,
		},
	)
}

// setupTestServices wires in-memory services with corpus.root set.
func setupTestServices() (*testOpener, func()) {
	return setupTestServicesWith(map[string]any{services.KeyCorpusRoot: "mem://corpus"})
}

func setupTestServicesWith(config map[string]any) (*testOpener, func()) {
	records := memory.NewRecordStore()
	for id, data := range testRecords {
		records.PutString(id, data)
	}
	o := &testOpener{records: records, artifacts: memory.NewArtifactStore()}

	settingsService = services.NewSettingsService(memory.NewConfigStore(config))
	opener = o

	return o, func() {
		settingsService = nil
		opener = nil
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// executeCmd runs rootCmd with args and returns stdout and stderr.
func executeCmd(args ...string) (string, string, error) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
