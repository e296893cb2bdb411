// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogSource: Opens the tabular metadata catalog
//   - CatalogLoader: Parses a catalog into a frozen domain.Catalog
//   - RecordStore: Reads physical parse files by file identifier
//   - WordTokenizer: Splits text into word tokens
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SentenceTokenizer: Without it, sentence and paragraph queries fail
//     with domain.ErrNoSentenceTokenizer.
//   - TokenFilterPipeline: Without it, lemma artifacts cannot be computed.
//   - ArtifactStore: Only needed by precompute.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
