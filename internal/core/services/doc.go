// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven
// ports (adapters):
//
//   - Resolve turns a catalog and a ResolutionPolicy into the canonical file set.
//   - Decoder and Tokenization turn one parse file into words, sentences
//     and paragraphs; StreamingView yields them lazily across files.
//   - CorpusService is the query surface built from the pieces above.
//   - PrecomputeService derives per-file artifacts in parallel.
//   - SettingsService maps the config store to typed settings.
package services
