// Package file provides the TOML-backed ConfigStore. Settings live in
// <config-dir>/config.toml as nested tables and are exposed to the rest of
// the program as flat dot-notation keys such as "policy.prefer".
package file
