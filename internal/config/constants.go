// Package config holds the small set of named constants shared across the
// kernel's ambient tooling (CLI, manifest loader) — the same home the
// retrieval pack uses for cross-cutting names like SourceFileExtensions
// rather than scattering them as local literals.
package config

// ManifestFileExt is the conventional extension for YAML environment
// manifests consumed by env.LoadManifest (SPEC_FULL.md §C.2).
const ManifestFileExt = ".yaml"

// TermFileExt is the conventional extension for files holding a single
// term in the debug s-expression syntax (internal/pretty, §C.4) that
// cmd/typecheck reads.
const TermFileExt = ".term"

// DefaultGlobalModule is the module name scTypeCheck/scTypeCheckInCtx use
// when the caller (e.g. the CLI) has no enclosing module to qualify
// lookups with; resolveGlobal/resolveDataType/resolveCtor fall back to
// ident.Local in this case (§4.7 "Global definitions").
const DefaultGlobalModule = ""

// PropLevel is the sort level that is impredicative (ident.Prop, §4.6).
const PropLevel = uint32(0)
