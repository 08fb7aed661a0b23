// Package unitybundle parses the UnityFS bundle container format: a packed
// archive used to ship Unity engine assets. A bundle holds a fixed header, a
// BlocksInfo directory describing how its payload is chunked and compressed
// and which virtual files (nodes) live inside, and one or more storage blocks
// whose concatenated decompressed output forms the data region nodes are
// sliced from.
//
// This package only reads bundles. It does not interpret node payloads, does
// not verify the directory's reserved hash, and does not write bundles.
//
// # Basic usage
//
//	f, err := os.Open("level0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	info, err := f.Stat()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b, err := unitybundle.Parse(f, info.Size())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := b.NodeBytes("CAB-abcdef/CAB-abcdef.resS")
//
// Every codec the core needs (LZMA, LZ4, LZ4HC) is wired in by default; a
// host that needs LZHAM support or wants to override a codec supplies its
// own compress.Registry via WithRegistry.
package unitybundle

import (
	"github.com/go-unity/unitybundle/bundle"
	"github.com/go-unity/unitybundle/compress"
	"github.com/go-unity/unitybundle/internal/options"
)

// Bundle is the parsed, immutable UnityFS artifact.
type Bundle = bundle.Bundle

// StreamingRef is an external (path, offset, size) reference resolved
// against a matching node rather than against the data region directly.
type StreamingRef = bundle.StreamingRef

// ParseOption configures Parse and TryParse.
type ParseOption = options.Option[*bundle.Config]

// WithRegistry overrides the default compressor registry, letting a host add
// or replace codecs (for example, a real LZHAM implementation) without
// forking this module.
func WithRegistry(reg compress.Registry) ParseOption {
	return options.NoError(func(cfg *bundle.Config) {
		cfg.Registry = reg
	})
}

// WithPathMaxLength overrides the default 65,536-byte ceiling ReadCString
// enforces on every node path read from BlocksInfo.
func WithPathMaxLength(n int) ParseOption {
	return options.NoError(func(cfg *bundle.Config) {
		cfg.PathMaxLen = n
	})
}

// WithMaxDataRegionSize overrides the default 2^31-1 byte ceiling on the
// summed uncompressed block sizes the data-region builder will allocate.
func WithMaxDataRegionSize(n int64) ParseOption {
	return options.NoError(func(cfg *bundle.Config) {
		cfg.MaxDataRegionSize = n
	})
}

// WithOverlapCheck enables C7's opt-in overlap check: after the data region
// is built, every pair of adjacent (by offset) non-zero-size nodes is
// asserted non-overlapping, failing with errs.NodeOverlap otherwise. Off by
// default, since a subset of corrupted or unusual bundles in the wild
// declare overlapping nodes that reference readers still manage to read
// individual files out of.
func WithOverlapCheck(enabled bool) ParseOption {
	return options.NoError(func(cfg *bundle.Config) {
		cfg.CheckOverlap = enabled
	})
}

// WithPaddingVerification enables the opt-in check that every byte of the v7
// alignment padding preceding BlocksInfo is zero, failing with a
// BlocksInfoParse wrapping errs.NonZeroPadding otherwise. Off by default,
// since reference UnityFS readers do not perform this check.
func WithPaddingVerification(enabled bool) ParseOption {
	return options.NoError(func(cfg *bundle.Config) {
		cfg.VerifyPadding = enabled
	})
}

func buildConfig(opts []ParseOption) bundle.Config {
	cfg := bundle.Config{}
	options.Apply(&cfg, opts...)

	return cfg
}

// Parse reads and validates a complete UnityFS bundle from src, which must
// support io.Reader and io.Seeker (most implementations can simply pass an
// *os.File or a *bytes.Reader over an in-memory blob).
// fileLength is the source's total byte length, required up front to locate
// a streamed-layout BlocksInfo directory.
//
// Parse is fatal-and-immediate: the first structural violation it encounters
// stops the pipeline and is returned wrapped in errs.BundleError naming the
// stage that failed.
func Parse(src bundle.Source, fileLength int64, opts ...ParseOption) (*Bundle, error) {
	return bundle.Parse(src, fileLength, buildConfig(opts))
}

// ParseResult is the outcome of TryParse: exactly one of Bundle or Err is set.
type ParseResult struct {
	Bundle *Bundle
	Err    error
}

// TryParse runs the same pipeline as Parse but collects the result into a
// ParseResult instead of returning an error directly, for callers that
// prefer a single return value (e.g. when driving Parse from a loop over
// many candidate files). It never downgrades a failure into a partial
// success.
func TryParse(src bundle.Source, fileLength int64, opts ...ParseOption) ParseResult {
	b, err := Parse(src, fileLength, opts...)
	return ParseResult{Bundle: b, Err: err}
}
