// Package output serializes index documents and replaces output files.
//
// Files are never written in place. The encoded document goes to a
// temporary file in the destination directory, which is then renamed over
// the target (github.com/moby/sys/atomicwriter), so a failed run leaves the
// previous index intact. A BLAKE3 digest of the encoded bytes is compared
// with the existing file first; identical content is not rewritten.
package output

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"
	"github.com/zeebo/blake3"

	"github.com/shinji-kodama/webdemo-index/internal/model"
)

// Options controls how documents are encoded.
type Options struct {
	// Indent is the per-level indentation. Empty produces compact JSON.
	Indent string
}

// Result describes the outcome of a Write call.
type Result struct {
	// Path is the output file.
	Path string `json:"path"`

	// Digest is the hex-encoded BLAKE3-256 digest of the written bytes.
	Digest string `json:"digest"`

	// Bytes is the size of the encoded document.
	Bytes int `json:"bytes"`

	// Changed is false when the file already held identical content and
	// was left untouched.
	Changed bool `json:"changed"`
}

// Encode serializes v as JSON followed by a newline. HTML characters are
// not escaped, so names like "A&B" appear verbatim.
func Encode(v any, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Digest returns the hex-encoded BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Write encodes v and atomically replaces path with it. The parent
// directory must already exist. When path is a symbolic link the file it
// points to is replaced and the link itself is kept.
func Write(path string, v any, opts Options) (Result, error) {
	data, err := Encode(v, opts)
	if err != nil {
		return Result{}, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to encode %s", path), err)
	}

	result := Result{Path: path, Digest: Digest(data), Bytes: len(data)}

	target, err := resolveTarget(path)
	if err != nil {
		return Result{}, err
	}

	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		if Digest(existing) == result.Digest {
			return result, nil
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Result{}, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read existing %s", path), err)
	}

	if err := atomicwriter.WriteFile(target, data, 0o644); err != nil {
		return Result{}, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to write %s", path), err)
	}

	result.Changed = true
	return result, nil
}

// resolveTarget follows symbolic links in path. A path that does not exist
// yet is returned unchanged. A dangling link resolves to its destination,
// so the file is created where the link points.
func resolveTarget(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to resolve %s", path), err)
	}

	dest, linkErr := os.Readlink(path)
	if linkErr != nil {
		return path, nil
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	return dest, nil
}
