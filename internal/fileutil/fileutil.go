// Package fileutil holds small filesystem helpers shared by the media and
// export packages.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyRef is returned when a media reference is blank.
var ErrEmptyRef = errors.New("empty media reference")

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ResolveWithin maps a reference such as "/audio/abc.mp3" or
// "http://host/assets/v1.mp4" onto its base name inside dir. Only the base
// name is honoured so a reference can never escape dir. When dir is empty the
// cleaned reference path is returned unchanged.
func ResolveWithin(dir, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyRef
	}
	if IsRemote(ref) {
		u, _ := url.Parse(ref)
		ref = u.Path
	}
	if strings.TrimSpace(dir) == "" {
		return filepath.Clean(ref), nil
	}
	base := filepath.Base(filepath.FromSlash(ref))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("media reference %q has no file name", ref)
	}
	return filepath.Join(dir, base), nil
}

// CopyFileVerified streams src to dst with SHA256 + size integrity verification.
// Removes dst on mismatch.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}
