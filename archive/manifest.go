package archive

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/gamemasterplc/mpdsarchivetool/compression"
)

// ManifestEntry names one archive member's compression kind and the file
// it is read from or extracted to.
type ManifestEntry struct {
	Kind compression.Kind
	Path string
}

// Manifest is the parsed form of the archive tool's text list: an
// archive-level compression kind (the whole archive file is itself
// compressed as a single unit) followed by one entry per member.
type Manifest struct {
	ArchiveKind compression.Kind
	Entries     []ManifestEntry
}

// ParseManifest reads the text format from spec.md §6: the first
// non-blank line is the archive-level kind's textual name, and every
// subsequent line beginning with "COMPRESSION" is "<KIND_NAME>,<path>".
// Relative paths are resolved against baseDir (the manifest file's own
// directory).
func ParseManifest(r io.Reader, baseDir string) (*Manifest, error) {
	sc := bufio.NewScanner(r)

	m := &Manifest{}
	haveHeader := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !haveHeader {
			kind, ok := compression.ParseKind(line)
			if !ok {
				return nil, errors.Errorf("archive: manifest header %q is not a known compression kind", line)
			}
			m.ArchiveKind = kind
			haveHeader = true
			continue
		}
		if !strings.HasPrefix(line, "COMPRESSION") {
			continue
		}
		name, path, ok := strings.Cut(line, ",")
		if !ok {
			return nil, errors.Errorf("archive: malformed manifest line %q", line)
		}
		kind, ok := compression.ParseKind(name)
		if !ok {
			return nil, errors.Errorf("archive: manifest entry %q is not a known compression kind", name)
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		m.Entries = append(m.Entries, ManifestEntry{Kind: kind, Path: path})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}
	if !haveHeader {
		return nil, errors.New("archive: empty manifest")
	}
	return m, nil
}

// WriteTo serializes m back into the manifest text format, with member
// paths written relative to baseDir (mirroring ExtractArchive's output,
// which names each member "<N>.bin" inside a directory it creates).
func (m *Manifest) WriteTo(w io.Writer, baseDir string) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", m.ArchiveKind); err != nil {
		return errors.Wrap(err, "writing manifest header")
	}
	for _, e := range m.Entries {
		path := e.Path
		if rel, err := filepath.Rel(baseDir, e.Path); err == nil {
			path = rel
		}
		if _, err := fmt.Fprintf(w, "%s,%s\n", e.Kind, path); err != nil {
			return errors.Wrap(err, "writing manifest entry")
		}
	}
	return nil
}
