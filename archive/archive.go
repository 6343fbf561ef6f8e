// Package archive implements the indexed archive container used to pack
// multiple independently-compressed members into one file: a leading
// record table followed by the member payloads themselves.
//
// Framing, grounded on original_source/mpdsarchivetool.cpp's
// RebuildArchive/ExtractArchive: a little-endian uint32 member count N,
// then N (offset, size) uint32 pairs. Offsets are relative to the start
// of the table (byte 0 of the table region, i.e. byte 4 of the archive),
// so the first member's absolute position is 4+8N. Each member is padded
// up to a 4-byte boundary before the next one starts.
package archive

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/gamemasterplc/mpdsarchivetool/compression"
)

// Entry describes one archive member's position in the payload region.
type Entry struct {
	Offset uint32 // relative to the start of the table (byte 4 of the archive)
	Size   uint32
}

// Table is the full record list read from or written to an archive's header.
type Table []Entry

var (
	// ErrTruncated is returned by Split when buf is too short to hold its
	// member count or its own declared table.
	ErrTruncated = errors.New("archive: truncated input")
	// ErrCorruptTable is returned by Split when a table entry names a
	// region that runs past the end of buf.
	ErrCorruptTable = errors.New("archive: table entry out of range")
)

func roundUp4(n uint32) uint32 { return (n + 3) &^ 3 }

// Build assembles an uncompressed archive from already-framed member
// buffers (each one independently compressed, or raw if its kind is
// compression.None): the table followed by the padded payloads, in the
// order given.
func Build(members [][]byte) []byte {
	n := uint32(len(members))
	table := make(Table, n)
	ofs := n * 8
	for i, m := range members {
		table[i] = Entry{Offset: ofs, Size: uint32(len(m))}
		ofs = roundUp4(ofs + uint32(len(m)))
	}

	out := make([]byte, 4, 4+ofs)
	binary.LittleEndian.PutUint32(out, n)
	for _, e := range table {
		var rec [8]byte
		binary.LittleEndian.PutUint32(rec[0:4], e.Offset)
		binary.LittleEndian.PutUint32(rec[4:8], e.Size)
		out = append(out, rec[:]...)
	}
	for _, m := range members {
		out = append(out, m...)
		if pad := int(roundUp4(uint32(len(m)))) - len(m); pad > 0 {
			out = append(out, make([]byte, pad)...)
		}
	}
	return out
}

// Split parses an uncompressed archive's table and returns each member's
// raw (still independently-compressed) bytes in table order.
func Split(buf []byte) ([][]byte, error) {
	if len(buf) < 4 {
		return nil, ErrTruncated
	}
	n := binary.LittleEndian.Uint32(buf)
	tableEnd := 4 + uint64(n)*8
	if tableEnd > uint64(len(buf)) {
		return nil, ErrTruncated
	}

	members := make([][]byte, n)
	for i := uint32(0); i < n; i++ {
		rec := buf[4+i*8 : 4+i*8+8]
		ofs := binary.LittleEndian.Uint32(rec[0:4])
		size := binary.LittleEndian.Uint32(rec[4:8])
		start := uint64(4) + uint64(ofs)
		end := start + uint64(size)
		if end > uint64(len(buf)) || start > end {
			return nil, ErrCorruptTable
		}
		members[i] = buf[start:end]
	}
	return members, nil
}

// CompressMembers compresses each raw member under its corresponding
// kind, running up to runtime.GOMAXPROCS(0) compressions concurrently.
// Each goroutine calls compression.Compress on its own buffer with no
// shared mutable state, so results are assembled back in input order
// once every worker finishes.
func CompressMembers(raw [][]byte, kinds []compression.Kind) ([][]byte, error) {
	if len(raw) != len(kinds) {
		return nil, errors.Errorf("archive: %d members but %d kinds", len(raw), len(kinds))
	}

	out := make([][]byte, len(raw))
	errs := make([]error, len(raw))

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i := range raw {
		i := i
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			enc, err := compression.Compress(raw[i], kinds[i])
			if err != nil {
				errs[i] = errors.Wrapf(err, "member %d", i)
				return
			}
			out[i] = enc
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DecompressMembers is CompressMembers' inverse: it decompresses each
// member under its known kind concurrently, bounded the same way.
func DecompressMembers(members [][]byte, kinds []compression.Kind) ([][]byte, error) {
	if len(members) != len(kinds) {
		return nil, errors.Errorf("archive: %d members but %d kinds", len(members), len(kinds))
	}

	out := make([][]byte, len(members))
	errs := make([]error, len(members))

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i := range members {
		i := i
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			dec, err := compression.DecompressAs(members[i], kinds[i])
			if err != nil {
				errs[i] = errors.Wrapf(err, "member %d", i)
				return
			}
			out[i] = dec
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Pack builds a complete archive file from a manifest's raw member bytes:
// it compresses each member under its manifest-declared kind, frames them
// with Build, then compresses the whole table+payload region once more
// under the manifest's archive-level kind. This two-pass shape (build
// uncompressed, then compress as a unit) mirrors RebuildArchive.
func Pack(raw [][]byte, m *Manifest) ([]byte, error) {
	if len(raw) != len(m.Entries) {
		return nil, errors.Errorf("archive: %d members but manifest names %d", len(raw), len(m.Entries))
	}
	kinds := make([]compression.Kind, len(m.Entries))
	for i, e := range m.Entries {
		kinds[i] = e.Kind
	}
	compressed, err := CompressMembers(raw, kinds)
	if err != nil {
		return nil, errors.Wrap(err, "compressing members")
	}
	whole, err := compression.Compress(Build(compressed), m.ArchiveKind)
	if err != nil {
		return nil, errors.Wrap(err, "compressing archive")
	}
	return whole, nil
}

// Extracted holds an archive's decompressed contents plus the kind each
// layer was stored under, so a manifest describing the archive can be
// reconstructed.
type Extracted struct {
	ArchiveKind compression.Kind
	MemberKinds []compression.Kind
	Members     [][]byte
}

// Unpack is Pack's inverse: it sniffs the archive-level kind, decompresses
// the whole file, splits the table, then sniffs each member's kind and
// decompresses the members concurrently via DecompressMembers (there is no
// manifest yet at this point — recovering one
// is the caller's job, via the kinds returned here).
func Unpack(buf []byte) (*Extracted, error) {
	archiveKind := compression.KindOf(buf)
	raw, err := compression.DecompressAs(buf, archiveKind)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing archive")
	}
	compressedMembers, err := Split(raw)
	if err != nil {
		return nil, errors.Wrap(err, "splitting table")
	}

	kinds := make([]compression.Kind, len(compressedMembers))
	for i, m := range compressedMembers {
		kinds[i] = compression.KindOf(m)
	}
	members, err := DecompressMembers(compressedMembers, kinds)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing members")
	}

	return &Extracted{ArchiveKind: archiveKind, MemberKinds: kinds, Members: members}, nil
}
