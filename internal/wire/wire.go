// Package wire serializes e-graph snapshots to a portable binary format
// and derives content fingerprints from them.
//
// The format is little-endian and length-prefixed:
//
//	magic "EGS1"
//	unionFind.parents  : u32 count, then count * i32
//	terms              : u32 count, then per term
//	                     i32 leafId, u32 nameLen, name bytes,
//	                     u32 childCount, childCount * i32
//	classes            : u32 count, then per class
//	                     i32 classId,
//	                     u32 termCount, termCount * i32 leaf ids,
//	                     u32 parentCount, parentCount * i32 leaf ids
//
// A snapshot round-trips bit-exactly. The encoded graph is canonical if
// and only if RestoreInvariants had been called before Snapshot.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/roach88/eqsat/internal/eg"
)

// ErrInvalidFormat is wrapped by every Decode failure. No partial
// snapshot is ever returned.
var ErrInvalidFormat = errors.New("wire: invalid format")

var magic = [4]byte{'E', 'G', 'S', '1'}

// Encode serializes a snapshot.
func Encode(s eg.Snapshot) []byte {
	var buf []byte
	buf = append(buf, magic[:]...)
	return appendSnapshot(buf, s, false)
}

func appendSnapshot(buf []byte, s eg.Snapshot, normalizeNames bool) []byte {
	buf = appendU32(buf, uint32(len(s.Parents)))
	for _, p := range s.Parents {
		buf = appendI32(buf, p)
	}

	buf = appendU32(buf, uint32(len(s.Terms)))
	for _, t := range s.Terms {
		buf = appendI32(buf, t.LeafID)
		name := t.Name
		if normalizeNames {
			name = normalizeSymbol(name)
		}
		buf = appendU32(buf, uint32(len(name)))
		buf = append(buf, name...)
		buf = appendU32(buf, uint32(len(t.Children)))
		for _, c := range t.Children {
			buf = appendI32(buf, c)
		}
	}

	buf = appendU32(buf, uint32(len(s.Classes)))
	for _, c := range s.Classes {
		buf = appendI32(buf, c.ClassID)
		buf = appendU32(buf, uint32(len(c.TermLeafIDs)))
		for _, id := range c.TermLeafIDs {
			buf = appendI32(buf, id)
		}
		buf = appendU32(buf, uint32(len(c.ParentLeafIDs)))
		for _, id := range c.ParentLeafIDs {
			buf = appendI32(buf, id)
		}
	}

	return buf
}

func appendU32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}

func appendI32(buf []byte, v eg.ClassID) []byte {
	return binary.LittleEndian.AppendUint32(buf, uint32(v))
}

// Decode parses data produced by Encode. Malformed input fails with an
// error wrapping ErrInvalidFormat.
func Decode(data []byte) (eg.Snapshot, error) {
	r := &reader{data: data}

	var m [4]byte
	r.bytes(m[:])
	if r.err == nil && m != magic {
		return eg.Snapshot{}, fmt.Errorf("%w: bad magic %q", ErrInvalidFormat, m[:])
	}

	var s eg.Snapshot

	n := r.count()
	for i := uint32(0); i < n && r.err == nil; i++ {
		s.Parents = append(s.Parents, r.i32())
	}

	n = r.count()
	for i := uint32(0); i < n && r.err == nil; i++ {
		t := eg.SnapshotTerm{LeafID: r.i32(), Name: r.str()}
		nc := r.count()
		t.Children = make([]eg.ClassID, 0, nc)
		for j := uint32(0); j < nc && r.err == nil; j++ {
			t.Children = append(t.Children, r.i32())
		}
		s.Terms = append(s.Terms, t)
	}

	n = r.count()
	for i := uint32(0); i < n && r.err == nil; i++ {
		c := eg.SnapshotClass{ClassID: r.i32()}
		nt := r.count()
		for j := uint32(0); j < nt && r.err == nil; j++ {
			c.TermLeafIDs = append(c.TermLeafIDs, r.i32())
		}
		np := r.count()
		for j := uint32(0); j < np && r.err == nil; j++ {
			c.ParentLeafIDs = append(c.ParentLeafIDs, r.i32())
		}
		s.Classes = append(s.Classes, c)
	}

	if r.err != nil {
		return eg.Snapshot{}, r.err
	}
	if r.off != len(r.data) {
		return eg.Snapshot{}, fmt.Errorf("%w: %d trailing bytes", ErrInvalidFormat, len(r.data)-r.off)
	}
	return s, nil
}

// reader consumes little-endian fields, latching the first error.
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) bytes(dst []byte) {
	if r.err != nil {
		return
	}
	if r.off+len(dst) > len(r.data) {
		r.err = fmt.Errorf("%w: truncated at offset %d", ErrInvalidFormat, r.off)
		return
	}
	copy(dst, r.data[r.off:])
	r.off += len(dst)
}

func (r *reader) u32() uint32 {
	var b [4]byte
	r.bytes(b[:])
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b[:])
}

func (r *reader) i32() eg.ClassID {
	return eg.ClassID(r.u32())
}

// count reads a length prefix and sanity-checks it against the remaining
// input, so corrupt prefixes fail cleanly instead of allocating wildly.
func (r *reader) count() uint32 {
	n := r.u32()
	if r.err == nil && int(n) > len(r.data)-r.off {
		r.err = fmt.Errorf("%w: count %d exceeds remaining input", ErrInvalidFormat, n)
		return 0
	}
	return n
}

func (r *reader) str() string {
	n := r.count()
	if r.err != nil {
		return ""
	}
	b := make([]byte, n)
	r.bytes(b)
	if r.err != nil {
		return ""
	}
	return string(b)
}
