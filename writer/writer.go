// Package writer assembles the PDF object graph. Object bodies are
// registered in an arena and referenced by index, so the graph can be wired
// in any order; serialization then walks the arena once, recording the byte
// offset of every object for a cross-reference table that is derived, never
// estimated.
package writer

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// Ref is a 1-based object number. The zero Ref marks "unset".
type Ref int

// String renders the indirect reference form used inside object bodies.
func (r Ref) String() string { return fmt.Sprintf("%d 0 R", int(r)) }

type object struct {
	body     string // literal body, or dictionary entries for a stream
	stream   []byte
	isStream bool
	filled   bool
}

// Document is the object arena for one file.
type Document struct {
	objs []object
}

func NewDocument() *Document { return &Document{} }

// Reserve registers an empty slot and returns its reference, letting
// earlier objects point at bodies that do not exist yet.
func (d *Document) Reserve() Ref {
	d.objs = append(d.objs, object{})
	return Ref(len(d.objs))
}

// FillValue sets the literal body of a reserved object.
func (d *Document) FillValue(ref Ref, body string) {
	d.objs[ref-1] = object{body: body, filled: true}
}

// FillStream sets a reserved object to a stream with the given dictionary
// entries. /Length is injected at serialization from the actual body size.
func (d *Document) FillStream(ref Ref, dict string, data []byte) {
	d.objs[ref-1] = object{body: dict, stream: data, isStream: true, filled: true}
}

// AddValue registers a complete value object.
func (d *Document) AddValue(body string) Ref {
	ref := d.Reserve()
	d.FillValue(ref, body)
	return ref
}

// AddStream registers a complete stream object.
func (d *Document) AddStream(dict string, data []byte) Ref {
	ref := d.Reserve()
	d.FillStream(ref, dict, data)
	return ref
}

// Len returns the number of registered objects.
func (d *Document) Len() int { return len(d.objs) }

// Config controls assembly.
type Config struct {
	// Version selects the header version; empty means 1.4.
	Version string
	// Root is the catalog object. Required.
	Root Ref
	// Info is the document information dictionary. Optional.
	Info Ref
	// Deterministic derives the file identifier from IDSeed instead of
	// fresh randomness, making output byte-stable for fixed input.
	Deterministic bool
	IDSeed        string
}

const defaultVersion = "1.4"

// Assemble serializes the header, every object in index order, the
// cross-reference table and the trailer. It fails if any reserved object
// was never filled or the root reference is out of range.
func (d *Document) Assemble(cfg Config) ([]byte, error) {
	if cfg.Root < 1 || int(cfg.Root) > len(d.objs) {
		return nil, fmt.Errorf("root %d out of range (%d objects)", cfg.Root, len(d.objs))
	}
	if cfg.Info < 0 || int(cfg.Info) > len(d.objs) {
		return nil, fmt.Errorf("info %d out of range (%d objects)", cfg.Info, len(d.objs))
	}
	for i, obj := range d.objs {
		if !obj.filled {
			return nil, fmt.Errorf("object %d reserved but never filled", i+1)
		}
	}
	version := cfg.Version
	if version == "" {
		version = defaultVersion
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%PDF-%s\n%%\xE2\xE3\xCF\xD3\n", version)

	offsets := make([]int, len(d.objs))
	for i, obj := range d.objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		if obj.isStream {
			dict := fmt.Sprintf("/Length %d", len(obj.stream))
			if obj.body != "" {
				dict += " " + obj.body
			}
			fmt.Fprintf(&buf, "<< %s >>\nstream\n", dict)
			buf.Write(obj.stream)
			buf.WriteString("\nendstream\n")
		} else {
			buf.WriteString(obj.body)
			buf.WriteString("\n")
		}
		buf.WriteString("endobj\n")
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(d.objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	id := fileID(cfg)
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %s", len(d.objs)+1, cfg.Root)
	if cfg.Info != 0 {
		fmt.Fprintf(&buf, " /Info %s", cfg.Info)
	}
	fmt.Fprintf(&buf, " /ID [<%X> <%X>] >>\n", id[0], id[1])
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)
	return buf.Bytes(), nil
}

// fileID builds the trailer identifier pair: a name-based UUID over the
// seed in deterministic mode, two fresh random UUIDs otherwise.
func fileID(cfg Config) [2][]byte {
	if cfg.Deterministic {
		u := uuid.NewSHA1(uuid.NameSpaceOID, []byte(cfg.IDSeed))
		return [2][]byte{u[:], u[:]}
	}
	a, b := uuid.New(), uuid.New()
	return [2][]byte{a[:], b[:]}
}
