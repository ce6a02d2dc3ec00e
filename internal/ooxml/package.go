package ooxml

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/spf13/afero"

	"github.com/goliatone/go-formfill/pkg/document"
)

const (
	defaultMainPart   = "word/document.xml"
	rootRelsPart      = "_rels/.rels"
	officeDocumentRel = "/officeDocument"
)

// ErrNoMainPart is returned for packages without a main document part.
var ErrNoMainPart = errors.New("ooxml: main document part not found")

type part struct {
	name     string
	method   uint16
	modified time.Time
	data     []byte
}

// pkg holds every part of the zip container in its original order so that
// untouched parts round-trip byte for byte.
type pkg struct {
	parts []*part
	index map[string]*part
}

func readPackage(data []byte) (*pkg, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("ooxml: open zip: %w", err)
	}
	p := &pkg{index: make(map[string]*part, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("ooxml: open part %s: %w", f.Name, err)
		}
		payload, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("ooxml: read part %s: %w", f.Name, err)
		}
		entry := &part{name: f.Name, method: f.Method, modified: f.Modified, data: payload}
		p.parts = append(p.parts, entry)
		p.index[f.Name] = entry
	}
	return p, nil
}

// mainPart resolves the officeDocument relationship, falling back to
// word/document.xml.
func (p *pkg) mainPart() (*part, error) {
	name := defaultMainPart
	if rels, ok := p.index[rootRelsPart]; ok {
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(rels.data); err != nil {
			return nil, fmt.Errorf("ooxml: parse %s: %w", rootRelsPart, err)
		}
		if root := doc.Root(); root != nil {
			for _, rel := range root.ChildElements() {
				if rel.Tag != "Relationship" || !strings.HasSuffix(rel.SelectAttrValue("Type", ""), officeDocumentRel) {
					continue
				}
				if target := strings.TrimPrefix(rel.SelectAttrValue("Target", ""), "/"); target != "" {
					name = path.Clean(target)
				}
				break
			}
		}
	}
	main, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMainPart, name)
	}
	return main, nil
}

func (p *pkg) writeTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, entry := range p.parts {
		header := &zip.FileHeader{
			Name:     entry.name,
			Method:   entry.method,
			Modified: entry.modified,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return cw.n, fmt.Errorf("ooxml: create part %s: %w", entry.name, err)
		}
		if _, err := fw.Write(entry.data); err != nil {
			return cw.n, fmt.Errorf("ooxml: write part %s: %w", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("ooxml: close zip: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// Opener loads .docx files from an afero filesystem.
type Opener struct {
	Fs afero.Fs
}

// NewOpener returns an Opener over fsys, defaulting to the OS filesystem.
func NewOpener(fsys afero.Fs) *Opener {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Opener{Fs: fsys}
}

// Open implements document.Opener.
func (o *Opener) Open(ctx context.Context, path string) (document.Document, error) {
	doc, err := o.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads and parses the document at path.
func (o *Opener) Load(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fsys := o.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("ooxml: read %s: %w", path, err)
	}
	return Read(data)
}

// Read parses a .docx package held in memory.
func Read(data []byte) (*Document, error) {
	p, err := readPackage(data)
	if err != nil {
		return nil, err
	}
	main, err := p.mainPart()
	if err != nil {
		return nil, err
	}
	return newDocument(p, main)
}
