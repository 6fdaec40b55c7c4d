// Package tmx reads maps in the Tiled TMX XML format.
//
// A map is parsed in a single pass over a stream of XML events. Every entity
// parser registers handlers for the child elements it understands; unknown
// elements are skipped. The result is a fully built Map or one *errors.Error.
package tmx

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/dispatch"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// ParseReader parses a map from r. source is the file path r was read from; it
// is only used to resolve external tilesets and may be empty for embedded maps.
func ParseReader(r io.Reader, source string) (*Map, error) {
	return ParseReaderWithOptions(r, source, NewParseOptions())
}

// ParseReaderWithOptions parses a map from r with explicit configuration.
func ParseReaderWithOptions(r io.Reader, source string, opts ParseOptions) (*Map, error) {
	return parseRoot(r, source, nil, opts)
}

// ParseFile parses the map stored at filename. External tilesets are resolved
// relative to the map's directory.
func ParseFile(filename string) (*Map, error) {
	return ParseFileWithOptions(filename, NewParseOptions())
}

// ParseFileWithOptions parses the map stored at filename with explicit configuration.
func ParseFileWithOptions(filename string, opts ParseOptions) (*Map, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, tmxerrors.Wrap(tmxerrors.Other, err, fmt.Sprintf("map file not found: %s", filename))
	}
	m, err := parseRoot(f, filename, nil, opts)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		return nil, tmxerrors.Wrap(tmxerrors.Other, closeErr, fmt.Sprintf("close map file %s", filename))
	}
	return m, err
}

// ParseFS parses the map named name in fsys. External tilesets are opened from
// fsys relative to name.
func ParseFS(fsys fs.FS, name string) (*Map, error) {
	return ParseFSWithOptions(fsys, name, NewParseOptions())
}

// ParseFSWithOptions parses the map named name in fsys with explicit configuration.
func ParseFSWithOptions(fsys fs.FS, name string, opts ParseOptions) (*Map, error) {
	if fsys == nil {
		return nil, tmxerrors.New(tmxerrors.Other, "parse map: nil fs")
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, tmxerrors.Wrap(tmxerrors.Other, err, fmt.Sprintf("map file not found: %s", name))
	}
	m, err := parseRoot(f, name, fsys, opts)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		return nil, tmxerrors.Wrap(tmxerrors.Other, closeErr, fmt.Sprintf("close map file %s", name))
	}
	return m, err
}

func parseRoot(r io.Reader, source string, fsys fs.FS, opts ParseOptions) (*Map, error) {
	if r == nil {
		return nil, tmxerrors.New(tmxerrors.Other, "parse map: nil reader")
	}
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, tmxerrors.Wrap(tmxerrors.Other, err, "invalid parse options")
	}
	if resolved.schema != nil {
		r, err = validateDocument(resolved.schema, r)
		if err != nil {
			return nil, err
		}
	}
	p, err := newParser(r, source, fsys, resolved)
	if err != nil {
		return nil, err
	}
	list, err := p.w.Find("map")
	if err != nil {
		return nil, err
	}
	return p.parseMap(list)
}

// parser holds the state of one parse. Nothing outlives the call that built it.
type parser struct {
	w      *dispatch.Walker
	log    *zap.Logger
	fsys   fs.FS
	opts   resolvedParseOptions
	source string
}

func newParser(r io.Reader, source string, fsys fs.FS, opts resolvedParseOptions) (*parser, error) {
	src, err := xmlevent.NewReader(r, opts.xmlOptions...)
	if err != nil {
		return nil, tmxerrors.Wrap(tmxerrors.XMLDecoding, err, "")
	}
	return &parser{
		w:      dispatch.NewWalker(src, opts.logger),
		log:    opts.logger,
		fsys:   fsys,
		opts:   opts,
		source: source,
	}, nil
}

// openRelative opens ref relative to the document being parsed and returns a
// parser over it.
func (p *parser) openRelative(ref string) (*parser, io.Closer, error) {
	if p.source == "" {
		return nil, nil, tmxerrors.Newf(tmxerrors.SourceRequired, "%s is an external reference but the map has no path", ref)
	}
	var (
		f    io.ReadCloser
		name string
		err  error
	)
	if p.fsys != nil {
		name = path.Join(path.Dir(p.source), ref)
		f, err = p.fsys.Open(name)
	} else {
		name = filepath.Join(filepath.Dir(p.source), filepath.FromSlash(ref))
		f, err = os.Open(name)
	}
	if err != nil {
		return nil, nil, tmxerrors.Wrap(tmxerrors.Other, err, fmt.Sprintf("external file not found: %s", name))
	}
	p.log.Debug("opening external file", zap.String("ref", ref), zap.String("path", name))
	sub, err := newParser(f, name, p.fsys, p.opts)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return sub, f, nil
}
