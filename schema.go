package tmx

import (
	"bytes"
	"io"

	"github.com/jacoelho/xsd"

	tmxerrors "github.com/jacoelho/tmx/errors"
)

// validateDocument buffers r, validates it against schema and returns a reader
// over the same bytes.
func validateDocument(schema *xsd.Schema, r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, tmxerrors.Wrap(tmxerrors.Other, err, "read map document")
	}
	if err := schema.Validate(bytes.NewReader(data)); err != nil {
		return nil, tmxerrors.Wrap(tmxerrors.Other, err, "map document does not match schema")
	}
	return bytes.NewReader(data), nil
}
