// Package yamlutil wraps the YAML library for the config file, layout files
// and block dumps. Decoding is strict and bounded; encoding keeps block HTML
// readable.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize is the largest document UnmarshalStrict accepts.
const MaxInputSize = 1 << 20

var (
	ErrEmptyDocument = errors.New("yaml: empty document")
	ErrTooLarge      = errors.New("yaml: document too large")
	ErrNilTarget     = errors.New("yaml: nil decode target")
	ErrSyntax        = errors.New("yaml: invalid document")
)

// UnmarshalStrict decodes the first document in data into v. Unknown keys
// are errors, and syntax errors name the offending line.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case v == nil:
		return ErrNilTarget
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), MaxInputSize)
	case len(bytes.TrimSpace(data)) == 0:
		return ErrEmptyDocument
	}

	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := dec.Decode(v); err != nil {
		// A file holding only comments has no document.
		if errors.Is(err, io.EOF) {
			return ErrEmptyDocument
		}
		return fmt.Errorf("%w: %s", ErrSyntax, yaml.FormatError(err, false, false))
	}
	return nil
}

// Marshal encodes v with two-space indentation, writing multi-line strings
// as literal blocks.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, fmt.Errorf("yaml: encoding %T: %w", v, err)
	}
	return out, nil
}
