package kometa

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SentinelText is the whole content of a document with no matching shows.
const SentinelText = "#No matching shows found"

type documentKind int

const (
	kindMapping documentKind = iota
	kindSentinel
	kindSuppressed
)

// Document is a rendered output document.
type Document struct {
	kind documentKind
	root *Map
}

// MappingDocument wraps root as a structured document.
func MappingDocument(root *Map) Document {
	return Document{kind: kindMapping, root: root}
}

// Sentinel returns the "no matching shows" document.
func Sentinel() Document {
	return Document{kind: kindSentinel}
}

// Suppressed returns a document that must not be written.
func Suppressed() Document {
	return Document{kind: kindSuppressed}
}

// IsSentinel reports whether d is the "no matching shows" document.
func (d Document) IsSentinel() bool { return d.kind == kindSentinel }

// IsSuppressed reports whether d should be skipped entirely.
func (d Document) IsSuppressed() bool { return d.kind == kindSuppressed }

// Root returns the top-level mapping, or nil for sentinel and suppressed
// documents.
func (d Document) Root() *Map { return d.root }

// Bytes serializes the document. Suppressed documents serialize to nothing.
func (d Document) Bytes() ([]byte, error) {
	switch d.kind {
	case kindSentinel:
		return []byte(SentinelText), nil
	case kindSuppressed:
		return nil, nil
	}
	root := d.root
	if root == nil {
		root = NewMap()
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root.node()); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}
