// Package yaml feeds YAML documents to serde schemas.
//
// The document is decoded into a yaml.v3 node tree and converted into the
// same raw value shapes the JSON drivers produce: mappings become
// serde.Object (order and duplicate keys preserved), !!int and !!float
// scalars become json.Number, !!bool and !!null map onto their JSON
// counterparts and every other scalar is a string.
package yaml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	serde "github.com/opikgo/serde"
)

var (
	// ErrMultipleDocuments is returned when the input holds more than one document.
	ErrMultipleDocuments = errors.New("yaml: expected a single document")
	// ErrAliasExpansion is returned when aliases expand the document far
	// beyond the size of its node tree.
	ErrAliasExpansion = errors.New("yaml: document expands too much through aliases")
)

// Reader decodes one YAML document from r.
func Reader(r io.Reader) serde.Source {
	raw, err := Decode(r)
	if err != nil {
		return serde.ErrorSource(err)
	}
	return serde.ValueSource(raw)
}

// Bytes decodes one YAML document from data.
func Bytes(data []byte) serde.Source { return Reader(bytes.NewReader(data)) }

// Decode reads exactly one YAML document from r into a raw value. An empty
// input decodes as null.
func Decode(r io.Reader) (any, error) {
	dec := yaml.NewDecoder(r)
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrMultipleDocuments
	}
	w := walker{budget: max(countNodes(&doc)*expansionRatio, minExpansion)}
	return w.toRaw(&doc, 0)
}

const (
	// maxAliasDepth bounds alias nesting.
	maxAliasDepth = 64
	// expansionRatio and minExpansion bound the number of nodes produced
	// relative to the nodes actually written in the document.
	expansionRatio = 100
	minExpansion   = 10000
)

// countNodes counts the nodes of the tree without following aliases.
func countNodes(n *yaml.Node) int {
	c := 1
	for _, child := range n.Content {
		c += countNodes(child)
	}
	return c
}

type walker struct {
	budget int
}

func (w *walker) toRaw(n *yaml.Node, aliases int) (any, error) {
	w.budget--
	if w.budget < 0 {
		return nil, fmt.Errorf("%w (line %d)", ErrAliasExpansion, n.Line)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.toRaw(n.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return nil, fmt.Errorf("yaml: line %d: alias nesting too deep", n.Line)
		}
		return w.toRaw(n.Alias, aliases+1)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := w.toRaw(c, aliases)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(serde.Object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("yaml: line %d: mapping keys must be scalars", k.Line)
			}
			v, err := w.toRaw(n.Content[i+1], aliases)
			if err != nil {
				return nil, err
			}
			out = append(out, serde.Member{Key: k.Value, Value: v})
		}
		return out, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
}

func scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), nil
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("yaml: line %d: %s is not representable in JSON", n.Line, n.Value)
		}
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return n.Value, nil
	}
}
