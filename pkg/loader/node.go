package loader

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/vardump/internal/value"
)

// maxAliasExpansions bounds alias resolution so alias bombs cannot blow up
// the decoded tree.
const maxAliasExpansions = 10000

type nodeDecoder struct {
	mode    Mode
	aliases int
}

func fromNode(n *yaml.Node, mode Mode) (any, error) {
	d := &nodeDecoder{mode: mode}
	return d.decode(n)
}

func (d *nodeDecoder) decode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.decode(n.Content[0])
	case yaml.AliasNode:
		d.aliases++
		if d.aliases > maxAliasExpansions {
			return nil, fmt.Errorf("line %d: too many alias expansions", n.Line)
		}
		return d.decode(n.Alias)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.decode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		if d.mode == Plain {
			return d.plainMap(n)
		}
		return d.orderedMap(n)
	case yaml.ScalarNode:
		return scalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// pairs walks key/value pairs, expanding "<<" merge keys in place. Explicit
// keys declared later in the mapping override merged ones.
func (d *nodeDecoder) pairs(n *yaml.Node, fn func(k *yaml.Node, v any)) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, vn := n.Content[i], n.Content[i+1]
		if k.ShortTag() == "!!merge" {
			if err := d.merge(vn, fn); err != nil {
				return err
			}
			continue
		}
		v, err := d.decode(vn)
		if err != nil {
			return err
		}
		fn(k, v)
	}
	return nil
}

func (d *nodeDecoder) merge(n *yaml.Node, fn func(k *yaml.Node, v any)) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.MappingNode:
		return d.pairs(n, fn)
	case yaml.SequenceNode:
		for _, c := range n.Content {
			if err := d.merge(c, fn); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
	}
}

func (d *nodeDecoder) orderedMap(n *yaml.Node) (any, error) {
	m := value.NewOrderedMap(len(n.Content) / 2)
	err := d.pairs(n, func(k *yaml.Node, v any) {
		m.Set(keyOf(k), v)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (d *nodeDecoder) plainMap(n *yaml.Node) (any, error) {
	m := make(map[string]any, len(n.Content)/2)
	err := d.pairs(n, func(k *yaml.Node, v any) {
		m[k.Value] = v
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// keyOf keeps integer keys numeric; everything else is keyed by its text.
func keyOf(k *yaml.Node) value.Key {
	if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!int" {
		if n, err := strconv.ParseInt(k.Value, 0, 64); err == nil {
			return value.IntKey(n)
		}
	}
	return value.StringKey(k.Value)
}

// scalar resolves a scalar by its tag. Timestamps and binary stay textual.
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
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return u, nil
		}
		return n.Value, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
