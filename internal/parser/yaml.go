package parser

import (
	"fmt"
	"io"
	"math"
	"strconv"

	stderrors "errors"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsoncmp/internal/errors"
	"github.com/mcncl/jsoncmp/internal/models"
)

// maxAliasDepth bounds alias expansion so recursive anchors cannot loop
const maxAliasDepth = 64

// minNodeBudget is the number of nodes a document may always expand to.
// Beyond it, expansion is limited to aliasExpansionRatio times the number of
// nodes actually written in the document.
const (
	minNodeBudget       = 10000
	aliasExpansionRatio = 100
)

// errAliasExpansion reports a document whose aliases expand past the budget
var errAliasExpansion = stderrors.New("aliases expand to too many nodes")

// yamlWalker converts a node tree into a Value, expanding aliases and merge
// keys. Every converted node is charged against budget.
type yamlWalker struct {
	budget int
	used   int
}

func (w *yamlWalker) value(n *yaml.Node, aliases int) (models.Value, error) {
	w.used++
	if w.used > w.budget {
		return models.Value{}, errAliasExpansion
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return models.Null(), nil
		}
		return w.value(n.Content[0], aliases)

	case yaml.AliasNode:
		if aliases >= maxAliasDepth || n.Alias == nil {
			return models.Value{}, fmt.Errorf("line %d: alias nesting too deep", n.Line)
		}
		return w.value(n.Alias, aliases+1)

	case yaml.MappingNode:
		return w.mapping(n, aliases)

	case yaml.SequenceNode:
		items := make([]models.Value, len(n.Content))
		for i, child := range n.Content {
			item, err := w.value(child, aliases)
			if err != nil {
				return models.Value{}, err
			}
			items[i] = item
		}
		return models.Array(items...), nil

	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}

	return models.Value{}, fmt.Errorf("line %d: unexpected YAML node kind %d", n.Line, n.Kind)
}

// mapping converts a mapping node. Members pulled in through "<<" merge keys
// come first, in source order with earlier sources winning; explicit keys
// follow and override merged values.
func (w *yamlWalker) mapping(n *yaml.Node, aliases int) (models.Value, error) {
	var merged, explicit []models.Member
	seen := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			members, err := w.mergeSources(valueNode, aliases)
			if err != nil {
				return models.Value{}, err
			}
			for _, m := range members {
				if !seen[m.Key] {
					seen[m.Key] = true
					merged = append(merged, m)
				}
			}
			continue
		}
		if keyNode.Kind != yaml.ScalarNode {
			return models.Value{}, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		value, err := w.value(valueNode, aliases)
		if err != nil {
			return models.Value{}, err
		}
		explicit = append(explicit, models.Member{Key: keyNode.Value, Value: value})
	}
	return models.Object(append(merged, explicit...)...), nil
}

// mergeSources returns the members named by a merge key value: a mapping, or
// a sequence of mappings, possibly behind aliases
func (w *yamlWalker) mergeSources(n *yaml.Node, aliases int) ([]models.Member, error) {
	var sources []*yaml.Node
	if resolved := resolveAlias(n); resolved != nil && resolved.Kind == yaml.SequenceNode {
		sources = resolved.Content
	} else {
		sources = []*yaml.Node{n}
	}

	var members []models.Member
	for _, src := range sources {
		if resolved := resolveAlias(src); resolved == nil || resolved.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: merge value must be a mapping or a sequence of mappings", src.Line)
		}
		v, err := w.value(src, aliases)
		if err != nil {
			return nil, err
		}
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			members = append(members, models.Member{Key: key, Value: child})
		}
	}
	return members, nil
}

// resolveAlias follows alias nodes to the node they point at
func resolveAlias(n *yaml.Node) *yaml.Node {
	for depth := 0; n != nil && n.Kind == yaml.AliasNode; depth++ {
		if depth >= maxAliasDepth {
			return nil
		}
		n = n.Alias
	}
	return n
}

// countYAMLNodes counts the nodes written in the document, not following aliases
func countYAMLNodes(n *yaml.Node) int {
	count := 1
	for _, child := range n.Content {
		count += countYAMLNodes(child)
	}
	return count
}

func fromYAMLScalar(n *yaml.Node) (models.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return models.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return models.Value{}, err
		}
		return models.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return models.Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return models.Number(strconv.FormatUint(u, 10)), nil
		}
		return models.String(n.Value), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return models.Value{}, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return models.Value{}, fmt.Errorf("line %d: %s has no JSON representation", n.Line, n.Value)
		}
		return models.Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text
		return models.String(n.Value), nil
	}
}
