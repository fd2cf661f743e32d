package ast

import (
	"encoding/json"
	"fmt"
)

// nodeJSON is the wire shape for Node: children are stored as
// discriminated values (see typedChild) so Unmarshal can tell a nested
// *Node from a primitive, and an int64 literal from a float64 one --
// encoding/json collapses both JSON number kinds into float64 once
// decoded into a bare interface{} slot, which would otherwise corrupt
// every literal integer round-tripped through "-ast-json".
type nodeJSON struct {
	Type     NodeType     `json:"type"`
	Children []typedChild `json:"children,omitempty"`
}

// typedChild tags one Children entry with the Go type it must decode
// back into. Location is deliberately not part of the wire format: a
// hand-authored "-ast-json" literal has no source buffer to point a
// Location at, the same way a "-ast-sexp" literal carries none.
type typedChild struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes n so every child round-trips through
// UnmarshalJSON as the same Go type it held before encoding.
func (n *Node) MarshalJSON() ([]byte, error) {
	children := make([]typedChild, len(n.Children))
	for i, c := range n.Children {
		tc, err := marshalChild(c)
		if err != nil {
			return nil, err
		}
		children[i] = tc
	}
	return json.Marshal(nodeJSON{Type: n.Type, Children: children})
}

func marshalChild(c any) (typedChild, error) {
	switch v := c.(type) {
	case *Node:
		raw, err := json.Marshal(v)
		if err != nil {
			return typedChild{}, err
		}
		return typedChild{Kind: "node", Value: raw}, nil
	case nil:
		return typedChild{Kind: "nil"}, nil
	case string:
		raw, err := json.Marshal(v)
		return typedChild{Kind: "string", Value: raw}, err
	case int64:
		raw, err := json.Marshal(v)
		return typedChild{Kind: "int", Value: raw}, err
	case float64:
		raw, err := json.Marshal(v)
		return typedChild{Kind: "float", Value: raw}, err
	case bool:
		raw, err := json.Marshal(v)
		return typedChild{Kind: "bool", Value: raw}, err
	default:
		return typedChild{}, fmt.Errorf("ast: cannot JSON-encode a %T child", c)
	}
}

// UnmarshalJSON decodes n from the wire shape MarshalJSON produces, the
// format the CLI's "-ast-json" ingestion flag reads (SPEC_FULL.md §15).
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	children := make([]any, len(raw.Children))
	for i, tc := range raw.Children {
		v, err := unmarshalChild(tc)
		if err != nil {
			return err
		}
		children[i] = v
	}
	n.Type = raw.Type
	n.Children = children
	n.Loc = nil
	return nil
}

func unmarshalChild(tc typedChild) (any, error) {
	switch tc.Kind {
	case "node":
		var child Node
		if err := json.Unmarshal(tc.Value, &child); err != nil {
			return nil, err
		}
		return &child, nil
	case "nil":
		return nil, nil
	case "string":
		var s string
		err := json.Unmarshal(tc.Value, &s)
		return s, err
	case "int":
		var i int64
		err := json.Unmarshal(tc.Value, &i)
		return i, err
	case "float":
		var f float64
		err := json.Unmarshal(tc.Value, &f)
		return f, err
	case "bool":
		var b bool
		err := json.Unmarshal(tc.Value, &b)
		return b, err
	default:
		return nil, fmt.Errorf("ast: unknown JSON child kind %q", tc.Kind)
	}
}
