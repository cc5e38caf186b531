// Package bridge converts yson documents to and from other structured
// data formats. Values carrying attributes round-trip through a
// {"$attributes": ..., "$value": ...} wrapper, since none of the target
// formats have a native notion of annotated values.
package bridge

import (
	"encoding/json"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"

	"github.com/signadot/yson-format/go-yson/node"
)

// cbor modes are configured once: deterministic encoding so the same
// tree always produces the same bytes, and string-keyed maps on decode
// so trees built from any-typed targets keep string keys.
var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bridge: cbor encoder init: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("bridge: cbor decoder init: " + err.Error())
	}
}

// ToJSON renders a tree as JSON. Map keys come out sorted by
// encoding/json; NaN and infinite doubles are not representable and
// return an error.
func ToJSON(n *node.Node) ([]byte, error) {
	return json.Marshal(n.ToAny())
}

// FromJSON parses a JSON document into a tree. JSON numbers become
// doubles unless they are integral, in which case they become int64s.
func FromJSON(d []byte) (*node.Node, error) {
	var v any
	if err := json.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return node.FromAny(normalizeJSONNumbers(v))
}

// normalizeJSONNumbers rewrites float64s with no fractional part into
// int64s, recursively. encoding/json decodes every number as float64;
// integral values read better, and round-trip, as int64 nodes.
func normalizeJSONNumbers(v any) any {
	switch x := v.(type) {
	case float64:
		if i := int64(x); float64(i) == x {
			return i
		}
		return x
	case []any:
		for i := range x {
			x[i] = normalizeJSONNumbers(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalizeJSONNumbers(x[k])
		}
		return x
	}
	return v
}

// ToYAML renders a tree as YAML.
func ToYAML(n *node.Node) ([]byte, error) {
	return yaml.Marshal(n.ToAny())
}

// FromYAML parses a YAML document into a tree.
func FromYAML(d []byte) (*node.Node, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return node.FromAny(v)
}

// ToCBOR renders a tree as deterministically encoded CBOR.
func ToCBOR(n *node.Node) ([]byte, error) {
	return cborEnc.Marshal(n.ToAny())
}

// FromCBOR parses a CBOR document into a tree.
func FromCBOR(d []byte) (*node.Node, error) {
	var v any
	if err := cborDec.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return node.FromAny(v)
}
