package bridge

import (
	"strings"
	"testing"

	"github.com/signadot/yson-format/go-yson/node"
)

func mustTree(t *testing.T, doc string) *node.Node {
	t.Helper()
	n, err := node.Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("unmarshal %q: %v", doc, err)
	}
	return n
}

func TestJSONRoundTrip(t *testing.T) {
	n := mustTree(t, `{"a"=1;"b"=[%true;"x"];"c"=0.5;"e"=#}`)
	d, err := ToJSON(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := FromJSON(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range []string{"a", "b", "c", "e"} {
		v, _ := n.Get(k)
		bv, ok := back.Get(k)
		if !ok || !v.Equal(bv) {
			t.Errorf("key %q: expected %v, got %v", k, v, bv)
		}
	}
}

func TestJSONIntegralNumbers(t *testing.T) {
	n, err := FromJSON([]byte(`{"i": 3, "d": 3.5}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, _ := n.Get("i")
	if i == nil || i.Kind != node.Int64Kind || i.Int64 != 3 {
		t.Errorf("expected int64 3, got %+v", i)
	}
	d, _ := n.Get("d")
	if d == nil || d.Kind != node.DoubleKind || d.Double != 3.5 {
		t.Errorf("expected double 3.5, got %+v", d)
	}
}

func TestJSONAttributes(t *testing.T) {
	n := mustTree(t, `<"k"="v">42`)
	d, err := ToJSON(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(d), node.AttrsKey) {
		t.Fatalf("expected wrapped attributes in %q", d)
	}
	back, err := FromJSON(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Attrs == nil {
		t.Fatal("expected attributes to survive")
	}
	if !back.Equal(n) {
		t.Errorf("expected %v, got %v", n, back)
	}
}

func TestJSONNonFinite(t *testing.T) {
	n := mustTree(t, `%nan`)
	if _, err := ToJSON(n); err == nil {
		t.Error("expected error for NaN in JSON")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	n := mustTree(t, `{"a"=1;"xs"=["x";"y"]}`)
	d, err := ToYAML(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := FromYAML(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := back.Get("a")
	if a == nil || (a.Int64 != 1 && a.Uint64 != 1) {
		t.Errorf("expected a=1, got %+v", a)
	}
	xs, _ := back.Get("xs")
	if xs == nil || xs.Kind != node.ListKind || len(xs.Values) != 2 {
		t.Errorf("expected 2-item list, got %+v", xs)
	}
}

func TestCBORRoundTrip(t *testing.T) {
	n := mustTree(t, `{"a"=-7;"b"="x";"xs"=[0.5;%false];"e"=#}`)
	d, err := ToCBOR(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := FromCBOR(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range []string{"a", "b", "xs", "e"} {
		v, _ := n.Get(k)
		bv, ok := back.Get(k)
		if !ok {
			t.Fatalf("key %q missing after round trip", k)
		}
		if !v.Equal(bv) {
			t.Errorf("key %q: expected %v, got %v", k, v, bv)
		}
	}
}

func TestCBORDeterministic(t *testing.T) {
	n := mustTree(t, `{"b"=1;"a"=2}`)
	d1, err := ToCBOR(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d2, err := ToCBOR(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(d1) != string(d2) {
		t.Error("expected deterministic encoding")
	}
}
