package stream

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/signadot/yson-format/go-yson/format"
)

func textWriter(buf *bytes.Buffer) *Writer {
	return NewWriter(buf, format.Text, format.Document)
}

func TestWriterEmptyMap(t *testing.T) {
	for _, f := range format.AllFormats() {
		var buf bytes.Buffer
		w := NewWriter(&buf, f, format.Document)
		if err := w.OnBeginMap(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.OnEndMap(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "{}" {
			t.Errorf("%v: expected %q, got %q", f, "{}", buf.String())
		}
	}
}

func TestWriterSimpleMapText(t *testing.T) {
	var buf bytes.Buffer
	w := textWriter(&buf)
	if err := w.OnBeginMap(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.OnKeyedItem([]byte("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.OnInt64Scalar(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.OnKeyedItem([]byte("b")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.OnStringScalar([]byte(`x"y`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.OnEndMap(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"a"=1;"b"="x\"y"}`
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterSimpleMapPretty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Pretty, format.Document)
	w.OnBeginMap()
	w.OnKeyedItem([]byte("a"))
	w.OnInt64Scalar(1)
	w.OnKeyedItem([]byte("b"))
	w.OnStringScalar([]byte(`x"y`))
	if err := w.OnEndMap(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "{\n  \"a\" = 1;\n  \"b\" = \"x\\\"y\"\n}"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterSimpleMapBinary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Binary, format.Document)
	w.OnBeginMap()
	w.OnKeyedItem([]byte("a"))
	w.OnInt64Scalar(1)
	w.OnKeyedItem([]byte("b"))
	w.OnStringScalar([]byte(`x"y`))
	if err := w.OnEndMap(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []byte{
		'{',
		0x01, 0x02, 'a', '=', 0x02, 0x02, ';',
		0x01, 0x02, 'b', '=', 0x01, 0x06, 'x', '"', 'y',
		'}',
	}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected % x, got % x", expected, buf.Bytes())
	}
}

func TestWriterDoubles(t *testing.T) {
	cases := []struct {
		v        float64
		expected string
	}{
		{1, "1."},
		{0.5, "0.5"},
		{-2.25, "-2.25"},
		{1e100, "1e+100"},
		{math.NaN(), "%nan"},
		{math.Inf(1), "%inf"},
		{math.Inf(-1), "%-inf"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		w := textWriter(&buf)
		if err := w.OnDoubleScalar(c.v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != c.expected {
			t.Errorf("double %v: expected %q, got %q", c.v, c.expected, buf.String())
		}
	}
}

func TestWriterDoubleListText(t *testing.T) {
	var buf bytes.Buffer
	w := textWriter(&buf)
	w.OnBeginList()
	w.OnListItem()
	w.OnDoubleScalar(1)
	w.OnListItem()
	w.OnDoubleScalar(math.NaN())
	if err := w.OnEndList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "[1.;%nan]"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterScalarsText(t *testing.T) {
	var buf bytes.Buffer
	w := textWriter(&buf)
	w.OnBeginList()
	w.OnListItem()
	w.OnUint64Scalar(7)
	w.OnListItem()
	w.OnBooleanScalar(true)
	w.OnListItem()
	w.OnBooleanScalar(false)
	w.OnListItem()
	w.OnEntity()
	if err := w.OnEndList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "[7u;%true;%false;#]"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterListFragmentText(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Text, format.ListFragment)
	w.OnListItem()
	w.OnInt64Scalar(1)
	w.OnListItem()
	w.OnStringScalar([]byte("a"))
	if err := w.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "1;\n\"a\";\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterListFragmentBinary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Binary, format.ListFragment)
	w.OnListItem()
	w.OnInt64Scalar(1)
	w.OnListItem()
	w.OnStringScalar([]byte("a"))
	if err := w.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []byte{0x02, 0x02, ';', 0x01, 0x02, 'a', ';'}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected % x, got % x", expected, buf.Bytes())
	}
}

func TestWriterMapFragmentText(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Text, format.MapFragment)
	w.OnKeyedItem([]byte("k"))
	w.OnInt64Scalar(1)
	w.OnKeyedItem([]byte("l"))
	w.OnInt64Scalar(2)
	if err := w.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "\"k\"=1;\n\"l\"=2;\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterAttributes(t *testing.T) {
	var buf bytes.Buffer
	w := textWriter(&buf)
	w.OnBeginAttributes()
	w.OnKeyedItem([]byte("k"))
	w.OnInt64Scalar(1)
	w.OnEndAttributes()
	w.OnStringScalar([]byte("v"))
	if err := w.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `<"k"=1>"v"`
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterAttributesPretty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Pretty, format.Document)
	w.OnBeginAttributes()
	w.OnKeyedItem([]byte("k"))
	w.OnInt64Scalar(1)
	w.OnEndAttributes()
	w.OnStringScalar([]byte("v"))
	if err := w.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "<\n  \"k\" = 1\n> \"v\""
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterNestedPretty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Pretty, format.Document)
	w.OnBeginMap()
	w.OnKeyedItem([]byte("xs"))
	w.OnBeginList()
	w.OnListItem()
	w.OnInt64Scalar(1)
	w.OnListItem()
	w.OnInt64Scalar(2)
	w.OnEndList()
	if err := w.OnEndMap(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "{\n  \"xs\" = [\n    1;\n    2\n  ]\n}"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterMisuseLatches(t *testing.T) {
	var buf bytes.Buffer
	w := textWriter(&buf)
	err := w.OnEndList()
	if !errors.Is(err, ErrMisuse) {
		t.Fatalf("expected misuse error, got %v", err)
	}
	// every later call returns the latched error
	if err2 := w.OnInt64Scalar(1); !errors.Is(err2, ErrMisuse) {
		t.Errorf("expected latched misuse error, got %v", err2)
	}
	if w.Err() == nil {
		t.Error("expected Err() to report the latched error")
	}
}

func TestWriterKeyedItemOutsideMap(t *testing.T) {
	var buf bytes.Buffer
	w := textWriter(&buf)
	w.OnBeginList()
	if err := w.OnKeyedItem([]byte("k")); !errors.Is(err, ErrMisuse) {
		t.Fatalf("expected misuse error, got %v", err)
	}
}

func TestWriterListItemOutsideList(t *testing.T) {
	var buf bytes.Buffer
	w := textWriter(&buf)
	if err := w.OnListItem(); !errors.Is(err, ErrMisuse) {
		t.Fatalf("expected misuse error, got %v", err)
	}
}

func TestWriterStateReset(t *testing.T) {
	var buf bytes.Buffer
	w := textWriter(&buf)
	st0 := w.State()
	if st0.Depth != 0 || !st0.BeforeFirstItem {
		t.Fatalf("unexpected initial state %+v", st0)
	}
	w.OnBeginMap()
	st1 := w.State()
	if st1.Depth != 1 {
		t.Fatalf("expected depth 1, got %d", st1.Depth)
	}
	w.OnKeyedItem([]byte("k"))
	w.OnBeginList()
	if w.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", w.Depth())
	}
	if err := w.Reset(st1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Depth() != 1 {
		t.Errorf("expected depth 1 after reset, got %d", w.Depth())
	}
	// resetting deeper than the current stack enters spliced frames
	if err := w.Reset(WriterState{Depth: 5}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if w.Depth() != 5 {
		t.Errorf("expected depth 5 after reset, got %d", w.Depth())
	}
	if err := w.Reset(WriterState{Depth: -1}); !errors.Is(err, ErrMisuse) {
		t.Errorf("expected misuse error, got %v", err)
	}
}

func TestWriterResumeInsideRawMap(t *testing.T) {
	// a pre-encoded map prefix goes out verbatim; Reset then places the
	// writer inside that map so it can finish the entries and close it
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Text, format.Document, WithRaw())
	if err := w.OnRaw([]byte(`{"a"=`), format.Document); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Reset(WriterState{Depth: 1, BeforeFirstItem: false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.OnInt64Scalar(1)
	if err := w.OnEndMap(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expected := `{"a"=1}`; buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterResumeInsideRawList(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Text, format.Document, WithRaw())
	if err := w.OnRaw([]byte(`[1;`), format.Document); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Reset(WriterState{Depth: 1, BeforeFirstItem: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.OnListItem()
	w.OnInt64Scalar(2)
	w.OnListItem()
	w.OnBeginMap()
	w.OnKeyedItem([]byte("k"))
	w.OnStringScalar([]byte("v"))
	w.OnEndMap()
	if err := w.OnEndList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expected := `[1;2;{"k"="v"}]`; buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterRawPassthrough(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Text, format.Document, WithRaw())
	raw := []byte(`{"a"=1}`)
	if err := w.OnRaw(raw, format.Document); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != string(raw) {
		t.Errorf("expected %q, got %q", raw, buf.String())
	}
}

func TestWriterRawReencoded(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Pretty, format.Document)
	if err := w.OnRaw([]byte(`{"a"=1}`), format.Document); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "{\n  \"a\" = 1\n}"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterIndentOption(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, format.Pretty, format.Document, WithIndent(4))
	w.OnBeginList()
	w.OnListItem()
	w.OnInt64Scalar(1)
	if err := w.OnEndList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "[\n    1\n]"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	w := textWriter(&buf)
	w.OnBeginList()
	w.OnListItem()
	w.OnInt64Scalar(42)
	w.OnEndList()
	if w.Offset() != int64(buf.Len()) {
		t.Errorf("offset %d does not match output length %d", w.Offset(), buf.Len())
	}
}
