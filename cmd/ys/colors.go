package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/signadot/yson-format/go-yson/format"
	"github.com/signadot/yson-format/go-yson/stream"
	"github.com/signadot/yson-format/go-yson/token"
)

type Colors struct {
	String  func(string, ...any) string
	Number  func(string, ...any) string
	Literal func(string, ...any) string
	Key     func(string, ...any) string
	Punct   func(string, ...any) string
	Attr    func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		String:  color.RGB(8, 196, 16).SprintfFunc(),
		Number:  color.RGB(128, 216, 236).SprintfFunc(),
		Literal: color.RGB(168, 0, 196).SprintfFunc(),
		Key:     color.RGB(196, 96, 16).SprintfFunc(),
		Punct:   color.RGB(255, 0, 196).SprintfFunc(),
		Attr:    color.RGB(74, 92, 138).SprintfFunc(),
	}
}

// colorizer is a consumer rendering the event stream as colorized
// pretty text. It mirrors the pretty layout of stream.Writer; the two
// are kept in sync by the view tests.
type colorizer struct {
	w      io.Writer
	colors *Colors
	kind   format.StreamKind
	indent int

	stack       []token.TokenType
	beforeFirst bool
	err         error
}

func newColorizer(w io.Writer, colors *Colors, kind format.StreamKind, indent int) *colorizer {
	if indent <= 0 {
		indent = 2
	}
	return &colorizer{
		w:           w,
		colors:      colors,
		kind:        kind,
		indent:      indent,
		beforeFirst: true,
	}
}

func (c *colorizer) print(s string) error {
	if c.err != nil {
		return c.err
	}
	if _, err := io.WriteString(c.w, s); err != nil {
		c.err = err
	}
	return c.err
}

func (c *colorizer) indentStr() string {
	n := c.indent * len(c.stack)
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func (c *colorizer) endNode() error {
	if len(c.stack) != 0 || !c.kind.IsFragment() {
		return nil
	}
	return c.print(c.colors.Punct(";") + "\n")
}

func (c *colorizer) begin(t token.TokenType) error {
	punct := c.colors.Punct
	if t == token.BeginAttributes {
		punct = c.colors.Attr
	}
	if err := c.print(punct(string(t.Char()))); err != nil {
		return err
	}
	c.stack = append(c.stack, t)
	c.beforeFirst = true
	return nil
}

func (c *colorizer) item() error {
	if len(c.stack) != 0 || !c.kind.IsFragment() {
		if !c.beforeFirst {
			if err := c.print(c.colors.Punct(";")); err != nil {
				return err
			}
		}
		if err := c.print("\n" + c.indentStr()); err != nil {
			return err
		}
	}
	c.beforeFirst = false
	return nil
}

func (c *colorizer) end(begin, end token.TokenType) error {
	if len(c.stack) == 0 || c.stack[len(c.stack)-1] != begin {
		c.err = fmt.Errorf("%w: unbalanced %s", stream.ErrMisuse, end)
		return c.err
	}
	c.stack = c.stack[:len(c.stack)-1]
	if !c.beforeFirst {
		if err := c.print("\n" + c.indentStr()); err != nil {
			return err
		}
	}
	punct := c.colors.Punct
	if end == token.EndAttributes {
		punct = c.colors.Attr
	}
	c.beforeFirst = false
	return c.print(punct(string(end.Char())))
}

func (c *colorizer) scalar(rendered string, colorFn func(string, ...any) string) error {
	if err := c.print(colorFn("%s", rendered)); err != nil {
		return err
	}
	return c.endNode()
}

func quoted(v []byte) string {
	b := append([]byte{'"'}, token.AppendEscaped(nil, v)...)
	return string(append(b, '"'))
}

func (c *colorizer) OnStringScalar(v []byte) error {
	return c.scalar(quoted(v), c.colors.String)
}

func (c *colorizer) OnInt64Scalar(v int64) error {
	return c.scalar(fmt.Sprintf("%d", v), c.colors.Number)
}

func (c *colorizer) OnUint64Scalar(v uint64) error {
	return c.scalar(fmt.Sprintf("%du", v), c.colors.Number)
}

func (c *colorizer) OnDoubleScalar(v float64) error {
	return c.scalar(string(stream.AppendDoubleText(nil, v)), c.colors.Number)
}

func (c *colorizer) OnBooleanScalar(v bool) error {
	lit := "%false"
	if v {
		lit = "%true"
	}
	return c.scalar(lit, c.colors.Literal)
}

func (c *colorizer) OnEntity() error {
	return c.scalar("#", c.colors.Literal)
}

func (c *colorizer) OnBeginList() error {
	return c.begin(token.BeginList)
}

func (c *colorizer) OnListItem() error {
	if c.err != nil {
		return c.err
	}
	return c.item()
}

func (c *colorizer) OnEndList() error {
	if err := c.end(token.BeginList, token.EndList); err != nil {
		return err
	}
	return c.endNode()
}

func (c *colorizer) OnBeginMap() error {
	return c.begin(token.BeginMap)
}

func (c *colorizer) OnKeyedItem(key []byte) error {
	if c.err != nil {
		return c.err
	}
	if err := c.item(); err != nil {
		return err
	}
	keyFn := c.colors.Key
	if len(c.stack) != 0 && c.stack[len(c.stack)-1] == token.BeginAttributes {
		keyFn = c.colors.Attr
	}
	return c.print(keyFn("%s", quoted(key)) + " " + c.colors.Punct("=") + " ")
}

func (c *colorizer) OnEndMap() error {
	if err := c.end(token.BeginMap, token.EndMap); err != nil {
		return err
	}
	return c.endNode()
}

func (c *colorizer) OnBeginAttributes() error {
	return c.begin(token.BeginAttributes)
}

func (c *colorizer) OnEndAttributes() error {
	if err := c.end(token.BeginAttributes, token.EndAttributes); err != nil {
		return err
	}
	return c.print(" ")
}

func (c *colorizer) OnRaw(raw []byte, kind format.StreamKind) error {
	return stream.ApplyRaw(c, raw, kind)
}
