package stream

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/signadot/yson-format/go-yson/debug"
	"github.com/signadot/yson-format/go-yson/format"
	"github.com/signadot/yson-format/go-yson/token"
	"github.com/signadot/yson-format/go-yson/wire"
)

// Parser reads a byte stream and re-emits its event sequence into any
// Consumer. It is representation-agnostic: structural bytes are shared by
// all three formats and binary scalars are recognized by their marker
// bytes, so one grammar serves binary, text, and pretty input. The
// parser reads forward-only with at most one byte of lookahead and never
// backtracks.
type Parser struct {
	r    *bufio.Reader
	kind format.StreamKind
	off  int64

	// recent holds the last few consumed bytes for error context.
	recent []byte

	buf []byte
}

// NewParser creates a Parser reading a stream of the given kind from r.
func NewParser(r io.Reader, kind format.StreamKind) *Parser {
	return &Parser{
		r:    bufio.NewReader(r),
		kind: kind,
	}
}

// Parse pushes the full event sequence of the stream into c. An event
// sequence fed to a writer with the same representation and kind
// reproduces the input bytes verbatim.
func (p *Parser) Parse(c Consumer) error {
	if debug.Parse() {
		debug.Logf("parser: parse %s stream\n", p.kind)
	}
	switch p.kind {
	case format.Document:
		return p.parseDocument(c)
	case format.ListFragment:
		return p.parseListFragment(c)
	case format.MapFragment:
		return p.parseMapFragment(c)
	default:
		return fmt.Errorf("%w: stream kind %d", format.ErrBadStreamKind, p.kind)
	}
}

// ParseBytes parses d as a stream of the given kind into c.
func ParseBytes(d []byte, kind format.StreamKind, c Consumer) error {
	return ApplyRaw(c, d, kind)
}

func (p *Parser) parseDocument(c Consumer) error {
	if err := p.skipSpace(); err != nil {
		if err == io.EOF {
			return p.syntaxErr("empty document")
		}
		return err
	}
	if err := p.parseNode(c); err != nil {
		return err
	}
	err := p.skipSpace()
	if err == nil {
		return p.syntaxErr("trailing data after document value")
	}
	if err == io.EOF {
		return nil
	}
	return err
}

func (p *Parser) parseListFragment(c Consumer) error {
	for {
		if err := p.skipSpace(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := c.OnListItem(); err != nil {
			return err
		}
		if err := p.parseNode(c); err != nil {
			return err
		}
		done, err := p.fragmentSeparator()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (p *Parser) parseMapFragment(c Consumer) error {
	for {
		if err := p.skipSpace(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		key, err := p.parseKey()
		if err != nil {
			return err
		}
		if err := c.OnKeyedItem(key); err != nil {
			return err
		}
		if err := p.expectAfterSpace(token.KeyValueSeparator.Char()); err != nil {
			return err
		}
		if err := p.skipSpace(); err != nil {
			return p.eofErr(err)
		}
		if err := p.parseNode(c); err != nil {
			return err
		}
		done, err := p.fragmentSeparator()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// fragmentSeparator consumes the separator after a top-level fragment
// item. EOF either before or directly after the separator ends the
// fragment.
func (p *Parser) fragmentSeparator() (done bool, err error) {
	if err := p.skipSpace(); err != nil {
		if err == io.EOF {
			return true, nil
		}
		return false, err
	}
	b, err := p.readByte()
	if err != nil {
		return false, p.eofErr(err)
	}
	if b != ';' {
		return false, p.syntaxErr("expected item separator, got %q", b)
	}
	return false, nil
}

// parseNode parses one value, emitting its events into c. The leading
// byte dispatches: structural tokens and text scalars share the grammar
// with binary scalar markers.
func (p *Parser) parseNode(c Consumer) error {
	b, err := p.readByte()
	if err != nil {
		return p.eofErr(err)
	}
	switch {
	case b == token.BeginList.Char():
		return p.parseList(c)
	case b == token.BeginMap.Char():
		return p.parseMap(c)
	case b == token.BeginAttributes.Char():
		if err := p.parseAttributes(c); err != nil {
			return err
		}
		if err := p.skipSpace(); err != nil {
			return p.eofErr(err)
		}
		return p.parseNode(c)
	case b == token.Entity.Char():
		return c.OnEntity()
	case b == '"':
		v, err := p.parseQuotedString()
		if err != nil {
			return err
		}
		return c.OnStringScalar(v)
	case b == '%':
		return p.parsePercentLiteral(c)
	case b == token.StringMarker:
		v, err := p.parseBinaryString()
		if err != nil {
			return err
		}
		return c.OnStringScalar(v)
	case b == token.Int64Marker:
		v, err := wire.ReadInt64(p)
		if err != nil {
			return p.eofErr(err)
		}
		return c.OnInt64Scalar(v)
	case b == token.Uint64Marker:
		v, err := wire.ReadUint64(p)
		if err != nil {
			return p.eofErr(err)
		}
		return c.OnUint64Scalar(v)
	case b == token.DoubleMarker:
		v, err := wire.ReadDouble(p)
		if err != nil {
			return p.eofErr(err)
		}
		return c.OnDoubleScalar(v)
	case b == token.TrueMarker:
		return c.OnBooleanScalar(true)
	case b == token.FalseMarker:
		return c.OnBooleanScalar(false)
	case b == '-' || b == '+' || (b >= '0' && b <= '9'):
		return p.parseNumber(b, c)
	default:
		return p.syntaxErr("unexpected byte %q", b)
	}
}

func (p *Parser) parseList(c Consumer) error {
	if err := c.OnBeginList(); err != nil {
		return err
	}
	for {
		if err := p.skipSpace(); err != nil {
			return p.eofErr(err)
		}
		b, err := p.readByte()
		if err != nil {
			return p.eofErr(err)
		}
		if b == token.EndList.Char() {
			return c.OnEndList()
		}
		p.unreadByte()
		if err := c.OnListItem(); err != nil {
			return err
		}
		if err := p.parseNode(c); err != nil {
			return err
		}
		if err := p.skipSpace(); err != nil {
			return p.eofErr(err)
		}
		b, err = p.readByte()
		if err != nil {
			return p.eofErr(err)
		}
		switch b {
		case ';':
		case token.EndList.Char():
			return c.OnEndList()
		default:
			return p.syntaxErr("expected ';' or ']', got %q", b)
		}
	}
}

func (p *Parser) parseMap(c Consumer) error {
	if err := c.OnBeginMap(); err != nil {
		return err
	}
	return p.parseKeyedItems(c, token.EndMap.Char(), c.OnEndMap)
}

func (p *Parser) parseAttributes(c Consumer) error {
	if err := c.OnBeginAttributes(); err != nil {
		return err
	}
	return p.parseKeyedItems(c, token.EndAttributes.Char(), c.OnEndAttributes)
}

func (p *Parser) parseKeyedItems(c Consumer, end byte, onEnd func() error) error {
	for {
		if err := p.skipSpace(); err != nil {
			return p.eofErr(err)
		}
		b, err := p.readByte()
		if err != nil {
			return p.eofErr(err)
		}
		if b == end {
			return onEnd()
		}
		p.unreadByte()
		key, err := p.parseKey()
		if err != nil {
			return err
		}
		if err := c.OnKeyedItem(key); err != nil {
			return err
		}
		if err := p.expectAfterSpace(token.KeyValueSeparator.Char()); err != nil {
			return err
		}
		if err := p.skipSpace(); err != nil {
			return p.eofErr(err)
		}
		if err := p.parseNode(c); err != nil {
			return err
		}
		if err := p.skipSpace(); err != nil {
			return p.eofErr(err)
		}
		b, err = p.readByte()
		if err != nil {
			return p.eofErr(err)
		}
		switch b {
		case ';':
		case end:
			return onEnd()
		default:
			return p.syntaxErr("expected ';' or %q, got %q", end, b)
		}
	}
}

// parseKey reads a map key: a quoted text string or a binary string.
func (p *Parser) parseKey() ([]byte, error) {
	b, err := p.readByte()
	if err != nil {
		return nil, p.eofErr(err)
	}
	switch b {
	case '"':
		return p.parseQuotedString()
	case token.StringMarker:
		return p.parseBinaryString()
	default:
		return nil, p.syntaxErr("expected key string, got %q", b)
	}
}

// parseQuotedString reads the body of a quoted string after the opening
// quote and unescapes it.
func (p *Parser) parseQuotedString() ([]byte, error) {
	p.buf = p.buf[:0]
	esc := false
	for {
		b, err := p.readByte()
		if err != nil {
			if err == io.EOF {
				return nil, p.syntaxErrWith(token.ErrUnterminated)
			}
			return nil, err
		}
		if b == '"' && !esc {
			break
		}
		if b == '\\' {
			esc = !esc
		} else {
			esc = false
		}
		p.buf = append(p.buf, b)
	}
	v, err := token.Unescape(p.buf)
	if err != nil {
		return nil, p.syntaxErrWith(err)
	}
	return v, nil
}

func (p *Parser) parseBinaryString() ([]byte, error) {
	n, err := wire.ReadInt32(p)
	if err != nil {
		return nil, p.eofErr(err)
	}
	if n < 0 {
		return nil, p.syntaxErr("negative string length %d", n)
	}
	v := make([]byte, int(n))
	m, err := io.ReadFull(p.r, v)
	p.off += int64(m)
	if err != nil {
		return nil, p.eofErr(err)
	}
	return v, nil
}

func (p *Parser) parsePercentLiteral(c Consumer) error {
	b, err := p.readByte()
	if err != nil {
		return p.eofErr(err)
	}
	switch b {
	case 't':
		if err := p.expectLiteral("rue"); err != nil {
			return err
		}
		return c.OnBooleanScalar(true)
	case 'f':
		if err := p.expectLiteral("alse"); err != nil {
			return err
		}
		return c.OnBooleanScalar(false)
	case 'n':
		if err := p.expectLiteral("an"); err != nil {
			return err
		}
		return c.OnDoubleScalar(math.NaN())
	case 'i':
		if err := p.expectLiteral("nf"); err != nil {
			return err
		}
		return c.OnDoubleScalar(math.Inf(1))
	case '-':
		if err := p.expectLiteral("inf"); err != nil {
			return err
		}
		return c.OnDoubleScalar(math.Inf(-1))
	default:
		return p.syntaxErr("unexpected byte %q after %%", b)
	}
}

func (p *Parser) expectLiteral(rest string) error {
	for i := 0; i < len(rest); i++ {
		b, err := p.readByte()
		if err != nil {
			return p.eofErr(err)
		}
		if b != rest[i] {
			return p.syntaxErr("unexpected byte %q in literal", b)
		}
	}
	return nil
}

// parseNumber scans a text numeric literal starting with first. The
// trailing classification: a 'u' suffix makes it unsigned, a decimal
// point or exponent makes it a double, otherwise it is a signed integer.
func (p *Parser) parseNumber(first byte, c Consumer) error {
	p.buf = append(p.buf[:0], first)
	isDouble := false
	isUnsigned := false
	for {
		b, err := p.readByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if b == 'u' {
			isUnsigned = true
			break
		}
		if !isNumberByte(b) {
			p.unreadByte()
			break
		}
		if b == '.' || b == 'e' || b == 'E' {
			isDouble = true
		}
		p.buf = append(p.buf, b)
	}
	text := string(p.buf)
	switch {
	case isUnsigned:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return p.syntaxErr("bad unsigned integer literal %q", text)
		}
		return c.OnUint64Scalar(v)
	case isDouble:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return p.syntaxErr("bad double literal %q", text)
		}
		return c.OnDoubleScalar(v)
	default:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return p.syntaxErr("bad integer literal %q", text)
		}
		return c.OnInt64Scalar(v)
	}
}

func isNumberByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b == '.' || b == 'e' || b == 'E' || b == '+' || b == '-':
		return true
	default:
		return false
	}
}

func (p *Parser) skipSpace() error {
	for {
		b, err := p.readByte()
		if err != nil {
			return err
		}
		switch b {
		case ' ', '\t', '\n', '\r':
		default:
			p.unreadByte()
			return nil
		}
	}
}

func (p *Parser) expectAfterSpace(want byte) error {
	if err := p.skipSpace(); err != nil {
		return p.eofErr(err)
	}
	b, err := p.readByte()
	if err != nil {
		return p.eofErr(err)
	}
	if b != want {
		return p.syntaxErr("expected %q, got %q", want, b)
	}
	return nil
}

// ReadByte implements io.ByteReader for the varint codec, with offset
// and context bookkeeping.
func (p *Parser) ReadByte() (byte, error) {
	return p.readByte()
}

func (p *Parser) readByte() (byte, error) {
	b, err := p.r.ReadByte()
	if err != nil {
		return 0, err
	}
	p.off++
	if len(p.recent) >= 8 {
		copy(p.recent, p.recent[1:])
		p.recent = p.recent[:7]
	}
	p.recent = append(p.recent, b)
	return b, nil
}

func (p *Parser) unreadByte() {
	// readByte succeeded just before every unread, so this cannot fail.
	_ = p.r.UnreadByte()
	p.off--
	p.recent = p.recent[:len(p.recent)-1]
}

// eofErr converts a mid-token EOF into a malformed-input error; other
// errors pass through unmodified.
func (p *Parser) eofErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return p.syntaxErr("unexpected end of input")
	}
	return err
}

func (p *Parser) syntaxErr(msg string, args ...any) error {
	return p.syntaxErrWith(fmt.Errorf(msg, args...))
}

func (p *Parser) syntaxErrWith(err error) error {
	return &token.SyntaxError{
		Err:     fmt.Errorf("%w: %w", ErrMalformed, err),
		Offset:  p.off,
		Context: append([]byte(nil), p.recent...),
	}
}
