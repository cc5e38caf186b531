package token

type TokenType int

const (
	BeginList TokenType = iota
	EndList
	BeginMap
	EndMap
	BeginAttributes
	EndAttributes
	Entity
	ListItemSeparator
	KeyedItemSeparator
	KeyValueSeparator
)

func (t TokenType) String() string {
	return map[TokenType]string{
		BeginList:          "BeginList",
		EndList:            "EndList",
		BeginMap:           "BeginMap",
		EndMap:             "EndMap",
		BeginAttributes:    "BeginAttributes",
		EndAttributes:      "EndAttributes",
		Entity:             "Entity",
		ListItemSeparator:  "ListItemSeparator",
		KeyedItemSeparator: "KeyedItemSeparator",
		KeyValueSeparator:  "KeyValueSeparator",
	}[t]
}

// Char returns the one-byte encoding of t. The byte is the same in all
// three representations; only scalar values switch encoding.
func (t TokenType) Char() byte {
	return map[TokenType]byte{
		BeginList:          '[',
		EndList:            ']',
		BeginMap:           '{',
		EndMap:             '}',
		BeginAttributes:    '<',
		EndAttributes:      '>',
		Entity:             '#',
		ListItemSeparator:  ';',
		KeyedItemSeparator: ';',
		KeyValueSeparator:  '=',
	}[t]
}

// FromChar maps a structural byte back to its token type. ';' maps to
// ListItemSeparator; the keyed separator shares the byte.
func FromChar(c byte) (TokenType, bool) {
	t, ok := map[byte]TokenType{
		'[': BeginList,
		']': EndList,
		'{': BeginMap,
		'}': EndMap,
		'<': BeginAttributes,
		'>': EndAttributes,
		'#': Entity,
		';': ListItemSeparator,
		'=': KeyValueSeparator,
	}[c]
	return t, ok
}

// Binary scalar markers. A marker byte introduces a binary-encoded scalar
// in an otherwise structural byte stream.
const (
	StringMarker byte = 0x01
	Int64Marker  byte = 0x02
	DoubleMarker byte = 0x03
	FalseMarker  byte = 0x04
	TrueMarker   byte = 0x05
	Uint64Marker byte = 0x06
)
