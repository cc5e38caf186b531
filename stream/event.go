package stream

import (
	"fmt"

	"github.com/signadot/yson-format/go-yson/format"
)

// Event is one element of a recorded event stream. Events correspond to
// the Consumer's methods, providing a symmetric record/replay interface.
type Event struct {
	Type EventType

	// Bytes holds the payload of String, KeyedItem, and Raw events.
	Bytes []byte

	Int64  int64
	Uint64 uint64
	Double float64
	Bool   bool

	// Kind applies to Raw events only.
	Kind format.StreamKind
}

// EventType represents the type of an event.
type EventType int

const (
	EventString EventType = iota
	EventInt64
	EventUint64
	EventDouble
	EventBoolean
	EventEntity
	EventBeginList
	EventListItem
	EventEndList
	EventBeginMap
	EventKeyedItem
	EventEndMap
	EventBeginAttributes
	EventEndAttributes
	EventRaw
)

func (t EventType) String() string {
	switch t {
	case EventString:
		return "String"
	case EventInt64:
		return "Int64"
	case EventUint64:
		return "Uint64"
	case EventDouble:
		return "Double"
	case EventBoolean:
		return "Boolean"
	case EventEntity:
		return "Entity"
	case EventBeginList:
		return "BeginList"
	case EventListItem:
		return "ListItem"
	case EventEndList:
		return "EndList"
	case EventBeginMap:
		return "BeginMap"
	case EventKeyedItem:
		return "KeyedItem"
	case EventEndMap:
		return "EndMap"
	case EventBeginAttributes:
		return "BeginAttributes"
	case EventEndAttributes:
		return "EndAttributes"
	case EventRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	k := string(d)
	pt, ok := map[string]EventType{
		"String":          EventString,
		"Int64":           EventInt64,
		"Uint64":          EventUint64,
		"Double":          EventDouble,
		"Boolean":         EventBoolean,
		"Entity":          EventEntity,
		"BeginList":       EventBeginList,
		"ListItem":        EventListItem,
		"EndList":         EventEndList,
		"BeginMap":        EventBeginMap,
		"KeyedItem":       EventKeyedItem,
		"EndMap":          EventEndMap,
		"BeginAttributes": EventBeginAttributes,
		"EndAttributes":   EventEndAttributes,
		"Raw":             EventRaw,
	}[k]
	if ok {
		*t = pt
		return nil
	}
	return fmt.Errorf("unknown type %q", k)
}

// Recorder is a Consumer that records the event sequence it receives.
// Byte payloads are copied.
type Recorder struct {
	Events []Event
}

func (r *Recorder) add(ev Event) error {
	r.Events = append(r.Events, ev)
	return nil
}

func (r *Recorder) OnStringScalar(v []byte) error {
	return r.add(Event{Type: EventString, Bytes: append([]byte(nil), v...)})
}

func (r *Recorder) OnInt64Scalar(v int64) error {
	return r.add(Event{Type: EventInt64, Int64: v})
}

func (r *Recorder) OnUint64Scalar(v uint64) error {
	return r.add(Event{Type: EventUint64, Uint64: v})
}

func (r *Recorder) OnDoubleScalar(v float64) error {
	return r.add(Event{Type: EventDouble, Double: v})
}

func (r *Recorder) OnBooleanScalar(v bool) error {
	return r.add(Event{Type: EventBoolean, Bool: v})
}

func (r *Recorder) OnEntity() error {
	return r.add(Event{Type: EventEntity})
}

func (r *Recorder) OnBeginList() error {
	return r.add(Event{Type: EventBeginList})
}

func (r *Recorder) OnListItem() error {
	return r.add(Event{Type: EventListItem})
}

func (r *Recorder) OnEndList() error {
	return r.add(Event{Type: EventEndList})
}

func (r *Recorder) OnBeginMap() error {
	return r.add(Event{Type: EventBeginMap})
}

func (r *Recorder) OnKeyedItem(key []byte) error {
	return r.add(Event{Type: EventKeyedItem, Bytes: append([]byte(nil), key...)})
}

func (r *Recorder) OnEndMap() error {
	return r.add(Event{Type: EventEndMap})
}

func (r *Recorder) OnBeginAttributes() error {
	return r.add(Event{Type: EventBeginAttributes})
}

func (r *Recorder) OnEndAttributes() error {
	return r.add(Event{Type: EventEndAttributes})
}

func (r *Recorder) OnRaw(raw []byte, kind format.StreamKind) error {
	return r.add(Event{Type: EventRaw, Bytes: append([]byte(nil), raw...), Kind: kind})
}

// Replay feeds a recorded event sequence into c in order, stopping at
// the first error.
func Replay(events []Event, c Consumer) error {
	for i := range events {
		ev := &events[i]
		var err error
		switch ev.Type {
		case EventString:
			err = c.OnStringScalar(ev.Bytes)
		case EventInt64:
			err = c.OnInt64Scalar(ev.Int64)
		case EventUint64:
			err = c.OnUint64Scalar(ev.Uint64)
		case EventDouble:
			err = c.OnDoubleScalar(ev.Double)
		case EventBoolean:
			err = c.OnBooleanScalar(ev.Bool)
		case EventEntity:
			err = c.OnEntity()
		case EventBeginList:
			err = c.OnBeginList()
		case EventListItem:
			err = c.OnListItem()
		case EventEndList:
			err = c.OnEndList()
		case EventBeginMap:
			err = c.OnBeginMap()
		case EventKeyedItem:
			err = c.OnKeyedItem(ev.Bytes)
		case EventEndMap:
			err = c.OnEndMap()
		case EventBeginAttributes:
			err = c.OnBeginAttributes()
		case EventEndAttributes:
			err = c.OnEndAttributes()
		case EventRaw:
			err = c.OnRaw(ev.Bytes, ev.Kind)
		default:
			err = fmt.Errorf("unknown event type %d", ev.Type)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
