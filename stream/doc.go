// Package stream implements the yson event protocol: the Consumer
// contract shared by all event sinks, the Writer that serializes events
// into any of the three wire representations, the representation-agnostic
// Parser that re-emits the event sequence of a byte stream, and the
// Reformat pipeline that wires a parser straight into a writer.
//
// Producers and consumers are decoupled through Consumer, so any
// representation converts to any other by streaming events from one side
// to the other without buffering the document. Memory use of a
// conversion is bounded by nesting depth, not document size.
package stream
