package vault

import (
	"context"
	"fmt"

	"github.com/tendermint/tendermint/libs/common"
)

// Event describes an observable state transition, for example a recovery
// being triggered. Consumers (wallet front-ends, notification services)
// subscribe to events by their type.
type Event struct {
	Type       string
	Attributes []common.KVPair
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, kv := range e.Attributes {
		if string(kv.Key) == key {
			return string(kv.Value), true
		}
	}
	return "", false
}

// EventLog collects events emitted while processing a single operation.
type EventLog struct {
	events []Event
}

// Events returns all collected events in the order they were emitted.
func (l *EventLog) Events() []Event {
	if l == nil {
		return nil
	}
	return l.events
}

// Append adds events to the log. Appending to a nil log is a no-op.
func (l *EventLog) Append(events ...Event) {
	if l == nil {
		return
	}
	l.events = append(l.events, events...)
}

// GetEventLog returns the event log set in the context or nil.
func GetEventLog(ctx Context) *EventLog {
	l, _ := ctx.Value(contextKeyEvents).(*EventLog)
	return l
}

// WithEventLog sets the log that events emitted within the context are
// appended to.
func WithEventLog(ctx Context, l *EventLog) Context {
	return context.WithValue(ctx, contextKeyEvents, l)
}

// EmitEvent records an event of given type. Attributes are given as key
// value pairs, values are formatted with %v.
// The event is also written to the context logger. When no event log is set
// in the context, the event is only logged.
func EmitEvent(ctx Context, typ string, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		panic("odd number of event attributes")
	}
	ev := Event{Type: typ}
	for i := 0; i < len(keyvals); i += 2 {
		ev.Attributes = append(ev.Attributes, common.KVPair{
			Key:   []byte(fmt.Sprint(keyvals[i])),
			Value: []byte(fmt.Sprint(keyvals[i+1])),
		})
	}
	GetEventLog(ctx).Append(ev)
	GetLogger(ctx).Info("event", append([]interface{}{"type", typ}, keyvals...)...)
}
