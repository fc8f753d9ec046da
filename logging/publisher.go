package logging

import (
	"context"
	"time"
)

type EventType string

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

type EntityKind string

const (
	EntityKindUnknown  EntityKind = "unknown"
	EntityKindPlanet   EntityKind = "planet"
	EntityKindShip     EntityKind = "ship"
	EntityKindFleet    EntityKind = "fleet"
	EntityKindSystem   EntityKind = "system"
	EntityKindField    EntityKind = "field"
	EntityKindBuilding EntityKind = "building"
	EntityKindEmpire   EntityKind = "empire"
)

type Event struct {
	Type     EventType      `json:"type"`
	Turn     int            `json:"turn"`
	Time     time.Time      `json:"time"`
	Actor    EntityRef      `json:"actor"`
	Targets  []EntityRef    `json:"targets,omitempty"`
	Severity Severity       `json:"severity"`
	Category string         `json:"category,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

type EntityRef struct {
	ID   int        `json:"id"`
	Kind EntityKind `json:"kind"`
}

const (
	CategoryEffects    = "effects"
	CategoryAccounting = "accounting"
	CategorySystem     = "system"
)

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

func NopPublisher() Publisher {
	return nopPublisher{}
}

// Tee fans an event out to every publisher in order.
func Tee(pubs ...Publisher) Publisher {
	return PublisherFunc(func(ctx context.Context, event Event) {
		for _, p := range pubs {
			if p != nil {
				p.Publish(ctx, event)
			}
		}
	})
}

type fieldPublisher struct {
	next   Publisher
	fields map[string]any
}

func (p *fieldPublisher) Publish(ctx context.Context, event Event) {
	if p.next == nil {
		return
	}
	if len(p.fields) > 0 {
		event = cloneForFields(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(p.fields))
		}
		for k, v := range p.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}
	p.next.Publish(ctx, event)
}

func cloneForFields(event Event) Event {
	cloned := event
	if len(event.Targets) > 0 {
		cloned.Targets = append([]EntityRef(nil), event.Targets...)
	}
	if len(event.Extra) > 0 {
		extra := make(map[string]any, len(event.Extra))
		for k, v := range event.Extra {
			extra[k] = v
		}
		cloned.Extra = extra
	}
	return cloned
}

// WithFields wraps a publisher so every event carries the supplied extras
// unless the event already sets them.
func WithFields(next Publisher, fields map[string]any) Publisher {
	if next == nil || len(fields) == 0 {
		return next
	}
	cloned := make(map[string]any, len(fields))
	for k, v := range fields {
		cloned[k] = v
	}
	return &fieldPublisher{next: next, fields: cloned}
}

// MinSeverity drops events below the given severity before forwarding.
func MinSeverity(next Publisher, min Severity) Publisher {
	if next == nil {
		return NopPublisher()
	}
	return PublisherFunc(func(ctx context.Context, event Event) {
		if event.Severity < min {
			return
		}
		next.Publish(ctx, event)
	})
}
