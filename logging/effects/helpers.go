// Package effects defines the event vocabulary published by the effect
// execution engine. Every entry in the error taxonomy (type mismatch,
// missing referent, malformed increment fallback, authoring warnings) maps
// to one event type here so tests and tooling can assert on them.
package effects

import (
	"context"

	"stardrift/engine/logging"
)

const (
	// EventSkipped is emitted when an effect soft-skips a target whose kind
	// does not match what the effect mutates.
	EventSkipped logging.EventType = "effects.skipped"
	// EventMissingReferent is emitted when a referenced tech, species,
	// design, empire or meter cannot be found.
	EventMissingReferent logging.EventType = "effects.missing_referent"
	// EventFallback is emitted when a claimed fast-path expression shape
	// fails inspection and the effect reverts to generic per-target
	// evaluation.
	EventFallback logging.EventType = "effects.fallback"
	// EventGroupNoSource is emitted when a group executes without a source
	// object bound in its context.
	EventGroupNoSource logging.EventType = "effects.group_no_source"
	// EventAuthoringWarning flags content shapes that are accepted but
	// probably diverge from author intent.
	EventAuthoringWarning logging.EventType = "effects.authoring_warning"
	// EventRouteRejected is emitted when a movement effect cannot commit a
	// route (unreachable, out of range, or no valid start).
	EventRouteRejected logging.EventType = "effects.route_rejected"
)

type SkippedPayload struct {
	Effect string `json:"effect"`
	Reason string `json:"reason"`
}

func Skipped(ctx context.Context, pub logging.Publisher, turn int, actor, target logging.EntityRef, effect, reason string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSkipped,
		Turn:     turn,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEffects,
		Payload:  SkippedPayload{Effect: effect, Reason: reason},
	})
}

type MissingReferentPayload struct {
	Effect   string `json:"effect"`
	Referent string `json:"referent"`
	Name     string `json:"name,omitempty"`
	ID       int    `json:"id,omitempty"`
}

func MissingReferent(ctx context.Context, pub logging.Publisher, turn int, actor logging.EntityRef, payload MissingReferentPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMissingReferent,
		Turn:     turn,
		Actor:    actor,
		Severity: logging.SeverityError,
		Category: logging.CategoryEffects,
		Payload:  payload,
	})
}

type FallbackPayload struct {
	Effect string `json:"effect"`
	Reason string `json:"reason"`
}

func Fallback(ctx context.Context, pub logging.Publisher, turn int, actor logging.EntityRef, effect, reason string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventFallback,
		Turn:     turn,
		Actor:    actor,
		Severity: logging.SeverityError,
		Category: logging.CategoryEffects,
		Payload:  FallbackPayload{Effect: effect, Reason: reason},
	})
}

func GroupNoSource(ctx context.Context, pub logging.Publisher, turn int, contentName string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventGroupNoSource,
		Turn:     turn,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryEffects,
		Payload:  map[string]string{"content": contentName},
	})
}

func AuthoringWarning(ctx context.Context, pub logging.Publisher, effect, detail string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAuthoringWarning,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryEffects,
		Payload:  map[string]string{"effect": effect, "detail": detail},
	})
}

type RouteRejectedPayload struct {
	Effect string `json:"effect"`
	Reason string `json:"reason"`
	Fleet  int    `json:"fleet"`
}

func RouteRejected(ctx context.Context, pub logging.Publisher, turn int, payload RouteRejectedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRouteRejected,
		Turn:     turn,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEffects,
		Payload:  payload,
	})
}
