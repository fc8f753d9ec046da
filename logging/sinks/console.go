package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"stardrift/engine/logging"
)

// ConsoleSink writes events as single log lines.
type ConsoleSink struct {
	logger *log.Logger
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{logger: log.New(w, "", log.LstdFlags)}
}

func (s *ConsoleSink) Publish(_ context.Context, event logging.Event) {
	if s.logger == nil {
		return
	}
	payload := formatPayload(event.Payload)
	targets := formatTargets(event.Targets)
	s.logger.Printf("[%s] turn=%d actor=%s severity=%s%s%s",
		event.Type, event.Turn, formatEntity(event.Actor), event.Severity, targets, payload)
}

func formatEntity(ref logging.EntityRef) string {
	if ref.Kind == "" {
		return fmt.Sprintf("%d", ref.ID)
	}
	return fmt.Sprintf("%s:%d", ref.Kind, ref.ID)
}

func formatTargets(targets []logging.EntityRef) string {
	if len(targets) == 0 {
		return ""
	}
	parts := make([]string, 0, len(targets))
	for _, target := range targets {
		parts = append(parts, formatEntity(target))
	}
	return fmt.Sprintf(" targets=%s", strings.Join(parts, ","))
}

func formatPayload(payload any) string {
	if payload == nil {
		return ""
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf(" payload=%v", payload)
	}
	return fmt.Sprintf(" payload=%s", data)
}
