// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package notify provides the user-facing notification channel consumed by
// the registration engine.
//
// The engine reports non-fatal conditions (already registered, missing
// dependency, successful removal) as fire-and-forget leveled events rather
// than errors. SlogNotifier forwards events to structured logging; Recorder
// captures them for assertions in tests.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification event.
type Level string

const (
	// LevelInfo marks informational events such as idempotent skips.
	LevelInfo Level = "info"
	// LevelError marks events that blocked an operation, such as a missing
	// dependency.
	LevelError Level = "error"
)

// Event is a single notification emitted by the engine.
type Event struct {
	// ID uniquely identifies the event.
	ID string `json:"id" yaml:"id"`

	// Level is the event severity.
	Level Level `json:"level" yaml:"level"`

	// Entry is the configuration entry the event refers to.
	Entry string `json:"entry" yaml:"entry"`

	// Message is the human-readable description.
	Message string `json:"message" yaml:"message"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewEvent creates an Event with a fresh ID and the current time.
func NewEvent(level Level, entry, message string) Event {
	return Event{
		ID:        uuid.New().String(),
		Level:     level,
		Entry:     entry,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// Notifier accepts leveled notifications from the engine. Implementations
// must not block; the engine does not consume a return value.
type Notifier interface {
	// Info reports an informational event for an entry.
	Info(entry, message string)

	// Error reports a blocking condition for an entry.
	Error(entry, message string)
}

// SlogNotifier forwards notifications to a slog.Logger.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a SlogNotifier. A nil logger uses slog.Default().
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger}
}

// Info logs the event at info level.
func (n *SlogNotifier) Info(entry, message string) {
	e := NewEvent(LevelInfo, entry, message)
	n.logger.Info(message, "entry", entry, "eventID", e.ID)
}

// Error logs the event at error level.
func (n *SlogNotifier) Error(entry, message string) {
	e := NewEvent(LevelError, entry, message)
	n.logger.Error(message, "entry", entry, "eventID", e.ID)
}

// Recorder is a Notifier that captures events in memory. Safe for concurrent
// use so apply fan-out can share one recorder across targets.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Info records an info-level event.
func (r *Recorder) Info(entry, message string) {
	r.record(NewEvent(LevelInfo, entry, message))
}

// Error records an error-level event.
func (r *Recorder) Error(entry, message string) {
	r.record(NewEvent(LevelError, entry, message))
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of all recorded events in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Errors returns only the error-level events.
func (r *Recorder) Errors() []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Level == LevelError {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
