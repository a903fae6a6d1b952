// Package feed streams observed events to live viewers over WebSocket.
package feed

import (
	"time"

	"github.com/alexander-akhmetov/chime/internal/event"
	"github.com/alexander-akhmetov/chime/internal/session"
)

// Path is the HTTP path of the WebSocket endpoint.
const Path = "/events"

type MessageType string

const (
	MsgState MessageType = "state"
	MsgEvent MessageType = "event"
)

// Message is one frame on the feed.
type Message struct {
	Type  MessageType   `json:"type"`
	Event *EventPayload `json:"event,omitempty"`
	State *StatePayload `json:"state,omitempty"`
}

type EventPayload struct {
	Kind   string    `json:"kind"`
	Origin string    `json:"origin"`
	Muted  bool      `json:"muted"`
	At     time.Time `json:"at"`
}

type StatePayload struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

func eventMessage(ev event.Event) Message {
	return Message{Type: MsgEvent, Event: &EventPayload{
		Kind:   ev.Kind.String(),
		Origin: string(ev.Origin),
		Muted:  ev.Muted,
		At:     ev.At,
	}}
}

func stateMessage(s session.State) Message {
	return Message{Type: MsgState, State: &StatePayload{
		Errors:   s.PreviousErrors,
		Warnings: s.PreviousWarnings,
	}}
}
