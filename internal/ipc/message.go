// Package ipc is the request/response and event channel between the host
// and the view. A Peer sits on either end of a Conn; the Conn may be an
// in-memory pipe or a JSON-lines stream.
package ipc

import (
	"scribe/internal/errors"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// MessageType tells the receiving Peer how to dispatch a Message.
type MessageType string

const (
	TypeRequest  MessageType = "request"
	TypeResponse MessageType = "response"
	TypeEvent    MessageType = "event"
)

// Message is one frame on a Conn. A response carries the ID of the request
// it answers.
type Message struct {
	ID      string           `json:"id"`
	Type    MessageType      `json:"type"`
	Channel string           `json:"channel"`
	Payload json.RawMessage  `json:"payload,omitempty"`
	Error   string           `json:"error,omitempty"`
	Kind    errors.ErrorKind `json:"kind,omitempty"`
}

// NewMessage builds a message with a fresh ID and payload encoded as JSON.
func NewMessage(typ MessageType, channel string, payload interface{}) (*Message, error) {
	raw, err := encodePayload(channel, payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		ID:      uuid.NewString(),
		Type:    typ,
		Channel: channel,
		Payload: raw,
	}, nil
}

// Decode unmarshals the payload into v. An empty payload leaves v untouched.
func (m *Message) Decode(v interface{}) error {
	if v == nil || len(m.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return errors.NewProtocolError("malformed payload", m.Channel, errors.DecodeFailed, err)
	}
	return nil
}

// Failed reports whether the message is an error response.
func (m *Message) Failed() bool {
	return m.Type == TypeResponse && m.Error != ""
}

// Err returns the error carried by a failed response.
func (m *Message) Err() error {
	if !m.Failed() {
		return nil
	}
	kind := m.Kind
	if kind == errors.Unknown {
		kind = errors.RemoteFailure
	}
	return errors.NewProtocolError(m.Error, m.Channel, kind, nil)
}

func (m *Message) clone() *Message {
	c := *m
	if m.Payload != nil {
		c.Payload = append(json.RawMessage(nil), m.Payload...)
	}
	return &c
}

func encodePayload(channel string, payload interface{}) (json.RawMessage, error) {
	if payload == nil {
		return nil, nil
	}
	if raw, ok := payload.(json.RawMessage); ok {
		return raw, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewProtocolError("cannot encode payload", channel, errors.EncodeFailed, err)
	}
	return raw, nil
}
