// Package mqtt defines the broker-facing contract used to broadcast rankings.
package mqtt

import "errors"

// ErrNotConnected is returned when publishing without a broker connection.
var ErrNotConnected = errors.New("mqtt client not connected")

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
	Disconnect()
}
