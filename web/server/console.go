package server

import (
	"fmt"
	"log"
	"time"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
)

// ConsoleMessage is a renderer log line forwarded to the browser
type ConsoleMessage struct {
	Session   string    `json:"session"` // Short session id
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// WebLogger is the core.Logger given to a session's renderer. Lines go to the server
// log and, without blocking, to the session's console channel.
type WebLogger struct {
	session     string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for the session; consoleChan may be nil
func NewWebLogger(sessionID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		session:     shortID(sessionID),
		consoleChan: consoleChan,
	}
}

func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.session, message)

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{Session: wl.session, Message: message, Timestamp: time.Now()}:
	default:
		// Nobody streaming, or the stream is behind; drop the line
	}
}

// shortID returns the first block of a uuid for log prefixes
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
