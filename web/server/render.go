package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// FrameUpdate is a single streamed frame sent via SSE
type FrameUpdate struct {
	Frame     uint32      `json:"frame"`
	ImageData string      `json:"imageData"` // Base64 encoded PNG
	Width     int         `json:"width"`     // Encoded image size, after scaling
	Height    int         `json:"height"`
	ElapsedMs int64       `json:"elapsedMs"` // Time since the stream started
	Stats     Stats       `json:"stats"`
	Camera    CameraState `json:"camera"`
}

// Stats represents per-frame render statistics
type Stats struct {
	RenderMs       int64   `json:"renderMs"`
	FPS            float64 `json:"fps"`
	Rays           int     `json:"rays"`
	Hits           int     `json:"hits"`
	Misses         int     `json:"misses"`
	SecondaryRays  int     `json:"secondaryRays"`
	Workers        int     `json:"workers"`
	PrimitiveCount int     `json:"primitiveCount"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// StreamRequest holds the stream parameters
type StreamRequest struct {
	Frames int  // Frames to send; 0 streams until the client disconnects
	Scale  int  // Integer upscale factor
	HUD    bool // Draw the status bar
}

// handleStream renders frames for a session and streams them via SSE
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	req, err := parseStreamRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.setSSEHeaders(w)

	ctx := r.Context()
	streamCtx, cancel := context.WithCancel(ctx)

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel() // a failed write stops the producers
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(streamCtx, session.consoleChan, sseEventChan)
	}()

	s.streamFrames(streamCtx, sseEventChan, session, req)

	// Stop producers before closing the channel the writer drains
	cancel()
	consoleWG.Wait()
	close(sseEventChan)
	<-writerDone
}

// streamFrames renders and sends frames until the request is satisfied or the client leaves
func (s *Server) streamFrames(ctx context.Context, sseEventChan chan SSEEvent, session *Session, req StreamRequest) {
	startTime := time.Now()

	for sent := 0; req.Frames == 0 || sent < req.Frames; sent++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result, err := session.Step()
		if err != nil {
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Frame %d failed: %v", sent, err))
			return
		}

		hud := ""
		if req.HUD {
			hud = fmt.Sprintf("%s  frame %d  %.1f fps", session.SceneName, result.Stats.Frame, result.Stats.FPS())
		}
		imageData, err := encodeFrame(result.Image, req.Scale, hud)
		if err != nil {
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode frame: %v", err))
			return
		}

		b := result.Image.Bounds()
		update := FrameUpdate{
			Frame:     result.Stats.Frame,
			ImageData: imageData,
			Width:     b.Dx() * req.Scale,
			Height:    b.Dy() * req.Scale,
			ElapsedMs: time.Since(startTime).Milliseconds(),
			Stats: Stats{
				RenderMs:       result.Stats.Duration.Milliseconds(),
				FPS:            result.Stats.FPS(),
				Rays:           result.Stats.Trace.Rays,
				Hits:           result.Stats.Trace.Hits,
				Misses:         result.Stats.Trace.Misses,
				SecondaryRays:  result.Stats.Trace.SecondaryRays(),
				Workers:        result.Stats.Workers,
				PrimitiveCount: session.PrimitiveCount,
			},
			Camera: newCameraState(result.Camera),
		}

		data, err := json.Marshal(update)
		if err != nil {
			log.Printf("Error marshaling frame update: %v", err)
			return
		}

		select {
		case sseEventChan <- SSEEvent{Type: "frame", Data: string(data)}:
		case <-ctx.Done():
			return
		}
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Streaming completed"}:
	case <-ctx.Done():
	}
}

// parseStreamRequest parses stream parameters
func parseStreamRequest(r *http.Request) (StreamRequest, error) {
	query := r.URL.Query()
	req := StreamRequest{}

	var err error
	if req.Frames, err = parseIntParam(query, "frames", 0, 0, 100000); err != nil {
		return req, err
	}
	if req.Scale, err = parseIntParam(query, "scale", 1, 1, maxScale); err != nil {
		return req, err
	}
	if req.HUD, err = parseBoolParam(query, "hud", true); err != nil {
		return req, err
	}
	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				// Channel closed
				return
			}

			// Write SSE event
			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards session log messages to the SSE channel
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
