package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-rain-city-raytracer/pkg/config"
	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
	"github.com/df07/go-rain-city-raytracer/pkg/scene"
)

//go:embed static
var staticFiles embed.FS

// Request limits
const (
	minFrameSize   = 16
	maxFrameWidth  = 1920
	maxFrameHeight = 1080
	maxScale       = 4
	maxDolly       = 50.0
	maxSessions    = 16
)

// Server handles web requests for the rain city raytracer
type Server struct {
	cfg      config.Config
	sessions *SessionStore
}

// NewServer creates a new web server
func NewServer(cfg config.Config) *Server {
	return &Server{
		cfg:      cfg,
		sessions: NewSessionStore(maxSessions),
	}
}

// SessionResponse describes a session to the client
type SessionResponse struct {
	ID     string      `json:"id"`
	Scene  string      `json:"scene"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Camera CameraState `json:"camera"`
}

// CameraState is the JSON form of a camera
type CameraState struct {
	Eye    [3]float64 `json:"eye"`
	Center [3]float64 `json:"center"`
}

func newCameraState(c renderer.Camera) CameraState {
	return CameraState{
		Eye:    [3]float64{c.Eye.X, c.Eye.Y, c.Eye.Z},
		Center: [3]float64{c.Center.X, c.Center.Y, c.Center.Z},
	}
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded directory is always present
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/dolly", s.handleDolly)
	mux.HandleFunc("GET /api/sessions/{id}/stream", s.handleStream)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	defer s.sessions.CloseAll()

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// handleScenes lists the registered scenes grouped by category
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleCreateSession builds the requested scene and starts a session for it
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = s.cfg.Scene
	}

	width, err := parseIntParam(query, "width", min(s.cfg.Width, maxFrameWidth), minFrameSize, maxFrameWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	height, err := parseIntParam(query, "height", min(s.cfg.Height, maxFrameHeight), minFrameSize, maxFrameHeight)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sceneObj, err := scene.NewScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, err := s.sessions.Create(sceneObj, width, height, s.cfg.RenderConfig())
	if err != nil {
		writeError(w, http.StatusTooManyRequests, err)
		return
	}

	log.Printf("Session %s created: scene %s at %dx%d", shortID(session.ID), sceneObj.Name, width, height)
	writeJSON(w, http.StatusCreated, sessionResponse(session))
}

// handleGetSession describes an existing session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(session))
}

// handleDeleteSession stops a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDolly moves a session's camera along its view direction
func (s *Server) handleDolly(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	distance, err := parseFloatParam(r.URL.Query(), "distance", s.cfg.DollyStep, -maxDolly, maxDolly)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	camera := session.Dolly(distance)
	writeJSON(w, http.StatusOK, newCameraState(camera))
}

func sessionResponse(session *Session) SessionResponse {
	width, height := session.Size()
	return SessionResponse{
		ID:     session.ID,
		Scene:  session.SceneName,
		Width:  width,
		Height: height,
		Camera: newCameraState(session.Camera()),
	}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if errors.Is(err, scene.ErrUnknownScene) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
