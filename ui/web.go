package ui

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/Ar10Ansari/BASIC-CALCULATOR/config"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/evaluator"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/history"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/persistence"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/core/session"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/metrics"
	"github.com/Ar10Ansari/BASIC-CALCULATOR/models"
)

type WebInterface struct {
	sessions *session.Manager
	history  *history.HistoryManager
	pers     *persistence.PersistenceManager
	cfg      *config.Config
	upgrader websocket.Upgrader
}

func NewWebInterface(sessions *session.Manager, hist *history.HistoryManager, pers *persistence.PersistenceManager, cfg *config.Config) *WebInterface {
	return &WebInterface{
		sessions: sessions,
		history:  hist,
		pers:     pers,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Claims - JWT с идентификатором сессии вместо имени пользователя
type Claims struct {
	SessionID string `json:"sub"`
	jwt.RegisteredClaims
}

// WSMessage - сообщение живого протокола калькулятора
type WSMessage struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Theme     string `json:"theme"`
}

type InputRequest struct {
	Action     string `json:"action"`
	Token      string `json:"token,omitempty"`
	Expression string `json:"expression,omitempty"`
}

type StateResponse struct {
	Expression string `json:"expression"`
	Preview    string `json:"preview"`
	Theme      string `json:"theme"`
}

type ResultResponse struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Theme      string `json:"theme"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type ThemeRequest struct {
	Theme  string `json:"theme,omitempty"`
	Toggle bool   `json:"toggle,omitempty"`
}

type ThemeResponse struct {
	Theme   string         `json:"theme"`
	Palette models.Palette `json:"palette"`
}

// Middleware для метрик
func metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrapper для захвата статус кода
		wrapped := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(wrapped, r)

		duration := time.Since(start).Seconds()

		metrics.HttpRequestsTotal.WithLabelValues(
			r.Method,
			r.URL.Path,
			strconv.Itoa(wrapped.statusCode),
		).Inc()

		metrics.HttpRequestDuration.WithLabelValues(
			r.Method,
			r.URL.Path,
		).Observe(duration)
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (w *WebInterface) createToken(sessionID string) (string, error) {
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(60 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(w.cfg.JWTSecret))
}

func (w *WebInterface) verifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(w.cfg.JWTSecret), nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims.SessionID, nil
	}

	return "", errors.New("invalid token")
}

func (w *WebInterface) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(wr http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || len(authHeader) < 8 {
			http.Error(wr, "Missing authorization header", http.StatusUnauthorized)
			return
		}

		tokenString := authHeader[7:]
		sessionID, err := w.verifyToken(tokenString)
		if err != nil {
			http.Error(wr, "Invalid token", http.StatusUnauthorized)
			return
		}

		r.Header.Set("X-Session-ID", sessionID)
		next(wr, r)
	}
}

// sessionFromRequest - сессия, положенная в заголовок authMiddleware
func (w *WebInterface) sessionFromRequest(wr http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := w.sessions.Get(r.Header.Get("X-Session-ID"))
	if !ok {
		http.Error(wr, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// previewOf - предпросмотр с учётом в метриках
func (w *WebInterface) previewOf(s *session.Session) string {
	start := time.Now()
	preview := s.Preview()
	metrics.EvaluationDuration.WithLabelValues("preview").Observe(time.Since(start).Seconds())

	outcome := "success"
	if preview == "" {
		outcome = "error"
	}
	metrics.EvaluationsTotal.WithLabelValues("preview", outcome).Inc()

	return preview
}

func (w *WebInterface) stateOf(s *session.Session) StateResponse {
	return StateResponse{
		Expression: s.Expression(),
		Preview:    w.previewOf(s),
		Theme:      s.Theme(),
	}
}

// failureKind - класс ошибки вычисления для клиента
func failureKind(err error) string {
	switch {
	case errors.Is(err, evaluator.ErrInvalidExpression):
		return "invalid"
	case errors.Is(err, evaluator.ErrUnsafeExpression):
		return "unsafe"
	default:
		return "error"
	}
}

// persistTheme - тема сохраняется глобально и наследуется новыми сессиями
func (w *WebInterface) persistTheme(name string) {
	w.pers.SaveTheme(name)
	w.sessions.SetDefaultTheme(name)
}

func (w *WebInterface) handleCreateSession(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(wr, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s := w.sessions.Create()
	token, err := w.createToken(s.ID)
	if err != nil {
		w.sessions.Remove(s.ID)
		http.Error(wr, "Failed to create token", http.StatusInternalServerError)
		return
	}

	metrics.UpdateCalculatorMetrics(w.sessions.Count(), w.history.GetHistoryCount())
	log.Printf("[Web] Session created: %s", s.ID)

	wr.Header().Set("Content-Type", "application/json")
	json.NewEncoder(wr).Encode(SessionResponse{
		SessionID: s.ID,
		Token:     token,
		Theme:     s.Theme(),
	})
}

func (w *WebInterface) handleInput(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(wr, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := w.sessionFromRequest(wr, r)
	if !ok {
		return
	}

	var req InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(wr, "Invalid request", http.StatusBadRequest)
		return
	}

	switch req.Action {
	case "press":
		s.Press(req.Token)
	case "backspace":
		s.Backspace()
	case "clear":
		s.Clear()
	case "set":
		s.SetExpression(req.Expression)
	default:
		http.Error(wr, "Unknown action", http.StatusBadRequest)
		return
	}

	wr.Header().Set("Content-Type", "application/json")
	json.NewEncoder(wr).Encode(w.stateOf(s))
}

func (w *WebInterface) handleEvaluate(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(wr, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := w.sessionFromRequest(wr, r)
	if !ok {
		return
	}

	expr := s.Expression()
	start := time.Now()
	result, err := s.Commit()
	metrics.EvaluationDuration.WithLabelValues("commit").Observe(time.Since(start).Seconds())

	wr.Header().Set("Content-Type", "application/json")

	if err != nil {
		kind := failureKind(err)
		metrics.EvaluationsTotal.WithLabelValues("commit", kind).Inc()
		wr.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(wr).Encode(ErrorResponse{Error: err.Error(), Kind: kind})
		return
	}

	metrics.EvaluationsTotal.WithLabelValues("commit", "success").Inc()
	metrics.UpdateCalculatorMetrics(w.sessions.Count(), w.history.GetHistoryCount())

	json.NewEncoder(wr).Encode(ResultResponse{
		Expression: expr,
		Result:     result,
		Theme:      s.Theme(),
	})
}

func (w *WebInterface) handleState(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(wr, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := w.sessionFromRequest(wr, r)
	if !ok {
		return
	}

	wr.Header().Set("Content-Type", "application/json")
	json.NewEncoder(wr).Encode(w.stateOf(s))
}

func (w *WebInterface) handleTheme(wr http.ResponseWriter, r *http.Request) {
	s, ok := w.sessionFromRequest(wr, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		// Ничего не меняем, просто отдаём палитру
	case http.MethodPost:
		var req ThemeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(wr, "Invalid request", http.StatusBadRequest)
			return
		}

		if req.Toggle {
			s.ToggleTheme()
		} else if err := s.SetTheme(req.Theme); err != nil {
			http.Error(wr, err.Error(), http.StatusBadRequest)
			return
		}

		w.persistTheme(s.Theme())
		log.Printf("[Web] Theme changed: %s", s.Theme())
	default:
		http.Error(wr, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	wr.Header().Set("Content-Type", "application/json")
	json.NewEncoder(wr).Encode(ThemeResponse{
		Theme:   s.Theme(),
		Palette: s.Palette(),
	})
}

func (w *WebInterface) handleHistory(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(wr, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	var entries []models.HistoryEntry
	if q := r.URL.Query().Get("q"); q != "" {
		entries = w.history.SearchHistory(q)
	} else {
		entries = w.history.GetHistory(limit)
	}

	wr.Header().Set("Content-Type", "application/json")
	if len(entries) == 0 {
		json.NewEncoder(wr).Encode([]models.HistoryEntry{})
		return
	}
	json.NewEncoder(wr).Encode(entries)
}

func (w *WebInterface) handleClearHistory(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(wr, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.history.ClearHistory()
	metrics.UpdateCalculatorMetrics(w.sessions.Count(), w.history.GetHistoryCount())
	wr.WriteHeader(http.StatusOK)
}

func (w *WebInterface) handleWebSocket(wr http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(wr, "Token required", http.StatusUnauthorized)
		return
	}

	sessionID, err := w.verifyToken(token)
	if err != nil {
		http.Error(wr, "Invalid token", http.StatusUnauthorized)
		return
	}

	s, ok := w.sessions.Get(sessionID)
	if !ok {
		http.Error(wr, "Session not found", http.StatusNotFound)
		return
	}

	conn, err := w.upgrader.Upgrade(wr, r, nil)
	if err != nil {
		log.Printf("[Web] WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	metrics.ActiveWSConnections.Inc()
	log.Printf("[Web] WebSocket connected: %s", sessionID)

	w.sendState(conn, s)

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("[Web] WebSocket read error for %s: %v", sessionID, err)
			break
		}

		switch msg.Event {
		case "press":
			token, _ := msg.Data["token"].(string)
			s.Press(token)
			w.sendState(conn, s)

		case "backspace":
			s.Backspace()
			w.sendState(conn, s)

		case "clear":
			s.Clear()
			w.sendState(conn, s)

		case "set":
			text, _ := msg.Data["expression"].(string)
			s.SetExpression(text)
			w.sendState(conn, s)

		case "equals":
			expr := s.Expression()
			start := time.Now()
			result, err := s.Commit()
			metrics.EvaluationDuration.WithLabelValues("commit").Observe(time.Since(start).Seconds())

			if err != nil {
				kind := failureKind(err)
				metrics.EvaluationsTotal.WithLabelValues("commit", kind).Inc()
				conn.WriteJSON(map[string]interface{}{
					"event": "error",
					"data": map[string]interface{}{
						"error":      err.Error(),
						"kind":       kind,
						"expression": expr,
					},
				})
				continue
			}

			metrics.EvaluationsTotal.WithLabelValues("commit", "success").Inc()
			metrics.UpdateCalculatorMetrics(w.sessions.Count(), w.history.GetHistoryCount())
			conn.WriteJSON(map[string]interface{}{
				"event": "result",
				"data": map[string]interface{}{
					"expression": expr,
					"result":     result,
				},
			})

		case "theme":
			if name, ok := msg.Data["theme"].(string); ok && name != "" {
				if err := s.SetTheme(name); err != nil {
					conn.WriteJSON(map[string]interface{}{
						"event": "error",
						"data":  map[string]interface{}{"error": err.Error(), "kind": "theme"},
					})
					continue
				}
			} else {
				s.ToggleTheme()
			}

			w.persistTheme(s.Theme())
			conn.WriteJSON(map[string]interface{}{
				"event": "theme",
				"data": map[string]interface{}{
					"theme":   s.Theme(),
					"palette": s.Palette(),
				},
			})

		case "state":
			w.sendState(conn, s)
		}
	}

	metrics.ActiveWSConnections.Dec()

	// Вкладка закрылась - сессия больше не нужна
	w.sessions.Remove(sessionID)
	metrics.UpdateCalculatorMetrics(w.sessions.Count(), w.history.GetHistoryCount())
	log.Printf("[Web] WebSocket disconnected: %s", sessionID)
}

func (w *WebInterface) sendState(conn *websocket.Conn, s *session.Session) {
	state := w.stateOf(s)
	conn.WriteJSON(map[string]interface{}{
		"event": "state",
		"data": map[string]interface{}{
			"expression": state.Expression,
			"preview":    state.Preview,
			"theme":      state.Theme,
		},
	})
}

// Handler - полный маршрутизатор веб-интерфейса
func (w *WebInterface) Handler() http.Handler {
	mux := http.NewServeMux()

	// API routes с метриками
	mux.HandleFunc("/api/session", metricsMiddleware(w.handleCreateSession))
	mux.HandleFunc("/api/input", metricsMiddleware(w.authMiddleware(w.handleInput)))
	mux.HandleFunc("/api/evaluate", metricsMiddleware(w.authMiddleware(w.handleEvaluate)))
	mux.HandleFunc("/api/state", metricsMiddleware(w.authMiddleware(w.handleState)))
	mux.HandleFunc("/api/theme", metricsMiddleware(w.authMiddleware(w.handleTheme)))
	mux.HandleFunc("/api/history", metricsMiddleware(w.authMiddleware(w.handleHistory)))
	mux.HandleFunc("/api/clear-history", metricsMiddleware(w.authMiddleware(w.handleClearHistory)))

	// WebSocket без обёртки метрик: Upgrade требует http.Hijacker
	mux.HandleFunc("/ws", w.handleWebSocket)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	mux.HandleFunc("/health", func(wr http.ResponseWriter, r *http.Request) {
		wr.WriteHeader(http.StatusOK)
		wr.Write([]byte("OK"))
	})

	// Static files
	fs := http.FileServer(http.Dir(filepath.Join(".", "static")))
	mux.Handle("/", fs)

	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(mux)
}

func (w *WebInterface) Start(addr string) error {
	log.Printf("🚀 Calculator web server starting on %s", addr)
	log.Printf("📡 WebSocket endpoint: ws://localhost%s/ws", addr)
	return http.ListenAndServe(addr, w.Handler())
}
