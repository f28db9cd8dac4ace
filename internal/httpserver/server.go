// internal/httpserver/server.go
//
// HTTP server wiring for the Hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/api/difficulties".
//   - Game endpoints: POST /api/new-game, POST /api/guess, POST /api/hint, GET /api/game-state.
//   - Input validation for guesses before anything reaches the engine.
//   - Session handles (see session.go): every player gets their own game.
//
// Notes:
//   - A guess or hint without a valid session starts a fresh easy game, so a
//     client always has a current game. game-state without a session reports
//     an unsaved easy game and creates nothing.
//   - Snapshots are written with the field names the browser front end reads.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/internal/daily"
	"github.com/robalobadob/hangman/apps/go-server/internal/game"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

// Options configures a Server.
type Options struct {
	ClientOrigin  string        // allowed CORS origin
	SessionSecret string        // HMAC key for session tokens
	SessionTTL    time.Duration // session token lifetime
	Secure        bool          // Secure + SameSite=None cookies
	DailySalt     string        // salt for daily word selection

	// Picker overrides random word selection (tests). Nil means random.
	Picker words.Picker
	// Now overrides the clock (tests). Nil means time.Now.
	Now func() time.Time
}

// Server bundles router, session store and word catalog.
type Server struct {
	r        *chi.Mux
	store    store.Store
	catalog  *words.Catalog
	sessions *sessions
	salt     string
	pick     words.Picker
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cat *words.Catalog, opts Options) *Server {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		catalog: cat,
		sessions: &sessions{
			secret: []byte(opts.SessionSecret),
			ttl:    opts.SessionTTL,
			secure: opts.Secure,
			now:    now,
		},
		salt: opts.DailySalt,
		pick: opts.Picker,
		now:  now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hangman-go","endpoints":["/health","GET /api/difficulties","POST /api/new-game","POST /api/guess","POST /api/hint","GET /api/game-state"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/difficulties", s.handleDifficulties)
		r.Post("/new-game", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Post("/hint", s.handleHint)
		r.Get("/game-state", s.handleGameState)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router.
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", "X-Session-Token")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog logs method, path, status and latency through the request logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ GAME ---------------------------------------

// newGameReq is the payload for POST /api/new-game.
type newGameReq struct {
	Difficulty string `json:"difficulty"` // "easy" (default) | "medium" | "hard"
	Daily      bool   `json:"daily"`      // pick the word of the day
}

// guessReq is the payload for POST /api/guess.
type guessReq struct {
	Letter string `json:"letter"`
}

type difficultyRes struct {
	Difficulty   words.Difficulty `json:"difficulty"`
	HintCategory string           `json:"hint_category"`
	Words        int              `json:"words"`
}

func (s *Server) handleDifficulties(w http.ResponseWriter, r *http.Request) {
	out := make([]difficultyRes, 0, len(words.All()))
	for _, d := range words.All() {
		out = append(out, difficultyRes{Difficulty: d, HintCategory: d.Label(), Words: s.catalog.Len(d)})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleNewGame replaces the caller's game, creating a session if needed.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = words.Easy.String()
	}
	d, err := words.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid difficulty")
		return
	}

	pick := s.pick
	if req.Daily {
		pick = daily.Picker(s.now(), s.salt, d)
	}
	g, err := game.New(s.catalog, d, pick)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}

	id := s.sessions.fromRequest(r)
	if id == "" {
		id = genID()
	}
	if err := s.store.Save(r.Context(), id, g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if err := s.sessions.issue(w, id); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign session")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	hlog.FromRequest(r).Debug().
		Str("difficulty", d.String()).
		Bool("daily", req.Daily).
		Msg("new game")
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// handleGuess validates the letter and applies it to the caller's game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if _, err := game.ParseLetter(req.Letter); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guess")
		return
	}
	s.withGame(w, r, true, func(g *game.Game) (game.Snapshot, error) {
		snap, err := g.Guess(req.Letter)
		if err == nil && snap.GameOver {
			hlog.FromRequest(r).Debug().Str("state", g.State()).Int("misses", g.Incorrect).Msg("game finished")
		}
		return snap, err
	})
}

// handleHint buys the hint for the caller's game.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, true, func(g *game.Game) (game.Snapshot, error) {
		return g.Hint(), nil
	})
}

// handleGameState returns the caller's game without changing it.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, false, func(g *game.Game) (game.Snapshot, error) {
		return g.Snapshot(), nil
	})
}

// withGame runs fn against the caller's game under the store lock and writes
// the resulting snapshot. Every hit on a live session re-issues its token, so
// the token expiry tracks the store's idle timeout.
//
// Callers without a live session get a new easy game. It is only saved (and
// a session issued) when create is set; reads get an unsaved default.
func (s *Server) withGame(w http.ResponseWriter, r *http.Request, create bool, fn func(g *game.Game) (game.Snapshot, error)) {
	ctx := r.Context()
	var snap game.Snapshot
	apply := func(g *game.Game) error {
		var err error
		snap, err = fn(g)
		return err
	}

	err := store.ErrNotFound
	if id := s.sessions.fromRequest(r); id != "" {
		err = s.store.Update(ctx, id, apply)
		if err == nil {
			err = s.sessions.issue(w, id)
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		if create {
			err = s.startDefault(w, r, apply)
		} else {
			err = s.previewDefault(apply)
		}
	}

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, snap)
	case errors.Is(err, game.ErrInvalidGuess):
		writeError(w, http.StatusBadRequest, "Invalid guess")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("update game")
		writeError(w, http.StatusInternalServerError, "update_failed")
	}
}

// startDefault opens a new session holding an easy game, then applies fn to it.
func (s *Server) startDefault(w http.ResponseWriter, r *http.Request, fn func(g *game.Game) error) error {
	g, err := game.New(s.catalog, words.Easy, s.pick)
	if err != nil {
		return err
	}
	id := genID()
	if err := s.store.Save(r.Context(), id, g); err != nil {
		return err
	}
	if err := s.sessions.issue(w, id); err != nil {
		return err
	}
	hlog.FromRequest(r).Debug().Msg("started default game for new session")
	return s.store.Update(r.Context(), id, fn)
}

// previewDefault applies fn to a throwaway easy game that is never stored.
func (s *Server) previewDefault(fn func(g *game.Game) error) error {
	g, err := game.New(s.catalog, words.Easy, s.pick)
	if err != nil {
		return err
	}
	return fn(g)
}

// ------------------------------- small util --------------------------------

// decodeBody decodes a JSON body into v. An empty body leaves v unchanged.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
