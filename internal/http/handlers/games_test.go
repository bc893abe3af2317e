package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sparkmatch/internal/service"

	"github.com/gin-gonic/gin"
)

// gamesRouter wires the game endpoints with a stubbed auth layer; the game
// session service is fully in-memory, so no database is needed.
func gamesRouter(userID int64) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)

	h := &Handler{SessionService: service.NewGameSessionService(nil)}

	r := gin.New()
	auth := func(c *gin.Context) { c.Set("user_id", userID) }
	g := r.Group("/games", auth)
	g.GET("", h.ListGames)
	g.POST("/start", h.StartGame)
	g.GET("/state", h.GameState)
	g.POST("/begin", h.BeginAnswering)
	g.POST("/answer", h.SubmitAnswer)
	g.POST("/skip", h.SkipRound)
	g.POST("/quit", h.QuitGame)
	g.POST("/uno/play", h.UnoPlay)
	g.POST("/uno/draw", h.UnoDraw)
	return r, h
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestListGames(t *testing.T) {
	r, _ := gamesRouter(1)

	w := do(r, http.MethodGet, "/games", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var resp struct {
		Games []string `json:"games"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Games) != 6 {
		t.Fatalf("games = %v, want 6 entries", resp.Games)
	}
}

func TestStartGame_Lifecycle(t *testing.T) {
	r, _ := gamesRouter(1)

	w := do(r, http.MethodPost, "/games/start", `{"game":"rapid_fire"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("start: status %d body %s", w.Code, w.Body.String())
	}

	// only one active game per user
	w = do(r, http.MethodPost, "/games/start", `{"game":"uno"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("second start: status %d, want 409", w.Code)
	}

	w = do(r, http.MethodGet, "/games/state", "")
	if w.Code != http.StatusOK {
		t.Fatalf("state: status %d", w.Code)
	}

	w = do(r, http.MethodPost, "/games/begin", "")
	if w.Code != http.StatusOK {
		t.Fatalf("begin: status %d body %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/games/answer", `{"text":"quick answer"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("answer: status %d body %s", w.Code, w.Body.String())
	}

	// already awaiting the opponent
	w = do(r, http.MethodPost, "/games/answer", `{"text":"again"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("double answer: status %d, want 409", w.Code)
	}

	w = do(r, http.MethodPost, "/games/quit", "")
	if w.Code != http.StatusOK {
		t.Fatalf("quit: status %d", w.Code)
	}

	w = do(r, http.MethodGet, "/games/state", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("state after quit: status %d, want 404", w.Code)
	}
}

func TestStartGame_Validation(t *testing.T) {
	r, _ := gamesRouter(1)

	w := do(r, http.MethodPost, "/games/start", `{"game":"chess"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown game: status %d, want 400", w.Code)
	}

	w = do(r, http.MethodPost, "/games/start", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing game: status %d, want 400", w.Code)
	}
}

func TestSubmitAnswer_Validation(t *testing.T) {
	r, _ := gamesRouter(1)

	do(r, http.MethodPost, "/games/start", `{"game":"would_you_rather"}`)

	w := do(r, http.MethodPost, "/games/answer", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty answer: status %d, want 400", w.Code)
	}

	w = do(r, http.MethodPost, "/games/answer", `{"choice":"c"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad choice: status %d, want 400", w.Code)
	}

	w = do(r, http.MethodPost, "/games/answer", `{"choice":"a"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("valid choice: status %d body %s", w.Code, w.Body.String())
	}
}

func TestUnoEndpoints(t *testing.T) {
	r, _ := gamesRouter(1)

	w := do(r, http.MethodPost, "/games/start", `{"game":"uno"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("start uno: status %d", w.Code)
	}

	// an out-of-range index is a client error
	w = do(r, http.MethodPost, "/games/uno/play", `{"index":99}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad index: status %d, want 400", w.Code)
	}

	w = do(r, http.MethodPost, "/games/uno/draw", "")
	if w.Code != http.StatusOK {
		t.Fatalf("draw: status %d body %s", w.Code, w.Body.String())
	}

	// prompt-game actions do not apply to uno
	w = do(r, http.MethodPost, "/games/begin", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("begin on uno: status %d, want 400", w.Code)
	}
}
