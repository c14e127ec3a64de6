package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// TokenResult contains the outcome of a token-capture flow.
type TokenResult struct {
	Token string
	err   error
}

func (t *TokenResult) Error() error {
	return t.err
}

// TokenHandler captures the ?token= redirect from the storefront login page.
// Implements the [Handler] interface for registration with a [Router].
type TokenHandler struct {
	resultChan  chan TokenResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewTokenHandler creates a handler that delivers exactly one [TokenResult].
func NewTokenHandler() *TokenHandler {
	return &TokenHandler{
		resultChan: make(chan TokenResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *TokenHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the login redirect.
//
// The first hit wins; repeated callbacks are rejected so a stale browser tab
// cannot overwrite the captured token.
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	token := r.URL.Query().Get("token")
	if token == "" {
		err := fmt.Errorf("login redirect carried no token")
		h.send(TokenResult{err: err})
		http.Error(w, "Missing token parameter", http.StatusBadRequest)
		return
	}

	h.send(TokenResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Login Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #04B575; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Login Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

// send delivers the token result through the channel (only once).
func (h *TokenHandler) send(result TokenResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel that receives the single capture outcome.
func (h *TokenHandler) Result() <-chan TokenResult {
	return h.resultChan
}

// CaptureToken runs a listener on addr until a token arrives, the context is
// cancelled, or the timeout elapses.
func CaptureToken(ctx context.Context, addr string, timeout time.Duration) (string, error) {
	handler := NewTokenHandler()
	router := NewBasicRouter()
	router.Handler(handler)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: router}
	go srv.Serve(ln)
	defer srv.Close()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return "", err
		}
		return result.Token, nil
	case <-timer.C:
		return "", fmt.Errorf("timed out waiting for login redirect")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
