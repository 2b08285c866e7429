// Package httpd exposes the read-only phrase dump endpoint used when a
// tidbit list is too long to show inline in chat.
package httpd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kodekoan/phrasebot/internal/engine"
)

// Handler serves GET /<botName>/phrase/{name} as text/plain.
type Handler struct {
	engine  *engine.Engine
	botName string
	log     *zap.Logger
}

// NewHandler creates the dump handler.
func NewHandler(e *engine.Engine, botName string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{engine: e, botName: botName, log: log}
}

// RegisterRoutes mounts the handler on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /"+h.botName+"/phrase/{name}", h.handlePhrase)
}

func (h *Handler) handlePhrase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := r.PathValue("name")

	p, err := h.engine.Resolve(r.Context(), name, nil)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		h.log.Error("phrase dump", zap.Error(err), zap.String("name", name))
		return
	}
	if p == nil {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "Not Found")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Factoid: [%s]\n", name)
	fmt.Fprintf(&b, "Protected: %t\n", p.ReadOnly)
	b.WriteString("\nTidbits:")
	for _, t := range p.Tidbits {
		b.WriteString("\n" + t.Verb + "|" + t.Tidbit)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, b.String())

	h.log.Debug("phrase dump",
		zap.String("name", name),
		zap.Duration("duration", time.Since(start)),
	)
}
