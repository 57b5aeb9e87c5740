// Package web serves a small status endpoint for operational checks.
package web

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/valyala/fasthttp"

	"github.com/adamski234/yttrium-bot/internal/logging"
	"github.com/adamski234/yttrium-bot/internal/router"
)

type Server struct {
	addr    string
	started time.Time
	stats   *router.Stats
	session *discordgo.Session
}

func NewServer(addr string, stats *router.Stats, session *discordgo.Session) *Server {
	return &Server{
		addr:    addr,
		started: time.Now(),
		stats:   stats,
		session: session,
	}
}

// Start serves until the process exits. Run it in its own goroutine.
func (s *Server) Start() {
	logging.Info("Status endpoint listening on %s", s.addr)
	if err := fasthttp.ListenAndServe(s.addr, s.handle); err != nil {
		logging.Error("Status endpoint failed: %v", err)
	}
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	case "/status":
		s.handleStatus(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (s *Server) handleStatus(ctx *fasthttp.RequestCtx) {
	body, err := json.Marshal(map[string]interface{}{
		"uptime_seconds":   int64(time.Since(s.started).Seconds()),
		"guilds":           len(s.session.State.Guilds),
		"events_seen":      s.stats.EventsSeen.Load(),
		"scripts_executed": s.stats.ScriptsExecuted.Load(),
		"script_errors":    s.stats.ScriptErrors.Load(),
	})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
