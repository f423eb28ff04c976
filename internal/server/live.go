package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/measure"
	"github.com/kochwerk/kochwerk/pkg/observability"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// liveFrame is one step of the streamed subdivision animation. The final
// frame carries Done=true so clients know the target level was reached.
type liveFrame struct {
	Level   int             `json:"level"`
	Summary measure.Summary `json:"summary"`
	Scene   scene.Scene     `json:"scene"`
	Done    bool            `json:"done"`
}

const defaultFrameInterval = 400 * time.Millisecond

// handleLive streams the snowflake construction level by level over a
// websocket. Each frame holds the fitted scene and its measurements, so a
// client can animate the subdivision without re-requesting anything.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	interval := defaultFrameInterval
	if raw := r.URL.Query().Get("interval_ms"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid interval_ms: %q", raw))
			return
		}
		interval = time.Duration(ms) * time.Millisecond
	}

	// Validate before upgrading so parameter errors still reach the client
	// as plain HTTP responses.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", "err", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	ctx := r.Context()
	start := time.Now()
	frames := 0

	for level := 0; level <= opts.Level; level++ {
		stepOpts := opts
		stepOpts.Level = level

		f, err := s.runner.Generate(ctx, stepOpts)
		if err != nil {
			s.logger.Warn("live generate failed", "level", level, "err", err)
			return
		}
		sc, err := s.runner.Fit(ctx, f, stepOpts)
		if err != nil {
			s.logger.Warn("live fit failed", "level", level, "err", err)
			return
		}
		p, err := f.Polyline()
		if err != nil {
			s.logger.Warn("live polyline failed", "level", level, "err", err)
			return
		}

		frame := liveFrame{
			Level:   level,
			Summary: measure.Summarize(level, p),
			Scene:   sc,
			Done:    level == opts.Level,
		}
		if err := wsjson.Write(ctx, conn, frame); err != nil {
			return
		}
		frames++

		if interval > 0 && level < opts.Level {
			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}
		}
	}

	observability.Server().OnStream(ctx, r.URL.Path, frames, time.Since(start))
	conn.Close(websocket.StatusNormalClosure, "stream complete")
}
