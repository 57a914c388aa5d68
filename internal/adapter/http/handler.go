// Package httpadapter exposes the simulation control surface and the
// event consumer API over HTTP for a polling frontend.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"hearthverse/internal/app/engine"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

type Handler struct {
	Engine *engine.Engine
	KPI    kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	sim := s.Group("/api/sim")
	sim.POST("/turn", h.executeTurn)
	sim.POST("/reset", h.reset)
	sim.GET("/stats/turn", h.turnStats)
	sim.GET("/stats/simulation", h.simulationStats)

	ev := s.Group("/api/events")
	ev.GET("/unserved", h.unservedEvents)
	ev.POST("/served", h.markServed)
	ev.GET("/since", h.eventsSince)

	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) executeTurn(c context.Context, ctx *app.RequestContext) {
	outcome, err := h.Engine.ExecuteNextTurn(c)
	if err != nil {
		if errors.Is(err, engine.ErrSimulationFinished) {
			writeErrorBody(ctx, consts.StatusConflict, "simulation_finished", "the simulation has finished")
			return
		}
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	ctx.JSON(consts.StatusOK, outcome)
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	if err := h.Engine.Reset(c); err != nil {
		writeErrorBody(ctx, consts.StatusInternalServerError, "reset_failed", err.Error())
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) turnStats(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Engine.TurnStatistics())
}

func (h Handler) simulationStats(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Engine.SimulationStatistics())
}

func (h Handler) unservedEvents(_ context.Context, ctx *app.RequestContext) {
	consumerID := strings.TrimSpace(ctx.Query("consumer_id"))
	if consumerID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_consumer_id", "consumer_id is required")
		return
	}
	events := h.Engine.Bus.UnservedEvents(consumerID)
	ctx.JSON(consts.StatusOK, map[string]any{"events": events})
}

type markServedRequest struct {
	ConsumerID string   `json:"consumer_id"`
	EventIDs   []string `json:"event_ids"`
}

func (h Handler) markServed(_ context.Context, ctx *app.RequestContext) {
	var body markServedRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	body.ConsumerID = strings.TrimSpace(body.ConsumerID)
	if body.ConsumerID == "" || len(body.EventIDs) == 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request", "consumer_id and event_ids are required")
		return
	}
	h.Engine.Bus.MarkServed(body.ConsumerID, body.EventIDs)
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) eventsSince(_ context.Context, ctx *app.RequestContext) {
	var since time.Time
	if raw := strings.TrimSpace(ctx.Query("ts")); raw != "" {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			since = time.Unix(unix, 0)
		} else if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			since = parsed
		} else {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_timestamp", "ts must be unix seconds or RFC 3339")
			return
		}
	}
	events := h.Engine.Bus.EventsSince(since, strings.TrimSpace(ctx.Query("type")))
	ctx.JSON(consts.StatusOK, map[string]any{"events": events})
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "kpi_unavailable", "no metrics recorder configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return errors.New("empty body")
	}
	return json.Unmarshal(body, out)
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{"error": code, "message": message})
}
