package httpadapter

import (
	"context"
	"errors"
	"strconv"
	"strings"

	staticmaps "robogrid/internal/adapter/maps/static"
	"robogrid/internal/app/ports"
	"robogrid/internal/app/replay"
	"robogrid/internal/app/runs"
	"robogrid/internal/domain/robotics"
	"robogrid/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Handler is the read-only ops surface over finished and running simulations.
type Handler struct {
	RunsUC   runs.UseCase
	ReplayUC replay.UseCase
	Maps     ports.MapProvider
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(readOnlyCORS)
	s.GET("/healthz", h.healthz)
	s.GET("/ops/kpi", h.kpi)

	api := s.Group("/api")
	api.GET("/runs", h.listRuns)
	api.GET("/runs/:run_id", h.getRun)
	api.GET("/runs/:run_id/events", h.runEvents)
	api.GET("/maps", h.listMaps)
	api.GET("/maps/:name", h.getMap)
}

// readOnlyCORS lets browsers read the ops routes from any origin. Preflight
// requests are answered here and never reach a route.
func readOnlyCORS(c context.Context, ctx *app.RequestContext) {
	h := &ctx.Response.Header
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET,OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "600")
	if string(ctx.Method()) == consts.MethodOptions {
		ctx.AbortWithStatus(consts.StatusNoContent)
		return
	}
	ctx.Next(c)
}

type runView struct {
	RunID      string            `json:"run_id"`
	Robot      string            `json:"robot"`
	Generator  string            `json:"generator"`
	Seed       int64             `json:"seed"`
	Status     string            `json:"status"`
	Summary    *robotics.Summary `json:"summary,omitempty"`
	Error      string            `json:"error,omitempty"`
	StartedAt  int64             `json:"started_at"`
	FinishedAt int64             `json:"finished_at,omitempty"`
}

func toRunView(r ports.RunRecord) runView {
	v := runView{
		RunID:     r.RunID,
		Robot:     r.Robot,
		Generator: r.Generator,
		Seed:      r.Seed,
		Status:    string(r.Status),
		Error:     r.Error,
		StartedAt: r.StartedAt.Unix(),
	}
	if r.Status != ports.RunStatusRunning {
		s := r.Summary
		v.Summary = &s
	}
	if !r.FinishedAt.IsZero() {
		v.FinishedAt = r.FinishedAt.Unix()
	}
	return v
}

type eventView struct {
	Seq        int64          `json:"seq"`
	EventID    string         `json:"event_id"`
	OccurredAt int64          `json:"occurred_at"`
	Event      robotics.Event `json:"event"`
}

type mapView struct {
	Name   string         `json:"name"`
	Rows   int            `json:"rows"`
	Cols   int            `json:"cols"`
	Robot  world.Position `json:"robot"`
	Glyphs []string       `json:"glyphs"`
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) listRuns(c context.Context, ctx *app.RequestContext) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.RunsUC.List(c, runs.ListRequest{Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	out := make([]runView, 0, len(resp.Runs))
	for _, r := range resp.Runs {
		out = append(out, toRunView(r))
	}
	ctx.JSON(consts.StatusOK, map[string]any{"runs": out})
}

func (h Handler) getRun(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RunsUC.Execute(c, runs.Request{RunID: ctx.Param("run_id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, toRunView(resp.Run))
}

func (h Handler) runEvents(c context.Context, ctx *app.RequestContext) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		RunID: ctx.Param("run_id"),
		Limit: limit,
		Kind:  robotics.EventKind(strings.TrimSpace(string(ctx.Query("kind")))),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	events := make([]eventView, 0, len(resp.Events))
	for _, e := range resp.Events {
		events = append(events, eventView{
			Seq:        e.Seq,
			EventID:    e.EventID,
			OccurredAt: e.OccurredAt.Unix(),
			Event:      e.Event,
		})
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"events":       events,
		"latest_state": resp.LatestState,
	})
}

func (h Handler) listMaps(c context.Context, ctx *app.RequestContext) {
	if h.Maps == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "map provider not configured")
		return
	}
	names, err := h.Maps.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	ctx.JSON(consts.StatusOK, map[string]any{"maps": names})
}

func (h Handler) getMap(c context.Context, ctx *app.RequestContext) {
	if h.Maps == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "map provider not configured")
		return
	}
	name := strings.TrimSpace(ctx.Param("name"))
	if name == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_map_name", "invalid map name")
		return
	}
	w, err := h.Maps.Load(c, name)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, mapView{
		Name:   name,
		Rows:   w.Rows,
		Cols:   w.Cols,
		Robot:  w.Robot,
		Glyphs: w.GlyphRows(),
	})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

var ErrInvalidQuery = errors.New("invalid query parameter")

func queryInt(ctx *app.RequestContext, key string) (int, error) {
	raw := strings.TrimSpace(string(ctx.Query(key)))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrInvalidQuery
	}
	return n, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuery),
		errors.Is(err, runs.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, staticmaps.ErrInvalidMapPath):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_map_name", err.Error())
	case errors.Is(err, world.ErrInvalidWorld):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "invalid_map", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
