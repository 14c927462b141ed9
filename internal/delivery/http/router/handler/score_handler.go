package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/fx"

	"isochrone/internal/aggregator"
	"isochrone/internal/delivery/http/response"
	domainerrors "isochrone/internal/domain/errors"
	"isochrone/internal/graphinit"
	"isochrone/internal/isochrone"
	"isochrone/internal/scorer"
)

// ScoreHandlerParams holds ScoreHandler's Fx-injected dependencies.
type ScoreHandlerParams struct {
	fx.In

	Graph *graphinit.Handle
}

// ScoreHandler serves POST /api/isochrones/score.
type ScoreHandler struct {
	graph *graphinit.Handle
}

// NewScoreHandler is the constructor for ScoreHandler.
func NewScoreHandler(params ScoreHandlerParams) *ScoreHandler {
	return &ScoreHandler{graph: params.Graph}
}

// bufferPolygonRequest is one input buffer polygon, as a closed list of
// [lng, lat] pairs.
type bufferPolygonRequest struct {
	ID   int          `json:"id"`
	Ring [][2]float64 `json:"ring" validate:"required,min=3"`
}

// poiRequest is one point of interest input.
type poiRequest struct {
	Lng      float64 `json:"lng"`
	Lat      float64 `json:"lat"`
	Category string  `json:"category" validate:"required"`
}

// ScoreRequest is the request body for POST /api/isochrones/score.
type ScoreRequest struct {
	Buffers          []bufferPolygonRequest `json:"buffers" validate:"required,min=1"`
	MinIntersections int                     `json:"min_intersections"`
	MaxPoints        int                     `json:"max_points"`
	POIs             []poiRequest            `json:"pois"`
}

// ScoredCandidate is one ranked output point.
type ScoredCandidate struct {
	Rank  int     `json:"rank"`
	Lng   float64 `json:"lng"`
	Lat   float64 `json:"lat"`
	Score int     `json:"score"`
}

// ScoreResponse is the successful response body.
type ScoreResponse struct {
	Points []ScoredCandidate `json:"points"`
}

// Score handles POST /api/isochrones/score: aggregates buffer intersections
// into hotspot candidates, then scores each against the supplied points of
// interest, per spec §4.F/§4.G.
func (h *ScoreHandler) Score(c echo.Context) error {
	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid score request body")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	buffers := make([]aggregator.BufferPolygon, len(req.Buffers))
	for i, b := range req.Buffers {
		ring := make(orb.Ring, len(b.Ring))
		for j, p := range b.Ring {
			ring[j] = orb.Point{p[0], p[1]}
		}
		buffers[i] = aggregator.BufferPolygon{ID: b.ID, Ring: ring}
	}

	candidates := aggregator.Aggregate(buffers, req.MinIntersections, req.MaxPoints)

	graph, ok := h.graph.Graph()
	if !ok {
		return response.Error(c, domainerrors.ErrGraphNotInitialized.HTTPCode(), domainerrors.ErrGraphNotInitialized.ErrorCode(), domainerrors.ErrGraphNotInitialized.Message(), "")
	}

	pois := make([]scorer.POI, len(req.POIs))
	for i, p := range req.POIs {
		pois[i] = scorer.POI{Point: orb.Point{p.Lng, p.Lat}, Category: scorer.Category(p.Category)}
	}

	builder := isochrone.NewBuilder(graph)
	s := scorer.New(builder, scorer.DefaultAnchorTimeMin)

	results, err := s.Score(c.Request().Context(), candidates, pois)
	if err != nil {
		return h.handleError(c, err)
	}

	points := make([]ScoredCandidate, len(results))
	for i, r := range results {
		points[i] = ScoredCandidate{Rank: r.Rank, Lng: r.Center[0], Lat: r.Center[1], Score: r.Score}
	}

	return response.Success(c, http.StatusOK, ScoreResponse{Points: points}, "candidates scored")
}

func (h *ScoreHandler) handleError(c echo.Context, err error) error {
	var badCategory *scorer.BadCategoryError
	if pkgerrors.As(err, &badCategory) {
		return response.Error(c, domainerrors.ErrBadCategory.HTTPCode(), domainerrors.ErrBadCategory.ErrorCode(), domainerrors.ErrBadCategory.Message(), badCategory.Error())
	}

	return response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), err.Error())
}
