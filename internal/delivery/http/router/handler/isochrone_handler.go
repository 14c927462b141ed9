package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/fx"

	"isochrone/internal/delivery/http/response"
	domainerrors "isochrone/internal/domain/errors"
	"isochrone/internal/graphinit"
	"isochrone/internal/isochrone"
)

// BuildingsLookup is the minimal port the isochrone handler consumes from
// the (out-of-scope, externally owned) relational store to resolve
// "byCategory"/"byName" inputs into coordinates, per spec §6 and the
// supplemented app.py behavior of harvesting from both simultaneously.
type BuildingsLookup interface {
	ByCategory(ctx echo.Context, category string) ([]orb.Point, error)
	ByName(ctx echo.Context, name string) ([]orb.Point, error)
}

// IsochroneHandlerParams holds IsochroneHandler's Fx-injected dependencies.
type IsochroneHandlerParams struct {
	fx.In

	Graph     *graphinit.Handle
	Buildings BuildingsLookup `optional:"true"`
}

// IsochroneHandler serves POST /api/isochrones.
type IsochroneHandler struct {
	graph     *graphinit.Handle
	buildings BuildingsLookup
}

// NewIsochroneHandler is the constructor for IsochroneHandler.
func NewIsochroneHandler(params IsochroneHandlerParams) *IsochroneHandler {
	return &IsochroneHandler{graph: params.Graph, buildings: params.Buildings}
}

// pointRequest is one explicit start coordinate.
type pointRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// CreateIsochroneRequest is the request body for POST /api/isochrones, per
// spec §6.
//
// At least one of Points, ByCategory, ByName must be non-empty; the
// original service harvests coordinates from both the byCategory and
// byName buildings lookups simultaneously rather than treating them as
// alternatives, and that behavior is preserved here.
type CreateIsochroneRequest struct {
	Time       int            `json:"time" validate:"required,gte=1,lte=15"`
	Points     []pointRequest `json:"points"`
	ByCategory string         `json:"byCategory,omitempty"`
	ByName     string         `json:"byName,omitempty"`
}

// isochroneResult is one computed isochrone in the response body.
type isochroneResult struct {
	Minutes int               `json:"minutes"`
	Polygon *geojson.Geometry `json:"polygon"`
}

// IsochroneResponse is the successful response body.
type IsochroneResponse struct {
	Isochrones []isochroneResult `json:"isochrones"`
}

// Create handles POST /api/isochrones.
func (h *IsochroneHandler) Create(c echo.Context) error {
	var req CreateIsochroneRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid isochrone request body")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, domainerrors.ErrBadTime.ErrorCode(), err.Error())
	}

	starts, err := h.collectStarts(c, &req)
	if err != nil {
		return h.handleError(c, err)
	}

	graph, ok := h.graph.Graph()
	if !ok {
		return h.handleError(c, &isochroneNotInitialized{})
	}

	builder := isochrone.NewBuilder(graph)

	ring, err := builder.Build(starts, float64(req.Time))
	if err != nil {
		return h.handleError(c, err)
	}

	geometry := geojson.NewGeometry(orb.Polygon{ring})

	return response.Success(c, http.StatusOK, IsochroneResponse{
		Isochrones: []isochroneResult{{Minutes: req.Time, Polygon: geometry}},
	}, "isochrone computed")
}

// collectStarts gathers explicit points (per spec §6's `points` field) and
// harvests coordinates from the buildings collaborator for byCategory and
// byName, concatenating rather than choosing one, per SUPPLEMENTED
// FEATURES. At least one of the three sources must be non-empty.
func (h *IsochroneHandler) collectStarts(c echo.Context, req *CreateIsochroneRequest) ([]orb.Point, error) {
	if len(req.Points) == 0 && req.ByCategory == "" && req.ByName == "" {
		return nil, &isochroneBadInput{reason: "at least one of points, byCategory, byName is required"}
	}

	var starts []orb.Point
	for _, p := range req.Points {
		starts = append(starts, orb.Point{p.Lon, p.Lat})
	}

	if h.buildings != nil {
		if req.ByCategory != "" {
			points, err := h.buildings.ByCategory(c, req.ByCategory)
			if err != nil {
				return nil, err
			}
			starts = append(starts, points...)
		}

		if req.ByName != "" {
			points, err := h.buildings.ByName(c, req.ByName)
			if err != nil {
				return nil, err
			}
			starts = append(starts, points...)
		}
	}

	return starts, nil
}

// handleError maps domain and package-local errors onto the AppError
// response shape, following ErrorMiddleware.handleError's dispatch. Per
// spec §6: bad time/nothing supplied/value error -> 400, no start points
// -> 404, not initialized/internal -> 500.
func (h *IsochroneHandler) handleError(c echo.Context, err error) error {
	var badTime *isochrone.BadTimeError
	if pkgerrors.As(err, &badTime) {
		return response.Error(c, domainerrors.ErrBadTime.HTTPCode(), domainerrors.ErrBadTime.ErrorCode(), domainerrors.ErrBadTime.Message(), badTime.Error())
	}

	var noInputs *isochrone.NoInputsError
	if pkgerrors.As(err, &noInputs) {
		return response.BadRequest(c, "NOTHING_SUPPLIED", noInputs.Error())
	}

	var noStarts *isochrone.NoStartNodesError
	if pkgerrors.As(err, &noStarts) {
		return response.Error(c, domainerrors.ErrNoStartNodes.HTTPCode(), domainerrors.ErrNoStartNodes.ErrorCode(), domainerrors.ErrNoStartNodes.Message(), noStarts.Error())
	}

	var notInit *isochrone.NotInitializedError
	if pkgerrors.As(err, &notInit) {
		return response.Error(c, domainerrors.ErrGraphNotInitialized.HTTPCode(), domainerrors.ErrGraphNotInitialized.ErrorCode(), domainerrors.ErrGraphNotInitialized.Message(), notInit.Error())
	}

	var notInitLocal *isochroneNotInitialized
	if pkgerrors.As(err, &notInitLocal) {
		return response.Error(c, domainerrors.ErrGraphNotInitialized.HTTPCode(), domainerrors.ErrGraphNotInitialized.ErrorCode(), domainerrors.ErrGraphNotInitialized.Message(), "")
	}

	var badInput *isochroneBadInput
	if pkgerrors.As(err, &badInput) {
		return response.BadRequest(c, "BAD_INPUT", badInput.reason)
	}

	var appErr domainerrors.AppError
	if pkgerrors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), err.Error())
}

type isochroneBadInput struct {
	reason string
}

func (e *isochroneBadInput) Error() string {
	return e.reason
}

type isochroneNotInitialized struct{}

func (e *isochroneNotInitialized) Error() string {
	return "graph not initialized"
}
