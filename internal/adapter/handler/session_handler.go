package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/geocrop/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/geocrop/internal/pkg/httputil"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

type SessionHandler struct {
	sessionSvc SessionService
}

func NewSessionHandler(sessionSvc SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Create opens a crop session over a list of datasets.
//
//	POST /sessions {datasets: [{name, source, output_path, color}]}
func (h *SessionHandler) Create(c *gin.Context) {
	var req request.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	s, err := h.sessionSvc.Create(c.Request.Context(), session.CreateInput{
		OperatorID: httputil.GetOperatorID(c),
		Datasets:   req.Inputs(),
	})
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.Created(c, response.SessionFromEntity(s))
}

func (h *SessionHandler) List(c *gin.Context) {
	var req request.ListSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	sessions, info, err := h.sessionSvc.List(c.Request.Context(), session.ListInput{
		OperatorID: httputil.GetOperatorID(c),
		Page:       req.Page,
		PerPage:    req.PerPage,
	})
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.OK(c, response.SessionsFromEntities(sessions, info))
}

func (h *SessionHandler) Get(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	s, err := h.sessionSvc.Get(c.Request.Context(), httputil.GetOperatorID(c), sessionID)
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.OK(c, response.SessionFromEntity(s))
}

func (h *SessionHandler) Delete(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), httputil.GetOperatorID(c), sessionID); err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.NoContent(c)
}

// RegisterPoint feeds one map click into the selection. Two clicks finalize
// the crop box; a third starts a new one.
//
//	POST /sessions/:id/points {lat, lng} | {x, y, viewport}
func (h *SessionHandler) RegisterPoint(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.RegisterPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	input, err := req.Input()
	if err != nil {
		httputil.ValidationError(c, err)
		return
	}

	view, err := h.sessionSvc.RegisterPoint(c.Request.Context(), httputil.GetOperatorID(c), sessionID, input)
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.OK(c, response.SelectionFrom(view))
}

func (h *SessionHandler) Selection(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.sessionSvc.Selection(c.Request.Context(), httputil.GetOperatorID(c), sessionID)
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.OK(c, response.SelectionFrom(view))
}

func (h *SessionHandler) Reset(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.sessionSvc.Reset(c.Request.Context(), httputil.GetOperatorID(c), sessionID)
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.OK(c, response.SelectionFrom(view))
}

// UpdateTarget toggles whether a target takes part in the export.
func (h *SessionHandler) UpdateTarget(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseID(c, "target_id")
	if !ok {
		return
	}

	var req request.UpdateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	target, err := h.sessionSvc.SetSelected(c.Request.Context(), httputil.GetOperatorID(c), sessionID, targetID, *req.Selected)
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.OK(c, response.TargetFromEntity(target))
}

// Export crops every selected target and closes the session. Per-target
// failures are part of a 200 response.
func (h *SessionHandler) Export(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	report, err := h.sessionSvc.Export(c.Request.Context(), httputil.GetOperatorID(c), sessionID)
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.OK(c, response.ReportFromEntity(report))
}

func (h *SessionHandler) History(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	records, err := h.sessionSvc.History(c.Request.Context(), httputil.GetOperatorID(c), sessionID)
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.OK(c, response.HistoryFromEntities(records))
}

func (h *SessionHandler) Preview(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.PreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	png, err := h.sessionSvc.Preview(c.Request.Context(), httputil.GetOperatorID(c), sessionID, req.Width, req.Height)
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}
