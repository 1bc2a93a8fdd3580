package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vantagepointcrm/crm-api/internal/api/metrics"
	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

// DocsDispatcher is the interface the handler uses to enqueue send-docs jobs.
type DocsDispatcher interface {
	Enqueue(job ports.SendDocsJob)
}

// LeadHandler handles HTTP requests for lead operations.
type LeadHandler struct {
	leads      ports.LeadService
	auth       ports.AuthService
	dispatcher DocsDispatcher
}

func NewLeadHandler(leads ports.LeadService, auth ports.AuthService, dispatcher DocsDispatcher) *LeadHandler {
	return &LeadHandler{leads: leads, auth: auth, dispatcher: dispatcher}
}

// List handles GET /api/v1/leads.
//
// @Summary      List leads visible to the caller
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listLeadsResponse
// @Failure      401  {object}  errorDetail
// @Router       /api/v1/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c, h.auth)
	if err != nil {
		return err
	}

	leads, err := h.leads.VisibleLeads(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(leads))
}

// Create handles POST /api/v1/leads.
//
// @Summary      Create a new lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLeadRequest  true  "Lead details"
// @Success      201   {object}  createLeadResponse
// @Failure      400   {object}  errorDetail
// @Failure      401   {object}  errorDetail
// @Router       /api/v1/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c, h.auth)
	if err != nil {
		return err
	}

	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.leads.CreateLead(c.Request().Context(), identity, toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.LeadsCreatedTotal.WithLabelValues(string(result.Lead.Priority)).Inc()

	return c.JSON(http.StatusCreated, createLeadResponse{
		Message:    "Lead created successfully",
		Lead:       toLeadResponse(result.Lead),
		AssignedTo: result.AssignedTo.Username,
	})
}

// BulkAssign handles POST /api/v1/leads/bulk-assign.
//
// @Summary      Assign unassigned leads to an agent, highest score first
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkAssignRequest  true  "Assignment parameters"
// @Success      200   {object}  bulkAssignResponse
// @Failure      400   {object}  errorDetail
// @Failure      401   {object}  errorDetail
// @Failure      403   {object}  errorDetail
// @Router       /api/v1/leads/bulk-assign [post]
func (h *LeadHandler) BulkAssign(c echo.Context) error {
	var req bulkAssignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assigned, err := h.leads.BulkAssign(c.Request().Context(), req.AgentID, req.MaxCount)
	if err != nil {
		return err
	}

	metrics.LeadsBulkAssignedTotal.Add(float64(assigned))

	return c.JSON(http.StatusOK, bulkAssignResponse{AssignedCount: assigned})
}

// SendDocs handles POST /api/v1/leads/:id/send-docs.
//
// @Summary      Queue partner document delivery for a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Lead ID"
// @Success      202  {object}  acceptedResponse
// @Failure      401  {object}  errorDetail
// @Failure      404  {object}  errorDetail
// @Failure      409  {object}  errorDetail
// @Router       /api/v1/leads/{id}/send-docs [post]
func (h *LeadHandler) SendDocs(c echo.Context) error {
	identity, err := ctxIdentity(c, h.auth)
	if err != nil {
		return err
	}

	leadID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.ErrLeadNotFound
	}

	job, err := h.leads.PrepareDocsSend(c.Request().Context(), identity, leadID)
	if err != nil {
		return err
	}

	h.dispatcher.Enqueue(job)
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "document delivery queued"})
}
