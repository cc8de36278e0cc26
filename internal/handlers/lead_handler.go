package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leadflow/internal/authz"
	"leadflow/internal/models"
	"leadflow/internal/services"
	"leadflow/internal/validation"
)

type LeadHandler struct {
	service services.LeadService
}

func NewLeadHandler(service services.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// Lead payloads are validated as-is, without the whitespace trimming the
// user paths do.
type createLeadRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

type updateLeadRequest struct {
	FirstName  *string `json:"firstName" validate:"omitempty,min=1"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,min=1"`
	Status     *string `json:"status" validate:"omitempty,oneof=NEW CONTACTED QUALIFIED WON LOST"`
	AssignedTo *int    `json:"assignedTo" validate:"omitempty,gt=0"`
}

// @Summary      List leads
// @Description  Admins see every lead, employees only those assigned to them
// @Tags         Leads
// @Produce      json
// @Param        page   query  int  false  "Page"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	callerID, role := getCaller(c)
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	assignedTo := 0
	if !authz.IsAdmin(role) {
		assignedTo = callerID
	}

	totalLeads, err := h.service.Count(assignedTo)
	if err != nil {
		handleError(c, err)
		return
	}

	leads, err := h.service.List(assignedTo, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	if len(leads) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No leads found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Leads fetched successfully",
		"leads":       leads,
		"totalLeads":  totalLeads,
		"totalPages":  totalPages(totalLeads, limit),
		"currentPage": page,
	})
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid lead ID"})
		return
	}

	lead, err := h.service.GetByID(id)
	if err != nil {
		handleError(c, err)
		return
	}
	if lead == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Lead not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lead details fetched successfully",
		"lead":    lead,
	})
}

// @Summary      Create lead
// @Description  Creates a lead owned by and assigned to the caller
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	callerID, _ := getCaller(c)

	var req createLeadRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		handleError(c, err)
		return
	}

	// creator becomes the initial assignee
	lead := &models.Lead{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		AssignedTo: callerID,
		CreatedBy:  callerID,
	}
	if err := h.service.Create(lead); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Lead created successfully",
		"lead":    lead,
	})
}

func (h *LeadHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid lead ID"})
		return
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		handleError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Lead not found."})
		return
	}

	var req updateLeadRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Struct(req); err != nil {
		handleError(c, err)
		return
	}

	updated := *existing
	if req.FirstName != nil {
		updated.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		updated.LastName = *req.LastName
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.AssignedTo != nil {
		updated.AssignedTo = *req.AssignedTo
	}

	if err := h.service.Update(&updated); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lead updated successfully",
		"lead":    updated,
	})
}

func (h *LeadHandler) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid lead ID"})
		return
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		handleError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Lead not found."})
		return
	}

	if err := h.service.Deactivate(id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lead successfully deactivated",
	})
}
