package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
	"github.com/placementpro/enrollment_crm_app/internal/middleware"
)

// enrollmentHandler handles HTTP requests for enrollment listings, the
// approval workflow and client assignment.
type enrollmentHandler struct {
	enrollmentSvc portssvc.EnrollmentSvcFacade
	assignmentSvc portssvc.AssignmentSvcFacade
}

func newEnrollmentHandler(enrollmentSvc portssvc.EnrollmentSvcFacade, assignmentSvc portssvc.AssignmentSvcFacade) *enrollmentHandler {
	return &enrollmentHandler{
		enrollmentSvc: enrollmentSvc,
		assignmentSvc: assignmentSvc,
	}
}

// RegisterEnrollmentRoutes sets up the enrollment workflow routes.
func RegisterEnrollmentRoutes(rg *gin.RouterGroup, enrollmentSvc portssvc.EnrollmentSvcFacade, assignmentSvc portssvc.AssignmentSvcFacade) {
	h := newEnrollmentHandler(enrollmentSvc, assignmentSvc)

	clients := rg.Group("/enrolled-clients")
	{
		clients.GET("/sales/all", middleware.RequireRoles(domain.RoleSales), h.listForScope(portssvc.ScopeSales))
		clients.GET("/admin/all", middleware.RequireRoles(domain.RoleAdmin), h.listForScope(portssvc.ScopeAdmin))
		clients.GET("/accounts/sales/all", middleware.RequireRoles(domain.RoleFinance), h.listForScope(portssvc.ScopeAccountsSales))
		clients.GET("/accounts/admin/all", middleware.RequireRoles(domain.RoleFinance), h.listForScope(portssvc.ScopeAccountsAdmin))
		clients.GET("/:id", h.getEnrolledClient)

		clients.PUT("/sales/:id", middleware.RequireRoles(domain.RoleSales), h.submitSalesConfiguration)
		clients.PUT("/admin/approval/:id", middleware.RequireRoles(domain.RoleAdmin), h.adminReview)
		clients.PUT("/sales/approval/:id", middleware.RequireRoles(domain.RoleSales), h.salesApproveEdits)
		clients.PUT("/final-configuration/admin/:id", middleware.RequireRoles(domain.RoleAdmin), h.submitFinalConfiguration)
		clients.PUT("/final/admin/:id", middleware.RequireRoles(domain.RoleAdmin), h.adminApproveFinal)
		clients.PUT("/final/sales/:id", middleware.RequireRoles(domain.RoleSales), h.salesApproveFinal)
		clients.PUT("/status/:id", middleware.RequireRoles(domain.RoleSales, domain.RoleAdmin), h.updateOperationalStatus)

		clients.POST("/:id/resume", middleware.RequireRoles(domain.RoleSales, domain.RoleAdmin), h.uploadResume)
		clients.GET("/:id/resume", h.getResume)
	}

	assignments := rg.Group("/client-assignments", middleware.RequireRoles(domain.RoleAdmin))
	{
		assignments.POST("/assign-enrolled", h.assignEnrolled)
		assignments.GET("/marketing-team-leads", h.listMarketingLeads)
	}
}

// listForScope godoc
// @Summary List enrollments for a role scope
// @Description Retrieves a tab-partitioned, paginated enrollment listing for the caller's role scope.
// @Tags enrolled-clients
// @Produce json
// @Param tab query string false "Listing tab" Enums(AllEnrollments, Approved, AdminReviewPending, SalesReviewPending, MyReview)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search over lead name, email and phone"
// @Success 200 {object} dto.ListEnrollmentsResponse
// @Failure 400 {object} ErrorResponse
// @Router /enrolled-clients/sales/all [get]
func (h *enrollmentHandler) listForScope(scope portssvc.ListingScope) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params dto.ListEnrollmentsParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
			return
		}
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}

		resp, err := h.enrollmentSvc.ListEnrollments(c.Request.Context(), scope, params, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// getEnrolledClient godoc
// @Summary Get an enrolled client
// @Description Retrieves one enrollment by ID.
// @Tags enrolled-clients
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Success 200 {object} dto.EnrolledClientResponse
// @Failure 404 {object} ErrorResponse
// @Router /enrolled-clients/{id} [get]
func (h *enrollmentHandler) getEnrolledClient(c *gin.Context) {
	client, err := h.enrollmentSvc.GetEnrolledClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrolledClientResponse(client, nil))
}

// submitSalesConfiguration godoc
// @Summary Submit a sales configuration
// @Description Writes the package selection, payable enrollment charge and full installment plan atomically. A reconciliation failure persists nothing.
// @Tags enrolled-clients
// @Accept json
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Param configuration body dto.SalesConfigurationRequest true "Configuration"
// @Success 200 {object} dto.EnrolledClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /enrolled-clients/sales/{id} [put]
func (h *enrollmentHandler) submitSalesConfiguration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SalesConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind sales configuration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.enrollmentSvc.SubmitSalesConfiguration(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrolledClientResponse(client, nil))
}

// adminReview godoc
// @Summary Review a sales configuration
// @Description Approves the configuration as-is, or records edited values and returns it to sales.
// @Tags enrolled-clients
// @Accept json
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Param review body dto.AdminReviewRequest true "Review decision"
// @Success 200 {object} dto.EnrolledClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /enrolled-clients/admin/approval/{id} [put]
func (h *enrollmentHandler) adminReview(c *gin.Context) {
	var req dto.AdminReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.enrollmentSvc.AdminReview(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrolledClientResponse(client, nil))
}

// salesApproveEdits godoc
// @Summary Approve pending admin edits
// @Description Commits the admin's edits into the payable fields; a counter-offer goes through the sales configuration endpoint instead.
// @Tags enrolled-clients
// @Accept json
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Param approval body dto.SalesApprovalRequest true "Approval"
// @Success 200 {object} dto.EnrolledClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /enrolled-clients/sales/approval/{id} [put]
func (h *enrollmentHandler) salesApproveEdits(c *gin.Context) {
	var req dto.SalesApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	if !req.Approve {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "To decline edits, resubmit a configuration via the sales configuration endpoint"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.enrollmentSvc.SalesApproveEdits(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrolledClientResponse(client, nil))
}

// submitFinalConfiguration godoc
// @Summary Submit the final configuration
// @Description Starts or revises the second negotiation round over offer-letter and first-year pricing.
// @Tags enrolled-clients
// @Accept json
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Param configuration body dto.FinalConfigurationRequest true "Final configuration"
// @Success 200 {object} dto.EnrolledClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /enrolled-clients/final-configuration/admin/{id} [put]
func (h *enrollmentHandler) submitFinalConfiguration(c *gin.Context) {
	var req dto.FinalConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.enrollmentSvc.SubmitFinalConfiguration(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrolledClientResponse(client, nil))
}

// adminApproveFinal godoc
// @Summary Approve the final configuration (admin)
// @Tags enrolled-clients
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Success 200 {object} dto.EnrolledClientResponse
// @Failure 409 {object} ErrorResponse
// @Router /enrolled-clients/final/admin/{id} [put]
func (h *enrollmentHandler) adminApproveFinal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	client, err := h.enrollmentSvc.AdminApproveFinal(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrolledClientResponse(client, nil))
}

// salesApproveFinal godoc
// @Summary Approve the final configuration (sales)
// @Tags enrolled-clients
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Success 200 {object} dto.EnrolledClientResponse
// @Failure 409 {object} ErrorResponse
// @Router /enrolled-clients/final/sales/{id} [put]
func (h *enrollmentHandler) salesApproveFinal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	client, err := h.enrollmentSvc.SalesApproveFinal(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrolledClientResponse(client, nil))
}

// updateOperationalStatus godoc
// @Summary Update operational status
// @Description Updates first-call status and the training flag.
// @Tags enrolled-clients
// @Accept json
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Param status body dto.OperationalStatusRequest true "Status"
// @Success 200 {object} dto.EnrolledClientResponse
// @Failure 400 {object} ErrorResponse
// @Router /enrolled-clients/status/{id} [put]
func (h *enrollmentHandler) updateOperationalStatus(c *gin.Context) {
	var req dto.OperationalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.enrollmentSvc.UpdateOperationalStatus(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrolledClientResponse(client, nil))
}

// assignEnrolled godoc
// @Summary Assign clients to a marketing team lead
// @Description Bulk-assigns fully-approved clients to one marketing team lead, all-or-nothing.
// @Tags enrolled-clients
// @Accept json
// @Produce json
// @Param assignment body dto.AssignEnrolledRequest true "Assignment"
// @Success 200 {object} dto.AssignEnrolledResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /client-assignments/assign-enrolled [post]
func (h *enrollmentHandler) assignEnrolled(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AssignEnrolledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind assignment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.assignmentSvc.AssignEnrolled(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listMarketingLeads godoc
// @Summary List marketing team leads
// @Description Returns the selectable marketing team leads with current assignment counts.
// @Tags enrolled-clients
// @Produce json
// @Success 200 {object} dto.ListMarketingLeadsResponse
// @Router /client-assignments/marketing-team-leads [get]
func (h *enrollmentHandler) listMarketingLeads(c *gin.Context) {
	resp, err := h.assignmentSvc.ListMarketingLeads(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
