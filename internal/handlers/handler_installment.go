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

// installmentHandler handles HTTP requests for installment plans and the
// payments feed.
type installmentHandler struct {
	installmentSvc portssvc.InstallmentSvcFacade
}

func newInstallmentHandler(installmentSvc portssvc.InstallmentSvcFacade) *installmentHandler {
	return &installmentHandler{installmentSvc: installmentSvc}
}

// registerInstallmentRoutes sets up the installment and payment routes.
func registerInstallmentRoutes(rg *gin.RouterGroup, installmentSvc portssvc.InstallmentSvcFacade) {
	h := newInstallmentHandler(installmentSvc)

	installments := rg.Group("/installments")
	{
		installments.GET("/enrolled-client/:id", h.listInstallments)
		installments.PUT("/enrolled-client/:id", middleware.RequireRoles(domain.RoleSales, domain.RoleAdmin), h.replacePlan)
		installments.PUT("/admin/approval/:installmentID", middleware.RequireRoles(domain.RoleAdmin), h.adminEditInstallment)
		installments.PUT("/payment-status/:installmentID", middleware.RequireRoles(domain.RoleFinance), h.setPaymentStatus)
		installments.PUT("/payment-control/:installmentID", middleware.RequireRoles(domain.RoleFinance), h.setNetAmount)
		installments.GET("/payments", middleware.RequireRoles(domain.RoleFinance, domain.RoleAdmin), h.listPayments)
	}
}

// listInstallments godoc
// @Summary List installments for a client and charge type
// @Tags installments
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Param charge_type query string true "Charge type" Enums(enrollment_charge, offer_letter_charge, first_year_charge)
// @Success 200 {array} dto.InstallmentResponse
// @Failure 400 {object} ErrorResponse
// @Router /installments/enrolled-client/{id} [get]
func (h *installmentHandler) listInstallments(c *gin.Context) {
	chargeType := domain.ChargeType(c.Query("charge_type"))
	installments, err := h.installmentSvc.ListInstallments(c.Request.Context(), c.Param("id"), chargeType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponses(installments))
}

// replacePlan godoc
// @Summary Replace the installment plan for one charge type
// @Description Validates the submitted partition against the client's payable charge and persists it atomically. Plans with paid rows cannot be replaced.
// @Tags installments
// @Accept json
// @Produce json
// @Param id path string true "Enrolled Client ID"
// @Param plan body dto.ReplaceInstallmentPlanRequest true "Installment plan"
// @Success 200 {array} dto.InstallmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /installments/enrolled-client/{id} [put]
func (h *installmentHandler) replacePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReplaceInstallmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind installment plan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	installments, err := h.installmentSvc.ReplacePlan(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponses(installments))
}

// adminEditInstallment godoc
// @Summary Record an admin override on one installment
// @Description Stores the proposed amount, due date or remark in the edited shadow fields pending sales approval. Paid installments cannot be edited.
// @Tags installments
// @Accept json
// @Produce json
// @Param installmentID path string true "Installment ID"
// @Param edit body dto.AdminInstallmentEditRequest true "Proposed override"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /installments/admin/approval/{installmentID} [put]
func (h *installmentHandler) adminEditInstallment(c *gin.Context) {
	var req dto.AdminInstallmentEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	installment, err := h.installmentSvc.AdminEditInstallment(c.Request.Context(), c.Param("installmentID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(installment))
}

// setPaymentStatus godoc
// @Summary Set the paid flag of an installment
// @Tags installments
// @Accept json
// @Produce json
// @Param installmentID path string true "Installment ID"
// @Param status body dto.PaymentStatusRequest true "Paid flag"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 400 {object} ErrorResponse
// @Router /installments/payment-status/{installmentID} [put]
func (h *installmentHandler) setPaymentStatus(c *gin.Context) {
	var req dto.PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	installment, err := h.installmentSvc.SetPaymentStatus(c.Request.Context(), c.Param("installmentID"), req.Paid, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(installment))
}

// setNetAmount godoc
// @Summary Adjust the net collected amount of an installment
// @Tags installments
// @Accept json
// @Produce json
// @Param installmentID path string true "Installment ID"
// @Param control body dto.PaymentControlRequest true "Net amount"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 400 {object} ErrorResponse
// @Router /installments/payment-control/{installmentID} [put]
func (h *installmentHandler) setNetAmount(c *gin.Context) {
	var req dto.PaymentControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	installment, err := h.installmentSvc.SetNetAmount(c.Request.Context(), c.Param("installmentID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(installment))
}

// listPayments godoc
// @Summary List paid installments
// @Description Returns the cursor-paginated feed of paid installments, newest payment first.
// @Tags installments
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ErrorResponse
// @Router /installments/payments [get]
func (h *installmentHandler) listPayments(c *gin.Context) {
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.installmentSvc.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
