package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
	"github.com/placementpro/enrollment_crm_app/internal/middleware"
)

// permissionHandler handles HTTP requests for the RBAC permission matrix.
type permissionHandler struct {
	permissionSvc portssvc.PermissionSvcFacade
}

func newPermissionHandler(permissionSvc portssvc.PermissionSvcFacade) *permissionHandler {
	return &permissionHandler{permissionSvc: permissionSvc}
}

// registerPermissionRoutes sets up the RBAC matrix routes. All of them are
// admin-only.
func registerPermissionRoutes(rg *gin.RouterGroup, permissionSvc portssvc.PermissionSvcFacade) {
	h := newPermissionHandler(permissionSvc)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	rg.GET("/departments", adminOnly, h.listDepartments)
	rg.GET("/departments/:id/activities", adminOnly, h.listActivities)

	permissions := rg.Group("/permissions", adminOnly)
	{
		permissions.GET("", h.listPermissions)
		permissions.GET("/department/:id", h.listPermissionsByDepartment)
		permissions.PUT("", h.upsertPermission)
	}
}

// listDepartments godoc
// @Summary List departments
// @Tags permissions
// @Produce json
// @Success 200 {array} dto.DepartmentResponse
// @Router /departments [get]
func (h *permissionHandler) listDepartments(c *gin.Context) {
	departments, err := h.permissionSvc.ListDepartments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponses(departments))
}

// listActivities godoc
// @Summary List activities of a department
// @Tags permissions
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {array} dto.ActivityResponse
// @Router /departments/{id}/activities [get]
func (h *permissionHandler) listActivities(c *gin.Context) {
	activities, err := h.permissionSvc.ListActivitiesByDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponses(activities))
}

// listPermissions godoc
// @Summary List all role permission tuples
// @Tags permissions
// @Produce json
// @Success 200 {array} dto.RolePermissionResponse
// @Router /permissions [get]
func (h *permissionHandler) listPermissions(c *gin.Context) {
	perms, err := h.permissionSvc.ListPermissions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRolePermissionResponses(perms))
}

// listPermissionsByDepartment godoc
// @Summary List role permission tuples of one department
// @Tags permissions
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {array} dto.RolePermissionResponse
// @Router /permissions/department/{id} [get]
func (h *permissionHandler) listPermissionsByDepartment(c *gin.Context) {
	perms, err := h.permissionSvc.ListPermissionsByDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRolePermissionResponses(perms))
}

// upsertPermission godoc
// @Summary Create or replace a permission tuple
// @Description Upserts the flags for one (activity, department, subrole) tuple.
// @Tags permissions
// @Accept json
// @Produce json
// @Param permission body dto.UpsertRolePermissionRequest true "Permission tuple"
// @Success 200 {object} dto.RolePermissionResponse
// @Failure 400 {object} ErrorResponse
// @Router /permissions [put]
func (h *permissionHandler) upsertPermission(c *gin.Context) {
	var req dto.UpsertRolePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	perm, err := h.permissionSvc.UpsertPermission(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRolePermissionResponse(perm))
}
