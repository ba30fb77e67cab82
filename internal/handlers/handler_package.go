package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
	"github.com/placementpro/enrollment_crm_app/internal/middleware"
)

// packageHandler handles HTTP requests for pricing packages.
type packageHandler struct {
	packageSvc portssvc.PackageSvcFacade
}

func newPackageHandler(packageSvc portssvc.PackageSvcFacade) *packageHandler {
	return &packageHandler{packageSvc: packageSvc}
}

// registerPackageRoutes sets up the pricing package routes.
func registerPackageRoutes(rg *gin.RouterGroup, packageSvc portssvc.PackageSvcFacade) {
	h := newPackageHandler(packageSvc)

	packages := rg.Group("/packages")
	{
		packages.GET("", h.listPackages)
		packages.GET("/:id", h.getPackage)
		packages.POST("", middleware.RequireRoles(domain.RoleAdmin), h.createPackage)
		packages.PUT("/:id", middleware.RequireRoles(domain.RoleAdmin), h.updatePackage)
	}
}

// listPackages godoc
// @Summary List pricing packages
// @Description Lists active packages; pass includeInactive=true for the full catalog.
// @Tags packages
// @Produce json
// @Param includeInactive query bool false "Include retired packages"
// @Success 200 {object} dto.ListPackagesResponse
// @Router /packages [get]
func (h *packageHandler) listPackages(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	packages, err := h.packageSvc.ListPackages(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPackagesResponse(packages))
}

// getPackage godoc
// @Summary Get a pricing package
// @Tags packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} dto.PackageResponse
// @Failure 404 {object} ErrorResponse
// @Router /packages/{id} [get]
func (h *packageHandler) getPackage(c *gin.Context) {
	pkg, err := h.packageSvc.GetPackageByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPackageResponse(pkg))
}

// createPackage godoc
// @Summary Create a pricing package
// @Description Creates a package with exactly one first-year pricing mode (salary percentage or fixed price).
// @Tags packages
// @Accept json
// @Produce json
// @Param package body dto.CreatePackageRequest true "Package"
// @Success 201 {object} dto.PackageResponse
// @Failure 400 {object} ErrorResponse
// @Router /packages [post]
func (h *packageHandler) createPackage(c *gin.Context) {
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pkg, err := h.packageSvc.CreatePackage(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPackageResponse(pkg))
}

// updatePackage godoc
// @Summary Update a pricing package
// @Tags packages
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param package body dto.UpdatePackageRequest true "Fields to update"
// @Success 200 {object} dto.PackageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /packages/{id} [put]
func (h *packageHandler) updatePackage(c *gin.Context) {
	var req dto.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pkg, err := h.packageSvc.UpdatePackage(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPackageResponse(pkg))
}
