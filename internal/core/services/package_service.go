package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
	"github.com/placementpro/enrollment_crm_app/internal/middleware"
)

var ErrPackagePricingMode = errors.New("exactly one of first-year percentage and fixed price must be set")

// packageService manages the pricing package templates.
type packageService struct {
	packageRepo portsrepo.PackageRepositoryFacade
}

// NewPackageService creates a new package service.
func NewPackageService(packageRepo portsrepo.PackageRepositoryFacade) portssvc.PackageSvcFacade {
	return &packageService{packageRepo: packageRepo}
}

var _ portssvc.PackageSvcFacade = (*packageService)(nil)

func (s *packageService) GetPackageByID(ctx context.Context, packageID string) (*domain.PricingPackage, error) {
	pkg, err := s.packageRepo.FindPackageByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find package %s: %w", packageID, err)
	}
	return pkg, nil
}

func (s *packageService) ListPackages(ctx context.Context, includeInactive bool) ([]domain.PricingPackage, error) {
	packages, err := s.packageRepo.ListPackages(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (s *packageService) CreatePackage(ctx context.Context, req dto.CreatePackageRequest, creatorUserID string) (*domain.PricingPackage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if (req.FirstYearSalaryPercentage != nil) == (req.FirstYearFixedPrice != nil) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPackagePricingMode)
	}
	if !req.EnrollmentCharge.IsPositive() || !req.OfferLetterCharge.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrChargeNotPositive)
	}

	pkg := domain.PricingPackage{
		PackageID:                 uuid.NewString(),
		PlanName:                  req.PlanName,
		EnrollmentCharge:          req.EnrollmentCharge,
		OfferLetterCharge:         req.OfferLetterCharge,
		FirstYearSalaryPercentage: req.FirstYearSalaryPercentage,
		FirstYearFixedPrice:       req.FirstYearFixedPrice,
		Features:                  req.Features,
		Status:                    domain.PackageActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.packageRepo.SavePackage(ctx, pkg); err != nil {
		logger.Error("Failed to save package", slog.String("error", err.Error()), slog.String("plan_name", req.PlanName))
		return nil, fmt.Errorf("failed to save package: %w", err)
	}
	logger.Info("Package created", slog.String("package_id", pkg.PackageID), slog.String("plan_name", pkg.PlanName))
	return &pkg, nil
}

func (s *packageService) UpdatePackage(ctx context.Context, packageID string, req dto.UpdatePackageRequest, actorUserID string) (*domain.PricingPackage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	pkg, err := s.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	if req.PlanName != nil {
		pkg.PlanName = *req.PlanName
	}
	if req.EnrollmentCharge != nil {
		pkg.EnrollmentCharge = *req.EnrollmentCharge
	}
	if req.OfferLetterCharge != nil {
		pkg.OfferLetterCharge = *req.OfferLetterCharge
	}
	if req.FirstYearSalaryPercentage != nil {
		pkg.FirstYearSalaryPercentage = req.FirstYearSalaryPercentage
		pkg.FirstYearFixedPrice = nil
	}
	if req.FirstYearFixedPrice != nil {
		pkg.FirstYearFixedPrice = req.FirstYearFixedPrice
		pkg.FirstYearSalaryPercentage = nil
	}
	if req.Features != nil {
		pkg.Features = req.Features
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.PackageActive, domain.PackageInactive:
			pkg.Status = *req.Status
		default:
			return nil, fmt.Errorf("%w: unknown package status %q", apperrors.ErrValidation, *req.Status)
		}
	}
	if (pkg.FirstYearSalaryPercentage != nil) == (pkg.FirstYearFixedPrice != nil) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPackagePricingMode)
	}
	pkg.LastUpdatedAt = now
	pkg.LastUpdatedBy = actorUserID

	if err := s.packageRepo.UpdatePackage(ctx, *pkg); err != nil {
		logger.Error("Failed to update package", slog.String("error", err.Error()), slog.String("package_id", packageID))
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	return pkg, nil
}
