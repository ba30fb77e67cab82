package services

import (
	"context"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	"github.com/placementpro/enrollment_crm_app/internal/dto"
)

// PackageReaderSvc defines read operations for pricing packages
type PackageReaderSvc interface {
	// GetPackageByID retrieves one package by ID.
	GetPackageByID(ctx context.Context, packageID string) (*domain.PricingPackage, error)

	// ListPackages retrieves all packages, optionally including inactive ones.
	ListPackages(ctx context.Context, includeInactive bool) ([]domain.PricingPackage, error)
}

// PackageWriterSvc defines write operations for pricing packages
type PackageWriterSvc interface {
	// CreatePackage creates a new pricing package.
	CreatePackage(ctx context.Context, req dto.CreatePackageRequest, creatorUserID string) (*domain.PricingPackage, error)

	// UpdatePackage updates an existing pricing package.
	UpdatePackage(ctx context.Context, packageID string, req dto.UpdatePackageRequest, actorUserID string) (*domain.PricingPackage, error)
}

// PackageSvcFacade combines all package-related service interfaces
type PackageSvcFacade interface {
	PackageReaderSvc
	PackageWriterSvc
}
