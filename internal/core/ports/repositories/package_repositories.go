package repositories

import (
	"context"

	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
)

// PackageReader defines read operations for pricing package data
type PackageReader interface {
	// FindPackageByID retrieves a specific package by its unique identifier.
	FindPackageByID(ctx context.Context, packageID string) (*domain.PricingPackage, error)

	// ListPackages retrieves all packages, optionally including inactive ones.
	ListPackages(ctx context.Context, includeInactive bool) ([]domain.PricingPackage, error)
}

// PackageWriter defines write operations for pricing package data
type PackageWriter interface {
	// SavePackage persists a new package.
	SavePackage(ctx context.Context, pkg domain.PricingPackage) error

	// UpdatePackage updates an existing package.
	UpdatePackage(ctx context.Context, pkg domain.PricingPackage) error
}

// PackageRepositoryFacade combines all package-related repository interfaces
type PackageRepositoryFacade interface {
	PackageReader
	PackageWriter
}
