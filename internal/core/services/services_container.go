package services

import (
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	portssvc "github.com/placementpro/enrollment_crm_app/internal/core/ports/services"
	"github.com/placementpro/enrollment_crm_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Package service first since the enrollment workflow validates package
	// selections through it.
	container.Package = NewPackageService(repos.PackageRepo)

	container.Enrollment = NewEnrollmentService(repos.EnrollmentRepo, repos.InstallmentRepo, container.Package)
	container.Installment = NewInstallmentService(repos.InstallmentRepo, repos.EnrollmentRepo)
	container.Assignment = NewAssignmentService(repos.EnrollmentRepo, repos.UserRepo)
	container.Permission = NewPermissionService(repos.PermissionRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	return container
}
