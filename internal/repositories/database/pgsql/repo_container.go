package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	enrollmentRepo := newPgxEnrollmentRepository(dbPool)
	installmentRepo := newPgxInstallmentRepository(dbPool)
	packageRepo := newPgxPackageRepository(dbPool)
	permissionRepo := newPgxPermissionRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EnrollmentRepo:  enrollmentRepo,
		InstallmentRepo: installmentRepo,
		PackageRepo:     packageRepo,
		PermissionRepo:  permissionRepo,
		UserRepo:        userRepo,
	}
}
