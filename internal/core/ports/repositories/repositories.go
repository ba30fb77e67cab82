package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	EnrollmentRepo  EnrollmentRepositoryFacade
	InstallmentRepo InstallmentRepositoryFacade
	PackageRepo     PackageRepositoryFacade
	PermissionRepo  PermissionRepositoryFacade
	UserRepo        UserRepositoryFacade
}
