package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	"github.com/placementpro/enrollment_crm_app/internal/models"
	"github.com/placementpro/enrollment_crm_app/internal/utils/mapping"
)

type PgxPackageRepository struct {
	BaseRepository
}

// newPgxPackageRepository creates a new repository for pricing package data.
func newPgxPackageRepository(pool *pgxpool.Pool) portsrepo.PackageRepositoryFacade {
	return &PgxPackageRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PackageRepositoryFacade = (*PgxPackageRepository)(nil)

const packageColumns = `
	package_id, plan_name, enrollment_charge, offer_letter_charge,
	first_year_salary_percentage, first_year_fixed_price, features, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPackage(row pgx.Row) (*models.PricingPackage, error) {
	var m models.PricingPackage
	err := row.Scan(
		&m.PackageID,
		&m.PlanName,
		&m.EnrollmentCharge,
		&m.OfferLetterCharge,
		&m.FirstYearSalaryPercentage,
		&m.FirstYearFixedPrice,
		&m.Features,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxPackageRepository) FindPackageByID(ctx context.Context, packageID string) (*domain.PricingPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE package_id = $1;`
	m, err := scanPackage(r.Pool.QueryRow(ctx, query, packageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find package "+packageID, err)
	}
	d := mapping.ToDomainPricingPackage(*m)
	return &d, nil
}

func (r *PgxPackageRepository) ListPackages(ctx context.Context, includeInactive bool) ([]domain.PricingPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM packages`
	if !includeInactive {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY plan_name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query packages", err)
	}
	defer rows.Close()

	packages := []domain.PricingPackage{}
	for rows.Next() {
		m, err := scanPackage(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan package row", err)
		}
		packages = append(packages, mapping.ToDomainPricingPackage(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating package rows", err)
	}
	return packages, nil
}

func (r *PgxPackageRepository) SavePackage(ctx context.Context, pkg domain.PricingPackage) error {
	m := mapping.ToModelPricingPackage(pkg)
	query := `
		INSERT INTO packages (
			package_id, plan_name, enrollment_charge, offer_letter_charge,
			first_year_salary_percentage, first_year_fixed_price, features, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := r.Pool.Exec(ctx, query,
		m.PackageID,
		m.PlanName,
		m.EnrollmentCharge,
		m.OfferLetterCharge,
		m.FirstYearSalaryPercentage,
		m.FirstYearFixedPrice,
		m.Features,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert package "+m.PackageID, err)
	}
	return nil
}

func (r *PgxPackageRepository) UpdatePackage(ctx context.Context, pkg domain.PricingPackage) error {
	m := mapping.ToModelPricingPackage(pkg)
	query := `
		UPDATE packages SET
			plan_name = $2,
			enrollment_charge = $3,
			offer_letter_charge = $4,
			first_year_salary_percentage = $5,
			first_year_fixed_price = $6,
			features = $7,
			status = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE package_id = $1;`
	tag, err := r.Pool.Exec(ctx, query,
		m.PackageID,
		m.PlanName,
		m.EnrollmentCharge,
		m.OfferLetterCharge,
		m.FirstYearSalaryPercentage,
		m.FirstYearFixedPrice,
		m.Features,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update package "+m.PackageID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
