package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	"github.com/placementpro/enrollment_crm_app/internal/models"
	"github.com/placementpro/enrollment_crm_app/internal/utils/mapping"
)

type PgxEnrollmentRepository struct {
	BaseRepository
}

// newPgxEnrollmentRepository creates a new repository for enrolled client data.
func newPgxEnrollmentRepository(pool *pgxpool.Pool) portsrepo.EnrollmentRepositoryWithTx {
	return &PgxEnrollmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EnrollmentRepositoryWithTx = (*PgxEnrollmentRepository)(nil)

const enrolledClientColumns = `
	enrolled_client_id, lead_id, package_id,
	payable_enrollment_charge, payable_offer_letter_charge, payable_first_year_percentage, payable_first_year_fixed,
	edited_enrollment_charge, edited_offer_letter_charge, edited_first_year_percentage, edited_first_year_fixed,
	approval_by_sales, approval_by_admin, has_update,
	final_approval_sales, final_approval_by_admin, has_update_in_final,
	is_training_required, first_call_status, resume_file_name,
	sales_person_id, admin_id, marketing_lead_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEnrolledClient(row pgx.Row) (*models.EnrolledClient, error) {
	var m models.EnrolledClient
	err := row.Scan(
		&m.EnrolledClientID,
		&m.LeadID,
		&m.PackageID,
		&m.PayableEnrollmentCharge,
		&m.PayableOfferLetterCharge,
		&m.PayableFirstYearPercentage,
		&m.PayableFirstYearFixed,
		&m.EditedEnrollmentCharge,
		&m.EditedOfferLetterCharge,
		&m.EditedFirstYearPercentage,
		&m.EditedFirstYearFixed,
		&m.ApprovalBySales,
		&m.ApprovalByAdmin,
		&m.HasUpdate,
		&m.FinalApprovalSales,
		&m.FinalApprovalByAdmin,
		&m.HasUpdateInFinal,
		&m.IsTrainingRequired,
		&m.FirstCallStatus,
		&m.ResumeFileName,
		&m.AssignedSalesPersonID,
		&m.AssignedAdminID,
		&m.AssignedMarketingLeadID,
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

// stagePredicate translates a derived approval stage into the flag columns
// that produce it.
func stagePredicate(stage domain.ApprovalStage) string {
	switch stage {
	case domain.StageUnconfigured:
		return "package_id IS NULL"
	case domain.StageFullyApproved:
		return "package_id IS NOT NULL AND approval_by_sales AND approval_by_admin AND NOT has_update"
	case domain.StagePendingSalesReview:
		return "package_id IS NOT NULL AND has_update"
	default: // StagePendingAdminReview
		return "package_id IS NOT NULL AND NOT has_update AND NOT (approval_by_sales AND approval_by_admin)"
	}
}

func (r *PgxEnrollmentRepository) FindEnrolledClientByID(ctx context.Context, enrolledClientID string) (*domain.EnrolledClient, error) {
	query := `SELECT ` + enrolledClientColumns + ` FROM enrolled_clients WHERE enrolled_client_id = $1;`
	m, err := scanEnrolledClient(r.Pool.QueryRow(ctx, query, enrolledClientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find enrolled client "+enrolledClientID, err)
	}
	d := mapping.ToDomainEnrolledClient(*m)
	return &d, nil
}

func (r *PgxEnrollmentRepository) FindEnrolledClientsByIDs(ctx context.Context, enrolledClientIDs []string) (map[string]domain.EnrolledClient, error) {
	query := `SELECT ` + enrolledClientColumns + ` FROM enrolled_clients WHERE enrolled_client_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, enrolledClientIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query enrolled clients by IDs", err)
	}
	defer rows.Close()

	clients := make(map[string]domain.EnrolledClient, len(enrolledClientIDs))
	for rows.Next() {
		m, err := scanEnrolledClient(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan enrolled client row", err)
		}
		clients[m.EnrolledClientID] = mapping.ToDomainEnrolledClient(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating enrolled client rows", err)
	}
	return clients, nil
}

func (r *PgxEnrollmentRepository) ListEnrolledClients(ctx context.Context, filter portsrepo.EnrollmentListFilter) ([]domain.EnrolledClient, int, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}

	if filter.Stage != nil {
		whereClause += " AND " + stagePredicate(*filter.Stage)
	}
	if filter.SalesPersonID != nil {
		args = append(args, *filter.SalesPersonID)
		whereClause += " AND ec.sales_person_id = $" + strconv.Itoa(len(args))
	}
	if filter.AdminID != nil {
		args = append(args, *filter.AdminID)
		whereClause += " AND ec.admin_id = $" + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		whereClause += " AND (l.name ILIKE $" + n + " OR l.email ILIKE $" + n + " OR l.phone ILIKE $" + n + ")"
	}

	countQuery := `
		SELECT COUNT(*)
		FROM enrolled_clients ec
		JOIN leads l ON l.lead_id = ec.lead_id
		` + whereClause + `;`
	var total int
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count enrolled clients", err)
	}

	args = append(args, filter.Limit)
	limitPos := strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPos := strconv.Itoa(len(args))

	listQuery := `
		SELECT ` + prefixedEnrolledClientColumns("ec") + `
		FROM enrolled_clients ec
		JOIN leads l ON l.lead_id = ec.lead_id
		` + whereClause + `
		ORDER BY ec.created_at DESC, ec.enrolled_client_id
		LIMIT $` + limitPos + ` OFFSET $` + offsetPos + `;`

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list enrolled clients", err)
	}
	defer rows.Close()

	clients := []domain.EnrolledClient{}
	for rows.Next() {
		m, err := scanEnrolledClient(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan enrolled client row", err)
		}
		clients = append(clients, mapping.ToDomainEnrolledClient(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating enrolled client rows", err)
	}
	return clients, total, nil
}

func (r *PgxEnrollmentRepository) FindLeadsByIDs(ctx context.Context, leadIDs []string) (map[string]domain.Lead, error) {
	query := `
		SELECT lead_id, name, email, phone, source, created_at, created_by, last_updated_at, last_updated_by
		FROM leads
		WHERE lead_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, leadIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query leads by IDs", err)
	}
	defer rows.Close()

	leads := make(map[string]domain.Lead, len(leadIDs))
	for rows.Next() {
		var m models.Lead
		err := rows.Scan(
			&m.LeadID,
			&m.Name,
			&m.Email,
			&m.Phone,
			&m.Source,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan lead row", err)
		}
		leads[m.LeadID] = mapping.ToDomainLead(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating lead rows", err)
	}
	return leads, nil
}

const updateEnrolledClientQuery = `
	UPDATE enrolled_clients SET
		package_id = $2,
		payable_enrollment_charge = $3,
		payable_offer_letter_charge = $4,
		payable_first_year_percentage = $5,
		payable_first_year_fixed = $6,
		edited_enrollment_charge = $7,
		edited_offer_letter_charge = $8,
		edited_first_year_percentage = $9,
		edited_first_year_fixed = $10,
		approval_by_sales = $11,
		approval_by_admin = $12,
		has_update = $13,
		final_approval_sales = $14,
		final_approval_by_admin = $15,
		has_update_in_final = $16,
		is_training_required = $17,
		first_call_status = $18,
		last_updated_at = $19,
		last_updated_by = $20
	WHERE enrolled_client_id = $1;`

func enrolledClientUpdateArgs(m models.EnrolledClient) []interface{} {
	return []interface{}{
		m.EnrolledClientID,
		m.PackageID,
		m.PayableEnrollmentCharge,
		m.PayableOfferLetterCharge,
		m.PayableFirstYearPercentage,
		m.PayableFirstYearFixed,
		m.EditedEnrollmentCharge,
		m.EditedOfferLetterCharge,
		m.EditedFirstYearPercentage,
		m.EditedFirstYearFixed,
		m.ApprovalBySales,
		m.ApprovalByAdmin,
		m.HasUpdate,
		m.FinalApprovalSales,
		m.FinalApprovalByAdmin,
		m.HasUpdateInFinal,
		m.IsTrainingRequired,
		m.FirstCallStatus,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveConfiguration updates the client row and replaces the installment plans
// for the given charge types within one DB transaction.
func (r *PgxEnrollmentRepository) SaveConfiguration(ctx context.Context, client domain.EnrolledClient, plans map[domain.ChargeType][]domain.Installment) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		m := mapping.ToModelEnrolledClient(client)
		tag, err := tx.Exec(ctx, updateEnrolledClientQuery, enrolledClientUpdateArgs(m)...)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update enrolled client "+m.EnrolledClientID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		for chargeType, plan := range plans {
			if err := replacePlanInTx(ctx, tx, client.EnrolledClientID, chargeType, plan); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgxEnrollmentRepository) UpdateEnrolledClient(ctx context.Context, client domain.EnrolledClient) error {
	m := mapping.ToModelEnrolledClient(client)
	tag, err := r.Pool.Exec(ctx, updateEnrolledClientQuery, enrolledClientUpdateArgs(m)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update enrolled client "+m.EnrolledClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateClientWithInstallments updates the client row and the given
// installment rows atomically.
func (r *PgxEnrollmentRepository) UpdateClientWithInstallments(ctx context.Context, client domain.EnrolledClient, installments []domain.Installment) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		m := mapping.ToModelEnrolledClient(client)
		tag, err := tx.Exec(ctx, updateEnrolledClientQuery, enrolledClientUpdateArgs(m)...)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update enrolled client "+m.EnrolledClientID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		if len(installments) > 0 {
			batch := &pgx.Batch{}
			for _, inst := range installments {
				mi := mapping.ToModelInstallment(inst)
				batch.Queue(updateInstallmentQuery, installmentUpdateArgs(mi)...)
			}
			br := tx.SendBatch(ctx, batch)
			if err := br.Close(); err != nil {
				return apperrors.NewAppError(500, "failed to execute installment update batch for client "+m.EnrolledClientID, err)
			}
		}
		return nil
	})
}

// SaveResume stores the resume bytes and mirrors the file name onto the
// client row, in one transaction.
func (r *PgxEnrollmentRepository) SaveResume(ctx context.Context, enrolledClientID string, file domain.ResumeFile, userID string, now time.Time) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		resumeQuery := `
			INSERT INTO resumes (enrolled_client_id, file_name, content_type, data, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $5, $6)
			ON CONFLICT (enrolled_client_id) DO UPDATE SET
				file_name = EXCLUDED.file_name,
				content_type = EXCLUDED.content_type,
				data = EXCLUDED.data,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by;`
		if _, err := tx.Exec(ctx, resumeQuery, enrolledClientID, file.FileName, file.ContentType, file.Data, now, userID); err != nil {
			return apperrors.NewAppError(500, "failed to store resume for client "+enrolledClientID, err)
		}

		clientQuery := `
			UPDATE enrolled_clients
			SET resume_file_name = $2, last_updated_at = $3, last_updated_by = $4
			WHERE enrolled_client_id = $1;`
		tag, err := tx.Exec(ctx, clientQuery, enrolledClientID, file.FileName, now, userID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update resume file name for client "+enrolledClientID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *PgxEnrollmentRepository) FindResume(ctx context.Context, enrolledClientID string) (*domain.ResumeFile, error) {
	query := `SELECT file_name, content_type, data FROM resumes WHERE enrolled_client_id = $1;`
	var file domain.ResumeFile
	err := r.Pool.QueryRow(ctx, query, enrolledClientID).Scan(&file.FileName, &file.ContentType, &file.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find resume for client "+enrolledClientID, err)
	}
	return &file, nil
}

// AssignClients points every listed client at the marketing lead in a single
// statement inside a transaction, so a partial batch never commits.
func (r *PgxEnrollmentRepository) AssignClients(ctx context.Context, enrolledClientIDs []string, marketingLeadID string, remark string, actorUserID string, now time.Time) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE enrolled_clients
			SET marketing_lead_id = $2,
			    assignment_remark = $3,
			    last_updated_at = $4,
			    last_updated_by = $5
			WHERE enrolled_client_id = ANY($1);`
		tag, err := tx.Exec(ctx, query, enrolledClientIDs, marketingLeadID, remark, now, actorUserID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to assign clients to marketing lead "+marketingLeadID, err)
		}
		if int(tag.RowsAffected()) != len(enrolledClientIDs) {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *PgxEnrollmentRepository) ListMarketingLeads(ctx context.Context) ([]portsrepo.MarketingLead, error) {
	query := `
		SELECT u.user_id, u.name, u.email, u.password_hash, u.role, u.dept_id, u.subrole, u.is_active,
		       u.created_at, u.created_by, u.last_updated_at, u.last_updated_by, u.deleted_at,
		       COUNT(ec.enrolled_client_id) AS assigned_count
		FROM users u
		LEFT JOIN enrolled_clients ec ON ec.marketing_lead_id = u.user_id
		WHERE u.role = 'MARKETING_TEAM_LEAD' AND u.deleted_at IS NULL AND u.is_active
		GROUP BY u.user_id
		ORDER BY u.name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query marketing team leads", err)
	}
	defer rows.Close()

	leads := []portsrepo.MarketingLead{}
	for rows.Next() {
		var m models.User
		var count int
		err := rows.Scan(
			&m.UserID,
			&m.Name,
			&m.Email,
			&m.PasswordHash,
			&m.Role,
			&m.DepartmentID,
			&m.Subrole,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.DeletedAt,
			&count,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan marketing team lead row", err)
		}
		leads = append(leads, portsrepo.MarketingLead{User: mapping.ToDomainUser(m), AssignedCount: count})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating marketing team lead rows", err)
	}
	return leads, nil
}

// prefixedEnrolledClientColumns qualifies the shared column list with a table
// alias for joined queries.
func prefixedEnrolledClientColumns(alias string) string {
	return alias + `.enrolled_client_id, ` + alias + `.lead_id, ` + alias + `.package_id,
	` + alias + `.payable_enrollment_charge, ` + alias + `.payable_offer_letter_charge, ` + alias + `.payable_first_year_percentage, ` + alias + `.payable_first_year_fixed,
	` + alias + `.edited_enrollment_charge, ` + alias + `.edited_offer_letter_charge, ` + alias + `.edited_first_year_percentage, ` + alias + `.edited_first_year_fixed,
	` + alias + `.approval_by_sales, ` + alias + `.approval_by_admin, ` + alias + `.has_update,
	` + alias + `.final_approval_sales, ` + alias + `.final_approval_by_admin, ` + alias + `.has_update_in_final,
	` + alias + `.is_training_required, ` + alias + `.first_call_status, ` + alias + `.resume_file_name,
	` + alias + `.sales_person_id, ` + alias + `.admin_id, ` + alias + `.marketing_lead_id,
	` + alias + `.created_at, ` + alias + `.created_by, ` + alias + `.last_updated_at, ` + alias + `.last_updated_by`
}
