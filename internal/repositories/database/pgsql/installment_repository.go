package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placementpro/enrollment_crm_app/internal/apperrors"
	"github.com/placementpro/enrollment_crm_app/internal/core/domain"
	portsrepo "github.com/placementpro/enrollment_crm_app/internal/core/ports/repositories"
	"github.com/placementpro/enrollment_crm_app/internal/models"
	"github.com/placementpro/enrollment_crm_app/internal/utils/mapping"
	"github.com/placementpro/enrollment_crm_app/internal/utils/pagination"
)

type PgxInstallmentRepository struct {
	BaseRepository
}

// newPgxInstallmentRepository creates a new repository for installment data.
func newPgxInstallmentRepository(pool *pgxpool.Pool) portsrepo.InstallmentRepositoryFacade {
	return &PgxInstallmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InstallmentRepositoryFacade = (*PgxInstallmentRepository)(nil)

const installmentColumns = `
	installment_id, enrolled_client_id, charge_type, installment_number,
	amount, net_amount, due_date, remark, is_initial_payment,
	paid, paid_date,
	edited_amount, edited_due_date, edited_remark, admin_id, sales_approval,
	created_at, created_by, last_updated_at, last_updated_by`

const updateInstallmentQuery = `
	UPDATE installments SET
		amount = $2,
		net_amount = $3,
		due_date = $4,
		remark = $5,
		paid = $6,
		paid_date = $7,
		edited_amount = $8,
		edited_due_date = $9,
		edited_remark = $10,
		admin_id = $11,
		sales_approval = $12,
		last_updated_at = $13,
		last_updated_by = $14
	WHERE installment_id = $1;`

func installmentUpdateArgs(m models.Installment) []interface{} {
	return []interface{}{
		m.InstallmentID,
		m.Amount,
		m.NetAmount,
		m.DueDate,
		m.Remark,
		m.Paid,
		m.PaidDate,
		m.EditedAmount,
		m.EditedDueDate,
		m.EditedRemark,
		m.AdminID,
		m.SalesApproval,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func scanInstallment(row pgx.Row) (*models.Installment, error) {
	var m models.Installment
	err := row.Scan(
		&m.InstallmentID,
		&m.EnrolledClientID,
		&m.ChargeType,
		&m.InstallmentNumber,
		&m.Amount,
		&m.NetAmount,
		&m.DueDate,
		&m.Remark,
		&m.IsInitialPayment,
		&m.Paid,
		&m.PaidDate,
		&m.EditedAmount,
		&m.EditedDueDate,
		&m.EditedRemark,
		&m.AdminID,
		&m.SalesApproval,
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

// replacePlanInTx deletes the existing plan for (client, charge type) and
// inserts the replacement rows using the provided transaction.
func replacePlanInTx(ctx context.Context, tx pgx.Tx, enrolledClientID string, chargeType domain.ChargeType, installments []domain.Installment) error {
	deleteQuery := `DELETE FROM installments WHERE enrolled_client_id = $1 AND charge_type = $2;`
	if _, err := tx.Exec(ctx, deleteQuery, enrolledClientID, string(chargeType)); err != nil {
		return apperrors.NewAppError(500, "failed to clear installment plan for client "+enrolledClientID, err)
	}

	if len(installments) == 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO installments (
			installment_id, enrolled_client_id, charge_type, installment_number,
			amount, net_amount, due_date, remark, is_initial_payment,
			paid, paid_date,
			edited_amount, edited_due_date, edited_remark, admin_id, sales_approval,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);`
	batch := &pgx.Batch{}
	for _, inst := range installments {
		m := mapping.ToModelInstallment(inst)
		batch.Queue(insertQuery,
			m.InstallmentID,
			m.EnrolledClientID,
			m.ChargeType,
			m.InstallmentNumber,
			m.Amount,
			m.NetAmount,
			m.DueDate,
			m.Remark,
			m.IsInitialPayment,
			m.Paid,
			m.PaidDate,
			m.EditedAmount,
			m.EditedDueDate,
			m.EditedRemark,
			m.AdminID,
			m.SalesApproval,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert installment plan for client "+enrolledClientID, err)
	}
	return nil
}

func (r *PgxInstallmentRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE installment_id = $1;`
	m, err := scanInstallment(r.Pool.QueryRow(ctx, query, installmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find installment "+installmentID, err)
	}
	d := mapping.ToDomainInstallment(*m)
	return &d, nil
}

func (r *PgxInstallmentRepository) FindInstallmentsByClientAndCharge(ctx context.Context, enrolledClientID string, chargeType domain.ChargeType) ([]domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE enrolled_client_id = $1 AND charge_type = $2
		ORDER BY installment_number;`
	rows, err := r.Pool.Query(ctx, query, enrolledClientID, string(chargeType))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query installments for client "+enrolledClientID, err)
	}
	defer rows.Close()

	installments := []models.Installment{}
	for rows.Next() {
		m, err := scanInstallment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan installment row for client "+enrolledClientID, err)
		}
		installments = append(installments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating installment rows for client "+enrolledClientID, err)
	}
	return mapping.ToDomainInstallmentSlice(installments), nil
}

// ListPaidInstallments retrieves the payments feed with token-based
// pagination, newest payment first.
func (r *PgxInstallmentRepository) ListPaidInstallments(ctx context.Context, limit int, nextToken *string) ([]domain.Installment, *string, error) {
	fetchLimit := limit + 1 // Fetch one extra to detect the next page

	baseQuery := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE paid AND paid_date IS NOT NULL`
	orderByClause := `ORDER BY paid_date DESC, installment_id DESC`

	args := []interface{}{}
	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		lastPaidDate, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastPaidDate, lastID)
		cursorClause := `AND (paid_date, installment_id) < ($1, $2)`
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query paid installments", err)
	}
	defer rows.Close()

	installments := make([]models.Installment, 0, fetchLimit)
	for rows.Next() {
		m, err := scanInstallment(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan paid installment row", err)
		}
		installments = append(installments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating paid installment rows", err)
	}

	var nextTokenVal *string
	if len(installments) > limit {
		last := installments[limit-1]
		token := pagination.EncodeToken(*last.PaidDate, last.InstallmentID)
		nextTokenVal = &token
		installments = installments[:limit]
	}
	return mapping.ToDomainInstallmentSlice(installments), nextTokenVal, nil
}

// ReplacePlan swaps the full plan for one charge type within a transaction.
func (r *PgxInstallmentRepository) ReplacePlan(ctx context.Context, enrolledClientID string, chargeType domain.ChargeType, installments []domain.Installment) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		return replacePlanInTx(ctx, tx, enrolledClientID, chargeType, installments)
	})
}

func (r *PgxInstallmentRepository) UpdateInstallment(ctx context.Context, installment domain.Installment) error {
	m := mapping.ToModelInstallment(installment)
	tag, err := r.Pool.Exec(ctx, updateInstallmentQuery, installmentUpdateArgs(m)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update installment "+m.InstallmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
