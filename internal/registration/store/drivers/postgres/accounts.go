package postgres

import (
	"context"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
	"github.com/jackc/pgx/v5"
)

type accountsRepo struct {
	db DBTX
}

const accountColumns = `id, student_id, email, last_name, first_name, middle_name, suffix,
	course, section, year_level, password_hash, verified, created_at, updated_at`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.StudentID, &a.Email,
		&a.Profile.LastName, &a.Profile.FirstName, &a.Profile.MiddleName, &a.Profile.Suffix,
		&a.Profile.Course, &a.Profile.Section, &a.Profile.YearLevel,
		&a.PasswordHash, &a.Verified, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.Exec(ctx, `INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		a.ID, a.StudentID, a.Email,
		a.Profile.LastName, a.Profile.FirstName, a.Profile.MiddleName, a.Profile.Suffix,
		a.Profile.Course, a.Profile.Section, a.Profile.YearLevel,
		a.PasswordHash, a.Verified, a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByStudentID(ctx context.Context, studentID string) (domain.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE student_id = $1`, studentID))
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email))
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
