package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
)

type accountsRepo struct {
	db DBTX
}

const accountColumns = `id, student_id, email, last_name, first_name, middle_name, suffix,
	course, section, year_level, password_hash, verified, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a                  domain.Account
		verified           int64
		createdAt, updated int64
	)
	err := row.Scan(
		&a.ID, &a.StudentID, &a.Email,
		&a.Profile.LastName, &a.Profile.FirstName, &a.Profile.MiddleName, &a.Profile.Suffix,
		&a.Profile.Course, &a.Profile.Section, &a.Profile.YearLevel,
		&a.PasswordHash, &verified, &createdAt, &updated,
	)
	if err != nil {
		return domain.Account{}, err
	}
	a.Verified = verified != 0
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updated)
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	verified := 0
	if a.Verified {
		verified = 1
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.StudentID, a.Email,
		a.Profile.LastName, a.Profile.FirstName, a.Profile.MiddleName, a.Profile.Suffix,
		a.Profile.Course, a.Profile.Section, a.Profile.YearLevel,
		a.PasswordHash, verified, toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByStudentID(ctx context.Context, studentID string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE student_id = ?`, studentID)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) { _ = rows.Close() }(rows)

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
