package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
)

type pendingRepo struct {
	db DBTX
}

func (r *pendingRepo) GetPending(ctx context.Context, email string) (domain.PendingRegistration, error) {
	var (
		p                          domain.PendingRegistration
		expiresAt, created, update int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT email, student_id, last_name, first_name, middle_name,
			suffix, course, section, year_level, secret_hash, code_hash, expires_at, created_at, updated_at
		FROM pending_registrations WHERE email = ?`, email).Scan(
		&p.Email, &p.StudentID,
		&p.Profile.LastName, &p.Profile.FirstName, &p.Profile.MiddleName, &p.Profile.Suffix,
		&p.Profile.Course, &p.Profile.Section, &p.Profile.YearLevel,
		&p.SecretHash, &p.CodeHash, &expiresAt, &created, &update,
	)
	if err != nil {
		return domain.PendingRegistration{}, mapNotFound(err)
	}

	p.ExpiresAt = fromMillis(expiresAt)
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(update)
	return p, nil
}

func (r *pendingRepo) UpsertPending(ctx context.Context, p domain.PendingRegistration) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO pending_registrations (email, student_id, last_name,
			first_name, middle_name, suffix, course, section, year_level, secret_hash, code_hash,
			expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			student_id = excluded.student_id,
			last_name = excluded.last_name,
			first_name = excluded.first_name,
			middle_name = excluded.middle_name,
			suffix = excluded.suffix,
			course = excluded.course,
			section = excluded.section,
			year_level = excluded.year_level,
			secret_hash = excluded.secret_hash,
			code_hash = excluded.code_hash,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		p.Email, p.StudentID,
		p.Profile.LastName, p.Profile.FirstName, p.Profile.MiddleName, p.Profile.Suffix,
		p.Profile.Course, p.Profile.Section, p.Profile.YearLevel,
		p.SecretHash, p.CodeHash,
		toMillis(p.ExpiresAt), toMillis(p.CreatedAt), toMillis(p.UpdatedAt),
	)
	return err
}

func (r *pendingRepo) DeletePending(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_registrations WHERE email = ?`, email)
	return err
}

func (r *pendingRepo) DeletePendingExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pending_registrations WHERE expires_at < ?`, toMillis(t))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *pendingRepo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_registrations`).Scan(&n)
	return n, err
}
