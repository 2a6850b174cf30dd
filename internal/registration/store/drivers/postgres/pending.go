package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
)

type pendingRepo struct {
	db DBTX
}

func (r *pendingRepo) GetPending(ctx context.Context, email string) (domain.PendingRegistration, error) {
	var p domain.PendingRegistration
	err := r.db.QueryRow(ctx, `SELECT email, student_id, last_name, first_name, middle_name,
			suffix, course, section, year_level, secret_hash, code_hash, expires_at, created_at, updated_at
		FROM pending_registrations WHERE email = $1`, email).Scan(
		&p.Email, &p.StudentID,
		&p.Profile.LastName, &p.Profile.FirstName, &p.Profile.MiddleName, &p.Profile.Suffix,
		&p.Profile.Course, &p.Profile.Section, &p.Profile.YearLevel,
		&p.SecretHash, &p.CodeHash, &p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.PendingRegistration{}, mapNotFound(err)
	}

	p.ExpiresAt = p.ExpiresAt.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *pendingRepo) UpsertPending(ctx context.Context, p domain.PendingRegistration) error {
	_, err := r.db.Exec(ctx, `INSERT INTO pending_registrations (email, student_id, last_name,
			first_name, middle_name, suffix, course, section, year_level, secret_hash, code_hash,
			expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (email) DO UPDATE SET
			student_id = EXCLUDED.student_id,
			last_name = EXCLUDED.last_name,
			first_name = EXCLUDED.first_name,
			middle_name = EXCLUDED.middle_name,
			suffix = EXCLUDED.suffix,
			course = EXCLUDED.course,
			section = EXCLUDED.section,
			year_level = EXCLUDED.year_level,
			secret_hash = EXCLUDED.secret_hash,
			code_hash = EXCLUDED.code_hash,
			expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at`,
		p.Email, p.StudentID,
		p.Profile.LastName, p.Profile.FirstName, p.Profile.MiddleName, p.Profile.Suffix,
		p.Profile.Course, p.Profile.Section, p.Profile.YearLevel,
		p.SecretHash, p.CodeHash,
		p.ExpiresAt.UTC(), p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	return err
}

func (r *pendingRepo) DeletePending(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pending_registrations WHERE email = $1`, email)
	return err
}

func (r *pendingRepo) DeletePendingExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM pending_registrations WHERE expires_at < $1`, t.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *pendingRepo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pending_registrations`).Scan(&n)
	return n, err
}
