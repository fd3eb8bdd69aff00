package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lamng/dev-network/internal/domain/profile"
	"github.com/lamng/dev-network/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: log}
}

var profileColumns = []string{
	"p.user_id", "u.name", "u.avatar",
	"p.company", "p.website", "p.location", "p.bio", "p.status", "p.github_username",
	"p.skills", "p.social", "p.experience", "p.education",
	"p.created_at", "p.updated_at",
}

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.UserID,
		&p.UserName,
		&p.UserAvatar,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Bio,
		&p.Status,
		&p.GithubUsername,
		&skillsBytes,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile row: %w", err)
	}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		r.logger.Warn("failed to unmarshal profile skills", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("failed to unmarshal profile social links", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Social = profile.SocialLinks{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("failed to unmarshal profile experience", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("failed to unmarshal profile education", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}

	return p, nil
}

func (r *postgresProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query, args, err := psql.
		Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"p.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile query: %w", err)
	}

	return r.scanProfile(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresProfileRepo) FindAll(ctx context.Context) ([]*profile.Profile, error) {
	query, args, err := psql.
		Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		OrderBy("p.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) marshalEmbedded(p *profile.Profile) (skills, social, experience, education []byte, err error) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []profile.Experience{}
	}
	if p.Education == nil {
		p.Education = []profile.Education{}
	}

	if skills, err = json.Marshal(p.Skills); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	if social, err = json.Marshal(p.Social); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal social links: %w", err)
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal experience: %w", err)
	}
	if education, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal education: %w", err)
	}
	return skills, social, experience, education, nil
}

// Upsert is a single atomic statement keyed on the unique user_id, so two
// concurrent calls for the same user can never leave two rows behind.
func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	skillsBytes, socialBytes, experienceBytes, educationBytes, err := r.marshalEmbedded(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (user_id, company, website, location, bio, status, github_username,
			skills, social, experience, education, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			status = EXCLUDED.status,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		p.UserID, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		skillsBytes, socialBytes, experienceBytes, educationBytes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *postgresProfileRepo) Replace(ctx context.Context, p *profile.Profile) error {
	skillsBytes, socialBytes, experienceBytes, educationBytes, err := r.marshalEmbedded(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles SET
			company = $2, website = $3, location = $4, bio = $5, status = $6, github_username = $7,
			skills = $8, social = $9, experience = $10, education = $11, updated_at = $12
		WHERE user_id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.UserID, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		skillsBytes, socialBytes, experienceBytes, educationBytes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (r *postgresProfileRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}
