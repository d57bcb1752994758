package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lamnguyen/folio/internal/domain/profile"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

// The profile table holds at most one row. id is fixed to 1 so Upsert can
// target it without a lookup.
func (r *postgresProfileRepo) Fetch(ctx context.Context) (*profile.Profile, error) {
	query := `
		SELECT name, title, tagline, email, phone, location, bio,
		       profile_image, logo_image, social_links
		FROM profile
		WHERE id = 1
	`
	p := &profile.Profile{}
	var socialLinksBytes []byte

	err := r.db.QueryRow(ctx, query).Scan(
		&p.Name,
		&p.Title,
		&p.Tagline,
		&p.Email,
		&p.Phone,
		&p.Location,
		&p.Bio,
		&p.ProfileImage,
		&p.LogoImage,
		&socialLinksBytes,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", "1")
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if err := json.Unmarshal(socialLinksBytes, &p.SocialLinks); err != nil {
		r.logger.Warn("Failed to unmarshal social_links", zap.Error(err))
		p.SocialLinks = []profile.SocialLink{}
	}

	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	socialLinksBytes, err := json.Marshal(p.SocialLinks)
	if err != nil {
		return apperror.NewInternal("failed to marshal social_links", err)
	}

	query := `
		INSERT INTO profile (id, name, title, tagline, email, phone, location, bio,
		                     profile_image, logo_image, social_links, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			title = EXCLUDED.title,
			tagline = EXCLUDED.tagline,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			profile_image = EXCLUDED.profile_image,
			logo_image = EXCLUDED.logo_image,
			social_links = EXCLUDED.social_links,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		p.Name, p.Title, p.Tagline, p.Email, p.Phone, p.Location, p.Bio,
		p.ProfileImage, p.LogoImage, socialLinksBytes,
	)

	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}
