package persistence

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lamnguyen/folio/internal/domain/experience"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type postgresExperienceRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresExperienceRepo(db *pgxpool.Pool, logger logger.Logger) experience.Repository {
	return &postgresExperienceRepo{db: db, logger: logger}
}

var psqlExperience = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanExperience(row pgx.Row, l logger.Logger) (experience.Experience, error) {
	var e experience.Experience
	var descriptionBytes []byte

	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Organization,
		&e.Location,
		&e.Period,
		&descriptionBytes,
		&e.Type,
	)
	if err != nil {
		return e, apperror.NewInternal("failed to scan experience row", err)
	}

	if err := json.Unmarshal(descriptionBytes, &e.Description); err != nil {
		l.Warn("Failed to unmarshal experience description", zap.String("experience_id", e.ID.String()), zap.Error(err))
		e.Description = []string{}
	}

	return e, nil
}

func (r *postgresExperienceRepo) FetchAll(ctx context.Context) ([]experience.Experience, error) {
	builder := psqlExperience.Select("id, title, organization, location, period, description, type").
		From("experiences").
		OrderBy("created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build fetch experiences query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query experiences", err)
	}
	defer rows.Close()

	experiences := make([]experience.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows, r.logger)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating experience rows", err)
	}
	return experiences, nil
}

func (r *postgresExperienceRepo) Create(ctx context.Context, e experience.Experience) error {
	descriptionBytes, err := json.Marshal(e.Description)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience description", err)
	}

	query := `
		INSERT INTO experiences (id, title, organization, location, period, description, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err = r.db.Exec(ctx, query,
		e.ID, e.Title, e.Organization, e.Location, e.Period, descriptionBytes, e.Type,
	)
	if err != nil {
		return apperror.NewInternal("failed to save experience", err)
	}
	return nil
}

func (r *postgresExperienceRepo) Update(ctx context.Context, id uuid.UUID, e experience.Experience) error {
	descriptionBytes, err := json.Marshal(e.Description)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience description for update", err)
	}

	query := `
		UPDATE experiences SET
			title = $2, organization = $3, location = $4, period = $5,
			description = $6, type = $7
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		id, e.Title, e.Organization, e.Location, e.Period, descriptionBytes, e.Type,
	)
	if err != nil {
		return apperror.NewInternal("failed to update experience", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("experience", id.String())
	}
	return nil
}

func (r *postgresExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM experiences WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return apperror.NewInternal("failed to delete experience", err)
	}
	return nil
}
