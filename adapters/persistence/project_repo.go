package persistence

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lamnguyen/folio/internal/domain/project"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type postgresProjectRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProjectRepo(db *pgxpool.Pool, logger logger.Logger) project.Repository {
	return &postgresProjectRepo{db: db, logger: logger}
}

var psqlProject = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanProject(row pgx.Row, l logger.Logger) (project.Project, error) {
	var p project.Project
	var technologiesBytes []byte

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Image,
		&p.Link,
		&p.LiveURL,
		&p.GithubURL,
		&technologiesBytes,
		&p.CreatedAt,
	)
	if err != nil {
		return p, apperror.NewInternal("failed to scan project row", err)
	}

	if err := json.Unmarshal(technologiesBytes, &p.Technologies); err != nil {
		l.Warn("Failed to unmarshal project technologies", zap.String("project_id", p.ID.String()), zap.Error(err))
		p.Technologies = []string{}
	}

	return p, nil
}

func (r *postgresProjectRepo) FetchAll(ctx context.Context) ([]project.Project, error) {
	builder := psqlProject.Select("id, title, description, category, image, link, live_url, github_url, technologies, created_at").
		From("projects").
		OrderBy("created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build fetch projects query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	defer rows.Close()

	projects := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows, r.logger)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}

func (r *postgresProjectRepo) Create(ctx context.Context, p project.Project) error {
	technologiesBytes, err := json.Marshal(p.Technologies)
	if err != nil {
		return apperror.NewInternal("failed to marshal project technologies", err)
	}

	query := `
		INSERT INTO projects (id, title, description, category, image, link, live_url, github_url, technologies, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Category, p.Image,
		p.Link, p.LiveURL, p.GithubURL, technologiesBytes, p.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save project", err)
	}
	return nil
}

func (r *postgresProjectRepo) Update(ctx context.Context, id uuid.UUID, p project.Project) error {
	technologiesBytes, err := json.Marshal(p.Technologies)
	if err != nil {
		return apperror.NewInternal("failed to marshal project technologies for update", err)
	}

	// created_at is deliberately left alone: it reflects original creation
	// time even across later edits.
	query := `
		UPDATE projects SET
			title = $2, description = $3, category = $4, image = $5,
			link = $6, live_url = $7, github_url = $8, technologies = $9
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		id, p.Title, p.Description, p.Category, p.Image,
		p.Link, p.LiveURL, p.GithubURL, technologiesBytes,
	)
	if err != nil {
		return apperror.NewInternal("failed to update project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", id.String())
	}
	return nil
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	return nil
}
