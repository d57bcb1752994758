package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamnguyen/folio/internal/domain/skill"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

var psqlSkill = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresSkillRepo) FetchAll(ctx context.Context) ([]skill.Skill, error) {
	builder := psqlSkill.Select("name, level, category, icon").
		From("skills").
		OrderBy("name")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build fetch skills query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skills", err)
	}
	defer rows.Close()

	skills := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.Name, &s.Level, &s.Category, &s.Icon); err != nil {
			return nil, apperror.NewInternal("failed to scan skill row", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill rows", err)
	}
	return skills, nil
}

func (r *postgresSkillRepo) Create(ctx context.Context, s skill.Skill) error {
	query := `
		INSERT INTO skills (name, level, category, icon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			level = EXCLUDED.level,
			category = EXCLUDED.category,
			icon = EXCLUDED.icon
	`
	_, err := r.db.Exec(ctx, query, s.Name, s.Level, s.Category, s.Icon)
	if err != nil {
		return apperror.NewInternal("failed to save skill", err)
	}
	return nil
}

func (r *postgresSkillRepo) Update(ctx context.Context, name string, s skill.Skill) error {
	query := `
		UPDATE skills SET name = $2, level = $3, category = $4, icon = $5
		WHERE name = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, name, s.Name, s.Level, s.Category, s.Icon)
	if err != nil {
		return apperror.NewInternal("failed to update skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", name)
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM skills WHERE name = $1`
	if _, err := r.db.Exec(ctx, query, name); err != nil {
		return apperror.NewInternal("failed to delete skill", err)
	}
	return nil
}
