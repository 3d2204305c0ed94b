package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAreaRepository struct {
	db *pgxpool.Pool
}

func newPgxAreaRepository(db *pgxpool.Pool) portsrepo.AreaRepositoryFacade {
	return &PgxAreaRepository{db: db}
}

// Ensure PgxAreaRepository implements portsrepo.AreaRepositoryFacade
var _ portsrepo.AreaRepositoryFacade = (*PgxAreaRepository)(nil)

func (r *PgxAreaRepository) SaveArea(ctx context.Context, area domain.Area) error {
	query := `
		INSERT INTO areas (area_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		area.AreaID,
		area.Name,
		area.Description,
		area.IsActive,
		area.CreatedAt,
		area.CreatedBy,
		area.LastUpdatedAt,
		area.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save area")
	}
	return nil
}

func scanArea(row rowScanner) (domain.Area, error) {
	var a domain.Area
	err := row.Scan(
		&a.AreaID,
		&a.Name,
		&a.Description,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

func (r *PgxAreaRepository) FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	query := `
		SELECT area_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM areas
		WHERE area_id = $1;
	`
	area, err := scanArea(r.db.QueryRow(ctx, query, areaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find area by ID %s: %w", areaID, err)
	}
	return &area, nil
}

func (r *PgxAreaRepository) ListAreas(ctx context.Context, scope domain.AreaScope) ([]domain.Area, error) {
	w := &whereBuilder{}
	w.scope("area_id", scope)
	query := `
		SELECT area_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM areas
		` + w.sql() + `
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}
	defer rows.Close()

	areas := []domain.Area{}
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan area row: %w", err)
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating area rows: %w", err)
	}
	return areas, nil
}

func (r *PgxAreaRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	query := `
		INSERT INTO departments (department_id, area_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		department.DepartmentID,
		department.AreaID,
		department.Code,
		department.Name,
		department.IsActive,
		department.CreatedAt,
		department.CreatedBy,
		department.LastUpdatedAt,
		department.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save department")
	}
	return nil
}

func scanDepartment(row rowScanner) (domain.Department, error) {
	var d domain.Department
	err := row.Scan(
		&d.DepartmentID,
		&d.AreaID,
		&d.Code,
		&d.Name,
		&d.IsActive,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

func (r *PgxAreaRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := `
		SELECT department_id, area_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM departments
		WHERE department_id = $1;
	`
	dept, err := scanDepartment(r.db.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by ID %s: %w", departmentID, err)
	}
	return &dept, nil
}

func (r *PgxAreaRepository) ListDepartmentsByArea(ctx context.Context, areaID string) ([]domain.Department, error) {
	query := `
		SELECT department_id, area_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM departments
		WHERE area_id = $1
		ORDER BY code;
	`
	rows, err := r.db.Query(ctx, query, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments for area %s: %w", areaID, err)
	}
	defer rows.Close()

	departments := []domain.Department{}
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, dept)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}
	return departments, nil
}

// SetUserAreaRole upserts the membership, keeping the original join time.
func (r *PgxAreaRepository) SetUserAreaRole(ctx context.Context, membership domain.UserArea) error {
	query := `
		INSERT INTO user_areas (user_id, area_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, area_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.db.Exec(ctx, query, membership.UserID, membership.AreaID, membership.Role, membership.JoinedAt)
	if err != nil {
		return mapWriteError(err, "failed to set user area role")
	}
	return nil
}

func (r *PgxAreaRepository) FindUserAreaRole(ctx context.Context, userID, areaID string) (*domain.UserArea, error) {
	query := `
		SELECT user_id, area_id, role, joined_at
		FROM user_areas
		WHERE user_id = $1 AND area_id = $2;
	`
	var ua domain.UserArea
	err := r.db.QueryRow(ctx, query, userID, areaID).Scan(&ua.UserID, &ua.AreaID, &ua.Role, &ua.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find role of user %s in area %s: %w", userID, areaID, err)
	}
	return &ua, nil
}

func (r *PgxAreaRepository) ListUserAreas(ctx context.Context, userID string) ([]domain.UserArea, error) {
	query := `
		SELECT user_id, area_id, role, joined_at
		FROM user_areas
		WHERE user_id = $1
		ORDER BY joined_at;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query areas of user %s: %w", userID, err)
	}
	defer rows.Close()

	memberships := []domain.UserArea{}
	for rows.Next() {
		var ua domain.UserArea
		if err := rows.Scan(&ua.UserID, &ua.AreaID, &ua.Role, &ua.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user area row: %w", err)
		}
		memberships = append(memberships, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user area rows: %w", err)
	}
	return memberships, nil
}

func (r *PgxAreaRepository) RemoveUserFromArea(ctx context.Context, userID, areaID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_areas WHERE user_id = $1 AND area_id = $2;`, userID, areaID)
	if err != nil {
		return fmt.Errorf("failed to remove user %s from area %s: %w", userID, areaID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
