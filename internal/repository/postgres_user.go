package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/screening-reservation/internal/domain"
)

type PostgesUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgesUserRepository {
	return &PostgesUserRepository{
		db: db,
	}
}

func (p *PostgesUserRepository) GetWithRoleById(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT u.id, u.name, u.email, r.id, r.name, r.max_reservations
		FROM users u
		JOIN roles r ON u.role_id = r.id
		WHERE u.id = $1
	`

	var user domain.User

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role.ID,
		&user.Role.Name,
		&user.Role.MaxReservations,
	)
	if err != nil {
		return nil, notFound(err)
	}

	return &user, nil
}
