package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *domain.User) error {
	user.ID = uuid.New().String()
	query := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRow(query, user.ID, user.Name, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
}

func (r *UserRepository) GetByID(id string) (*domain.User, error) {
	return r.getBy("id", id)
}

func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	return r.getBy("email", email)
}

func (r *UserRepository) getBy(column, value string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT id, name, email, password_hash, created_at FROM users WHERE %s = $1`, column)

	var u domain.User
	err := r.db.QueryRow(query, value).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &u, nil
}
