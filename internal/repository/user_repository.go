package repository

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/fiich/fiich-api/internal/models"
)

type UserRepository interface {
	CreateUser(email, password string) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{Email: email, PasswordHash: string(hash)}

	const query = `
		INSERT INTO fiich.users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id;`
	if err := r.db.QueryRow(query, user.Email, user.PasswordHash).Scan(&user.ID); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) AuthenticateUser(email, password string) (models.User, error) {
	var user models.User

	const query = `
		SELECT id, email, password_hash
		FROM fiich.users
		WHERE email = $1;`
	err := r.db.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, errors.New("invalid credentials")
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, errors.New("invalid credentials")
	}
	return user, nil
}

func (r *userRepository) GetUserByID(id string) (models.User, error) {
	var user models.User

	const query = `
		SELECT id, email, password_hash
		FROM fiich.users
		WHERE id = $1;`
	err := r.db.QueryRow(query, id).Scan(&user.ID, &user.Email, &user.PasswordHash)
	return user, err
}
