package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"leadflow/internal/apperr"
	"leadflow/internal/models"
)

// UserFilter narrows List results. OnlyID restricts the listing to a single
// user (non-admin callers see themselves only); Search matches first name,
// email and phone case-insensitively, or the role exactly.
type UserFilter struct {
	Search string
	OnlyID int
}

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Deactivate(id int) error
	List(f UserFilter, limit, offset int) ([]*models.User, error)
	Count() (int, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (first_name, last_name, email, phone, password_hash, role, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`
	err := r.db.QueryRow(q,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.CreatedAt,
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return apperr.Conflict("User already exists")
	}
	return err
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, phone, password_hash, role, is_active, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, phone, password_hash, role, is_active, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRow(q, email))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		lastName sql.NullString
		phone    sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.FirstName, &lastName, &u.Email, &phone,
		&u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastName.Valid {
		u.LastName = lastName.String
	}
	if phone.Valid {
		u.Phone = phone.String
	}
	return u, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET first_name=$1, last_name=$2, email=$3, phone=$4, password_hash=$5, role=$6, is_active=$7
		WHERE id=$8
	`
	_, err := r.db.Exec(q,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.ID,
	)
	if isUniqueViolation(err) {
		return apperr.Conflict("User already exists")
	}
	return err
}

func (r *userRepository) Deactivate(id int) error {
	_, err := r.db.Exec(`UPDATE users SET is_active=FALSE WHERE id=$1`, id)
	return err
}

func (r *userRepository) List(f UserFilter, limit, offset int) ([]*models.User, error) {
	// password_hash is deliberately not selected here
	query := `SELECT id, first_name, last_name, email, phone, role, is_active, created_at FROM users WHERE 1=1`
	args := []interface{}{}
	i := 1

	if f.OnlyID > 0 {
		query += fmt.Sprintf(" AND id = $%d", i)
		args = append(args, f.OnlyID)
		i++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d OR role = $%d)", i, i, i, i+1)
		args = append(args, "%"+f.Search+"%", strings.ToUpper(f.Search))
		i += 2
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		var (
			lastName sql.NullString
			phone    sql.NullString
		)
		if err := rows.Scan(
			&u.ID, &u.FirstName, &lastName, &u.Email, &phone,
			&u.Role, &u.IsActive, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		if lastName.Valid {
			u.LastName = lastName.String
		}
		if phone.Valid {
			u.Phone = phone.String
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) Count() (int, error) {
	var c int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c)
	return c, err
}
