package repositories

import (
	"database/sql"
	"fmt"

	"leadflow/internal/apperr"
	"leadflow/internal/models"
)

type LeadRepository interface {
	Create(lead *models.Lead) error
	GetByID(id int) (*models.Lead, error)
	FindByEmailOrPhone(email, phone string) (*models.Lead, error)
	Update(lead *models.Lead) error
	Deactivate(id int) error
	List(assignedTo, limit, offset int) ([]*models.Lead, error)
	Count(assignedTo int) (int, error)
	CountByStatus() (map[string]int, error)
}

type leadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `id, first_name, last_name, email, phone, status, assigned_to, created_by, is_active, created_at`

func (r *leadRepository) Create(lead *models.Lead) error {
	const q = `
		INSERT INTO leads (first_name, last_name, email, phone, status, assigned_to, created_by, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`
	err := r.db.QueryRow(q,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Status,
		lead.AssignedTo,
		lead.CreatedBy,
		lead.IsActive,
		lead.CreatedAt,
	).Scan(&lead.ID)
	if isUniqueViolation(err) {
		return apperr.Conflict("Lead with the same email or phone number already exists")
	}
	return err
}

func (r *leadRepository) GetByID(id int) (*models.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanOne(r.db.QueryRow(q, id))
}

// FindByEmailOrPhone is the create-time duplicate lookup. It matches any
// lead, active or not, sharing the email or the phone.
func (r *leadRepository) FindByEmailOrPhone(email, phone string) (*models.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM leads WHERE email = $1 OR phone = $2 LIMIT 1`
	return r.scanOne(r.db.QueryRow(q, email, phone))
}

func (r *leadRepository) scanOne(row *sql.Row) (*models.Lead, error) {
	l := &models.Lead{}
	var lastName sql.NullString
	err := row.Scan(
		&l.ID, &l.FirstName, &lastName, &l.Email, &l.Phone,
		&l.Status, &l.AssignedTo, &l.CreatedBy, &l.IsActive, &l.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastName.Valid {
		l.LastName = lastName.String
	}
	return l, nil
}

func (r *leadRepository) Update(lead *models.Lead) error {
	const q = `
		UPDATE leads
		SET first_name=$1, last_name=$2, email=$3, phone=$4, status=$5, assigned_to=$6, is_active=$7
		WHERE id=$8
	`
	_, err := r.db.Exec(q,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Status,
		lead.AssignedTo,
		lead.IsActive,
		lead.ID,
	)
	if isUniqueViolation(err) {
		return apperr.Conflict("Lead with the same email or phone number already exists")
	}
	return err
}

func (r *leadRepository) Deactivate(id int) error {
	_, err := r.db.Exec(`UPDATE leads SET is_active=FALSE WHERE id=$1`, id)
	return err
}

// List returns a page of leads. assignedTo == 0 means system-wide (admin);
// otherwise only leads assigned to that user.
func (r *leadRepository) List(assignedTo, limit, offset int) ([]*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	args := []interface{}{}
	i := 1

	if assignedTo > 0 {
		query += fmt.Sprintf(" AND assigned_to = $%d", i)
		args = append(args, assignedTo)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lead
	for rows.Next() {
		l := &models.Lead{}
		var lastName sql.NullString
		if err := rows.Scan(
			&l.ID, &l.FirstName, &lastName, &l.Email, &l.Phone,
			&l.Status, &l.AssignedTo, &l.CreatedBy, &l.IsActive, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		if lastName.Valid {
			l.LastName = lastName.String
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *leadRepository) Count(assignedTo int) (int, error) {
	var c int
	var err error
	if assignedTo > 0 {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM leads WHERE assigned_to = $1`, assignedTo).Scan(&c)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&c)
	}
	return c, err
}

func (r *leadRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var c int
		if err := rows.Scan(&status, &c); err != nil {
			return nil, err
		}
		out[status] = c
	}
	return out, rows.Err()
}
