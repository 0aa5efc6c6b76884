package repository

import (
	"context"
	"errors"
	"time"

	"skillboard/internal/database"
	"skillboard/internal/pkg/oid"

	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID           oid.ID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Code         string

	JobID          *oid.ID
	ManagerUserIDs []oid.ID
	Roles          []string

	Gender    *string
	BirthDate *time.Time
	HiredAt   *time.Time

	CompanyCode       string
	CompanyName       string
	EstablishmentCode string
	EstablishmentName string

	InvitedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserRepository interface {
	GetByID(ctx context.Context, id oid.ID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByID(ctx context.Context, id oid.ID) (bool, error)
	List(ctx context.Context) ([]User, error)
	ListManagers(ctx context.Context) ([]User, error)
	ListTeamMembers(ctx context.Context, managerID oid.ID) ([]User, error)
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id oid.ID) error
}

type PostgresUserRepository struct {
	db database.Querier
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, code, job_id,
	manager_user_ids, roles, gender, birth_date, hired_at,
	company_code, company_name, establishment_code, establishment_name,
	invited_at, created_at, updated_at`

func (r *PostgresUserRepository) GetByID(ctx context.Context, id oid.ID) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE code = $1)`, code)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) ExistsByID(ctx context.Context, id oid.ID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *PostgresUserRepository) ListManagers(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE 'MANAGER' = ANY(roles) ORDER BY last_name ASC, first_name ASC`)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *PostgresUserRepository) ListTeamMembers(ctx context.Context, managerID oid.ID) ([]User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE $1 = ANY(manager_user_ids) ORDER BY created_at DESC`,
		managerID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *PostgresUserRepository) Create(ctx context.Context, u User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Code, idPtr(u.JobID),
		oid.Strings(u.ManagerUserIDs), u.Roles, u.Gender, u.BirthDate, u.HiredAt,
		u.CompanyCode, u.CompanyName, u.EstablishmentCode, u.EstablishmentName,
		u.InvitedAt, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (r *PostgresUserRepository) Update(ctx context.Context, u User) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET
			email = $2, first_name = $3, last_name = $4, code = $5, job_id = $6,
			manager_user_ids = $7, roles = $8, gender = $9, birth_date = $10, hired_at = $11,
			company_code = $12, company_name = $13, establishment_code = $14, establishment_name = $15,
			password_hash = $16, invited_at = $17, updated_at = $18
		 WHERE id = $1`,
		u.ID, u.Email, u.FirstName, u.LastName, u.Code, idPtr(u.JobID),
		oid.Strings(u.ManagerUserIDs), u.Roles, u.Gender, u.BirthDate, u.HiredAt,
		u.CompanyCode, u.CompanyName, u.EstablishmentCode, u.EstablishmentName,
		u.PasswordHash, u.InvitedAt, u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user and detaches them from every remaining
// manager_user_ids array. Evaluation and skill-level rows cascade via FK.
func (r *PostgresUserRepository) Delete(ctx context.Context, id oid.ID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET manager_user_ids = array_remove(manager_user_ids, $1::char(24)) WHERE $1 = ANY(manager_user_ids)`,
		id)
	if err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row database.Row) (User, error) {
	var u User
	var jobID *string
	var managerIDs []string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Code, &jobID,
		&managerIDs, &u.Roles, &u.Gender, &u.BirthDate, &u.HiredAt,
		&u.CompanyCode, &u.CompanyName, &u.EstablishmentCode, &u.EstablishmentName,
		&u.InvitedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	if jobID != nil {
		id := oid.ID(*jobID)
		u.JobID = &id
	}
	u.ManagerUserIDs = make([]oid.ID, 0, len(managerIDs))
	for _, m := range managerIDs {
		u.ManagerUserIDs = append(u.ManagerUserIDs, oid.ID(m))
	}
	return u, nil
}

func collectUsers(rows database.Rows) ([]User, error) {
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rowsAsRow{rows})
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowsAsRow lets the single-row scan helpers run against a row set.
type rowsAsRow struct {
	rows database.Rows
}

func (r rowsAsRow) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func idPtr(id *oid.ID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}
