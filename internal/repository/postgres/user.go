package postgres

import (
	"context"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, password_hash, role, full_name, email, phone_number, address, id_proof_number, branch_id, created_at, updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.FullName, &u.Email, &u.PhoneNumber, &u.Address, &u.IDProofNumber, &u.BranchID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, password_hash, role, full_name, email, phone_number, address, id_proof_number, branch_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.Role, u.FullName, u.Email, u.PhoneNumber, u.Address, u.IDProofNumber, u.BranchID, now, now).Scan(&u.ID)
	return mapError(err, domain.ErrUserNotFound)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username))
	if err != nil {
		return nil, mapError(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET password_hash=$1, full_name=$2, email=$3, phone_number=$4, address=$5, id_proof_number=$6, branch_id=$7, updated_at=$8 WHERE id=$9`
	u.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, query, u.PasswordHash, u.FullName, u.Email, u.PhoneNumber, u.Address, u.IDProofNumber, u.BranchID, u.UpdatedAt, u.ID)
	if err != nil {
		return mapError(err, domain.ErrUserNotFound)
	}
	return expectOneRow(res, domain.ErrUserNotFound)
}

func (r *userRepository) Delete(ctx context.Context, id int32) error {
	logger.EnterMethod("userRepository.Delete", "userID", id)
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1 AND role <> $2`, id, domain.UserRoleAdmin)
	if err != nil {
		logger.ExitMethodWithError("userRepository.Delete", err, "userID", id)
		return err
	}
	if err := expectOneRow(res, domain.ErrUserNotFound); err != nil {
		return err
	}
	logger.ExitMethod("userRepository.Delete", "userID", id)
	return nil
}

func (r *userRepository) List(ctx context.Context, role domain.UserRole, branchID *int32) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE ($1 = '' OR role = $1) AND ($2::INTEGER IS NULL OR branch_id = $2)
	          ORDER BY full_name, id`
	rows, err := r.db.QueryContext(ctx, query, string(role), branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
