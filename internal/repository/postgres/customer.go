package postgres

import (
	"context"
	"time"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/repository"
)

type customerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, customer_code, name, phone, address, email, aadhar_number, pan_number, photo_ref, aadhar_ref, pan_ref, branch_id, created_by, created_at, updated_at`

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.CustomerCode, &c.Name, &c.Phone, &c.Address, &c.Email, &c.AadharNumber, &c.PANNumber,
		&c.PhotoRef, &c.AadharRef, &c.PANRef, &c.BranchID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (customer_code, name, phone, address, email, aadhar_number, pan_number, photo_ref, aadhar_ref, pan_ref, branch_id, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, c.CustomerCode, c.Name, c.Phone, c.Address, c.Email, c.AadharNumber, c.PANNumber,
		c.PhotoRef, c.AadharRef, c.PANRef, c.BranchID, c.CreatedBy, now, now).Scan(&c.ID)
	return mapError(err, domain.ErrCustomerNotFound)
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, phone=$2, address=$3, email=$4, aadhar_number=$5, pan_number=$6, photo_ref=$7, aadhar_ref=$8, pan_ref=$9, updated_at=$10 WHERE id=$11`
	c.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Address, c.Email, c.AadharNumber, c.PANNumber, c.PhotoRef, c.AadharRef, c.PANRef, c.UpdatedAt, c.ID)
	if err != nil {
		return mapError(err, domain.ErrCustomerNotFound)
	}
	return expectOneRow(res, domain.ErrCustomerNotFound)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, domain.ErrCustomerNotFound)
	}
	return c, nil
}

// Search matches name, phone or customer code. An empty keyword lists the newest customers.
func (r *customerRepository) Search(ctx context.Context, keyword string, branchID *int32, limit int32) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
	          WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%' OR customer_code ILIKE '%' || $1 || '%')
	            AND ($2::INTEGER IS NULL OR branch_id = $2)
	          ORDER BY created_at DESC LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, keyword, branchID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}
