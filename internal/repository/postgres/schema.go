package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pawnledger-backend/internal/logger"
)

// Statements are idempotent and run in order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS branches (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT branches_name_key UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'staff')),
		full_name TEXT NOT NULL DEFAULT '',
		email TEXT,
		phone_number TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		id_proof_number TEXT NOT NULL DEFAULT '',
		branch_id INTEGER REFERENCES branches(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS schemes (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		interest_rate NUMERIC(6,3) NOT NULL CHECK (interest_rate > 0),
		tenure_months INTEGER NOT NULL CHECK (tenure_months >= 1),
		max_loan_percentage NUMERIC(5,2) NOT NULL CHECK (max_loan_percentage > 0 AND max_loan_percentage <= 100),
		pre_interest_months INTEGER NOT NULL DEFAULT 0 CHECK (pre_interest_months >= 0),
		description TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT schemes_name_key UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS gold_rates (
		id SERIAL PRIMARY KEY,
		rate_date TIMESTAMPTZ NOT NULL,
		rate_day DATE NOT NULL,
		rate_22k NUMERIC(12,2) NOT NULL CHECK (rate_22k > 0),
		rate_24k NUMERIC(12,2) NOT NULL CHECK (rate_24k >= rate_22k),
		set_by TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS gold_rates_system_day_key ON gold_rates (rate_day) WHERE set_by = 'system'`,
	`CREATE INDEX IF NOT EXISTS gold_rates_rate_date_idx ON gold_rates (rate_date DESC)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id SERIAL PRIMARY KEY,
		customer_code TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL,
		email TEXT,
		aadhar_number TEXT,
		pan_number TEXT,
		photo_ref TEXT NOT NULL DEFAULT '',
		aadhar_ref TEXT NOT NULL DEFAULT '',
		pan_ref TEXT NOT NULL DEFAULT '',
		branch_id INTEGER REFERENCES branches(id),
		created_by INTEGER NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT customers_customer_code_key UNIQUE (customer_code),
		CONSTRAINT customers_phone_key UNIQUE (phone),
		CONSTRAINT customers_email_key UNIQUE (email),
		CONSTRAINT customers_aadhar_number_key UNIQUE (aadhar_number),
		CONSTRAINT customers_pan_number_key UNIQUE (pan_number)
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id SERIAL PRIMARY KEY,
		loan_number TEXT NOT NULL,
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		scheme_id INTEGER NOT NULL REFERENCES schemes(id),
		branch_id INTEGER NOT NULL REFERENCES branches(id),
		total_weight NUMERIC(12,3) NOT NULL,
		gold_rate_id INTEGER NOT NULL REFERENCES gold_rates(id),
		gold_rate_at_pledge NUMERIC(12,2) NOT NULL,
		valuation NUMERIC(14,2) NOT NULL,
		loan_amount NUMERIC(14,2) NOT NULL CHECK (loan_amount > 0),
		interest_rate NUMERIC(6,3) NOT NULL,
		pre_interest_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		loan_date TIMESTAMPTZ NOT NULL,
		due_date TIMESTAMPTZ NOT NULL,
		current_balance NUMERIC(14,2) NOT NULL CHECK (current_balance >= 0),
		status TEXT NOT NULL CHECK (status IN ('active', 'overdue', 'closed', 'auctioned')),
		auction_date TIMESTAMPTZ,
		auction_amount NUMERIC(14,2),
		bidder_name TEXT,
		bidder_contact TEXT,
		auction_remarks TEXT,
		overdue_notice_sent_at TIMESTAMPTZ,
		created_by INTEGER NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT loans_loan_number_key UNIQUE (loan_number)
	)`,
	`CREATE INDEX IF NOT EXISTS loans_branch_status_idx ON loans (branch_id, status)`,
	`CREATE INDEX IF NOT EXISTS loans_status_due_date_idx ON loans (status, due_date)`,
	`CREATE TABLE IF NOT EXISTS loan_items (
		id SERIAL PRIMARY KEY,
		loan_id INTEGER NOT NULL REFERENCES loans(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		net_weight NUMERIC(12,3) NOT NULL CHECK (net_weight > 0),
		purity TEXT NOT NULL CHECK (purity IN ('22k', '24k')),
		photos TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id SERIAL PRIMARY KEY,
		loan_id INTEGER NOT NULL REFERENCES loans(id),
		amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
		type TEXT NOT NULL CHECK (type IN ('interest', 'principal', 'full_settlement')),
		payment_mode TEXT NOT NULL DEFAULT 'cash',
		remarks TEXT NOT NULL DEFAULT '',
		payment_date TIMESTAMPTZ NOT NULL,
		received_by INTEGER NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS payments_loan_id_idx ON payments (loan_id)`,
	`CREATE TABLE IF NOT EXISTS vouchers (
		id SERIAL PRIMARY KEY,
		type TEXT NOT NULL CHECK (type IN ('expense', 'income')),
		category TEXT NOT NULL,
		amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
		description TEXT NOT NULL DEFAULT '',
		voucher_date TIMESTAMPTZ NOT NULL,
		created_by INTEGER NOT NULL REFERENCES users(id),
		branch_id INTEGER REFERENCES branches(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS vouchers_voucher_date_idx ON vouchers (voucher_date)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	logger.Info("Database schema up to date", "statements", len(migrations))
	return nil
}
