package models

import "time"

// OperatorModel mirrors the operators table.
type OperatorModel struct {
	OperatorID    string    `db:"operator_id"`
	Username      string    `db:"username"`
	PasswordHash  string    `db:"password_hash"`
	FullName      string    `db:"full_name"`
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
