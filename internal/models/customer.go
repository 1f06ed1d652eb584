package models

// Customer is the customers table row.
type Customer struct {
	CustomerID     string `db:"customer_id"`
	Name           string `db:"name"`
	Gender         string `db:"gender"`
	Age            int    `db:"age"`
	Identification string `db:"identification"`
	Address        string `db:"address"`
	Phone          string `db:"phone"`
	PasswordHash   string `db:"password_hash"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
