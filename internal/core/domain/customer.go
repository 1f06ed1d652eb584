package domain

// Person holds the identity fields shared by every customer record.
type Person struct {
	Name           string `json:"name"`
	Gender         string `json:"gender"`
	Age            int    `json:"age"`
	Identification string `json:"identification"` // National id document
	Address        string `json:"address"`
	Phone          string `json:"phone"`
}

// Customer represents a bank customer. A customer may own many accounts.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary key (UUID)
	Person
	PasswordHash string `json:"-"` // bcrypt hash, never serialized
	IsActive     bool   `json:"isActive"`
	AuditFields
}
