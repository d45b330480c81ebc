package models

// User represents a user account in the system.
type User struct {
	ID           string `json:"-" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"` // Never expose this to the client
}
