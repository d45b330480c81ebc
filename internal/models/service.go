package models

// Service is a named pair of public and private addresses owned by one user.
// The addresses are free text and are not validated as IPs.
type Service struct {
	ID        string `json:"id" db:"id"`
	Owner     string `json:"service_owner" db:"owner"`
	Name      string `json:"name" db:"name"`
	PublicIP  string `json:"public_ip" db:"public_ip"`
	PrivateIP string `json:"private_ip" db:"private_ip"`
}
