package domain

import (
	"time"

	"github.com/diagnosis/menupage/internal/utils"
)

// Account is the persisted user record. Password holds the hash, never the plaintext.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountInfo is the public view of an Account.
type AccountInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the authenticated caller, resolved from the store on every request.
type Identity struct {
	AccountID string
	Email     string
	Name      string
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *AccountInfo `json:"user"`
	Token string       `json:"token"`
}

// Normalize trims surrounding whitespace. Email case is kept as given and its shape is not
// checked: any non-empty address, including "owner@localhost", can register.
func (r *RegisterRequest) Normalize() {
	r.Email = utils.NormalizeString(r.Email)
	r.Name = utils.NormalizeString(r.Name)
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" || r.Password == "" || r.Name == "" {
		return BadRequest("Email, password, and name are required")
	}
	return nil
}

func (r *LoginRequest) Normalize() {
	r.Email = utils.NormalizeString(r.Email)
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return BadRequest("Email and password are required")
	}
	return nil
}

// ToInfo converts Account to AccountInfo (without sensitive data)
func (a *Account) ToInfo() *AccountInfo {
	return &AccountInfo{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

func (a *Account) ToIdentity() *Identity {
	return &Identity{AccountID: a.ID, Email: a.Email, Name: a.Name}
}
