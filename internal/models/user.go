package models

// User is one element of the users array in the shared users bin.
// The password is stored exactly as submitted (no hashing) for compatibility
// with the existing stored data; it must never be serialized to clients, so
// every outward-facing response goes through PublicProfile instead.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// UsersDocument is the full shape of the shared users bin.
type UsersDocument struct {
	Users []User `json:"users"`
}

// PublicProfile is the subset of a user record safe to return to anyone.
type PublicProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// Public returns the user's public profile view.
func (u *User) Public() *PublicProfile {
	name := u.Name
	if name == "" {
		name = u.Username
	}
	return &PublicProfile{
		ID:          u.ID,
		Username:    u.Username,
		Name:        name,
		Description: u.Description,
		CreatedAt:   u.CreatedAt,
	}
}
