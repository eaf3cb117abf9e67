package domain

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Profile struct {
	ID         string  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Email      string  `db:"email" json:"email"`
	Hash       string  `db:"password_hash" json:"-"`
	Points     int     `db:"points" json:"points"`
	AvatarURL  string  `db:"avatar_url" json:"avatar_url,omitempty"`
	Role       string  `db:"role" json:"role"`
	Location   string  `db:"location" json:"location,omitempty"`
	Bio        string  `db:"bio" json:"bio,omitempty"`
	TotalSwaps int     `db:"total_swaps" json:"total_swaps"`
	Rating     float64 `db:"rating" json:"rating"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
	UpdatedAt  string  `db:"updated_at" json:"updated_at,omitempty"`
}
