package repos

import (
	"rewear/internal/domain"

	"github.com/jmoiron/sqlx"
)

const profileCols = `id,name,email,password_hash,points,avatar_url,role,location,bio,total_swaps,rating,created_at,COALESCE(updated_at,'') AS updated_at`

type ProfileRepo struct{ DB *sqlx.DB }

func NewProfileRepo(db *sqlx.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

func (r *ProfileRepo) ByEmail(email string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.DB.Get(&p, `SELECT `+profileCols+` FROM profiles WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) ByID(id string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.DB.Get(&p, `SELECT `+profileCols+` FROM profiles WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) Create(p *domain.Profile) error {
	_, err := r.DB.Exec(`
	  INSERT INTO profiles(id,name,email,password_hash,points,role,location,bio,total_swaps,rating)
	  VALUES(?,?,?,?,?,?,?,?,0,5.0)
	`, p.ID, p.Name, p.Email, p.Hash, p.Points, p.Role, p.Location, p.Bio)
	return err
}

// UpdateDetails updates the fields a user may edit about themselves.
func (r *ProfileRepo) UpdateDetails(id, name, location, bio, avatarURL string) error {
	_, err := r.DB.Exec(`
	  UPDATE profiles
	  SET name=?, location=?, bio=?, avatar_url=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, name, location, bio, avatarURL, id)
	return err
}

func (r *ProfileRepo) List() ([]domain.Profile, error) {
	var out []domain.Profile
	err := r.DB.Select(&out, `SELECT `+profileCols+` FROM profiles ORDER BY datetime(created_at) DESC`)
	return out, err
}
