package repos

import (
	"rewear/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SwapRepo struct{ db *sqlx.DB }

func NewSwapRepo(db *sqlx.DB) *SwapRepo { return &SwapRepo{db: db} }

const swapCols = `
  s.id, s.item_id, s.requester_id, s.owner_id, s.message, s.status,
  s.created_at, COALESCE(s.updated_at,'') AS updated_at`

func (r *SwapRepo) Get(id string) (domain.SwapRequest, error) {
	var s domain.SwapRequest
	err := r.db.Get(&s, `
	  SELECT `+swapCols+`
	  FROM swap_requests s
	  WHERE s.id = ?
	`, id)
	return s, err
}

func (r *SwapRepo) Create(s *domain.SwapRequest) error {
	_, err := r.db.Exec(`
	  INSERT INTO swap_requests(id,item_id,requester_id,owner_id,message,status)
	  VALUES(?,?,?,?,?,'pending')
	`, s.ID, s.ItemID, s.RequesterID, s.OwnerID, s.Message)
	return err
}

// HasPending reports whether the requester already has an open request on the item.
func (r *SwapRepo) HasPending(itemID, requesterID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM swap_requests
	  WHERE item_id=? AND requester_id=? AND status='pending'
	`, itemID, requesterID)
	return n > 0, err
}

// ListByUser returns requests where the user is either side, newest first.
func (r *SwapRepo) ListByUser(userID string) ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	err := r.db.Select(&out, `
	  SELECT `+swapCols+`, i.title AS item_title, p.name AS requester_name
	  FROM swap_requests s
	  JOIN items i    ON i.id = s.item_id
	  JOIN profiles p ON p.id = s.requester_id
	  WHERE s.requester_id = ? OR s.owner_id = ?
	  ORDER BY datetime(s.created_at) DESC, s.id
	`, userID, userID)
	return out, err
}

func (r *SwapRepo) ListAll() ([]domain.SwapRequest, error) {
	var out []domain.SwapRequest
	err := r.db.Select(&out, `
	  SELECT `+swapCols+`, i.title AS item_title, p.name AS requester_name
	  FROM swap_requests s
	  JOIN items i    ON i.id = s.item_id
	  JOIN profiles p ON p.id = s.requester_id
	  ORDER BY datetime(s.created_at) DESC, s.id
	`)
	return out, err
}
