package repos

import (
	"rewear/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TransactionRepo struct{ db *sqlx.DB }

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const txCols = `
  t.id, t.item_id, t.buyer_id, t.seller_id, t.points, t.type, t.status, t.created_at`

// ListByUser returns transactions where the user is buyer or seller, newest first.
func (r *TransactionRepo) ListByUser(userID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := r.db.Select(&out, `
	  SELECT `+txCols+`, i.title AS item_title
	  FROM transactions t
	  JOIN items i ON i.id = t.item_id
	  WHERE t.buyer_id = ? OR t.seller_id = ?
	  ORDER BY datetime(t.created_at) DESC, t.id
	`, userID, userID)
	return out, err
}

func (r *TransactionRepo) ListAll() ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := r.db.Select(&out, `
	  SELECT `+txCols+`, i.title AS item_title
	  FROM transactions t
	  JOIN items i ON i.id = t.item_id
	  ORDER BY datetime(t.created_at) DESC, t.id
	`)
	return out, err
}

func (r *TransactionRepo) Get(id string) (domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.Get(&t, `
	  SELECT `+txCols+`
	  FROM transactions t
	  WHERE t.id = ?
	`, id)
	return t, err
}
