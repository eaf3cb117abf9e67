package services

import (
	"database/sql"

	"rewear/internal/domain"
	"rewear/internal/repos"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// EconomyService owns the points-redemption workflow. Debit, credit, the item
// status flip and the transaction record commit or roll back as one unit, so
// points are never created or destroyed by a partial failure.
type EconomyService struct {
	DB  *sqlx.DB
	Txs *repos.TransactionRepo
}

func NewEconomyService(db *sqlx.DB, txs *repos.TransactionRepo) *EconomyService {
	return &EconomyService{DB: db, Txs: txs}
}

type itemRow struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Status string `db:"status"`
	Points int    `db:"points"`
}

// Redeem exchanges the buyer's points for the listing. Concurrent redeems on
// the same item are serialized by the conditional status update: the loser's
// transaction rolls back untouched and reports the item unavailable.
func (s *EconomyService) Redeem(buyerID, itemID string) (domain.Transaction, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.Transaction{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var it itemRow
	if err := tx.Get(&it, `SELECT id, user_id, status, points FROM items WHERE id=?`, itemID); err != nil {
		if err == sql.ErrNoRows {
			return domain.Transaction{}, ErrNotFound
		}
		return domain.Transaction{}, err
	}
	if it.UserID == buyerID {
		return domain.Transaction{}, ErrSelfSwap
	}
	if it.Status != domain.ItemActive {
		return domain.Transaction{}, ErrItemUnavailable
	}

	// Conditional debit: the balance guard lives in the UPDATE itself, so a
	// concurrent spend can not drive the balance negative.
	res, err := tx.Exec(`
	  UPDATE profiles SET points=points-?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND points>=?
	`, it.Points, buyerID, it.Points)
	if err != nil {
		return domain.Transaction{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Transaction{}, ErrInsufficientPoints
	}

	// Optimistic check-then-set on the item, re-validated at commit time.
	res, err = tx.Exec(`
	  UPDATE items SET status='swapped', updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND status='active'
	`, itemID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Transaction{}, ErrItemUnavailable
	}

	if _, err = tx.Exec(`
	  UPDATE profiles SET points=points+?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, it.Points, it.UserID); err != nil {
		return domain.Transaction{}, err
	}

	if _, err = tx.Exec(`
	  UPDATE profiles SET total_swaps=total_swaps+1, updated_at=CURRENT_TIMESTAMP
	  WHERE id IN (?,?)
	`, buyerID, it.UserID); err != nil {
		return domain.Transaction{}, err
	}

	// Open requests on a sold item are dead, same as on an accepted swap.
	if _, err = tx.Exec(`
	  UPDATE swap_requests SET status='rejected', updated_at=CURRENT_TIMESTAMP
	  WHERE item_id=? AND status='pending'
	`, itemID); err != nil {
		return domain.Transaction{}, err
	}

	txID := uuid.NewString()
	if _, err = tx.Exec(`
	  INSERT INTO transactions(id,item_id,buyer_id,seller_id,points,type,status)
	  VALUES(?,?,?,?,?,'purchase','completed')
	`, txID, itemID, buyerID, it.UserID, it.Points); err != nil {
		return domain.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Transaction{}, err
	}
	return s.Txs.Get(txID)
}

func (s *EconomyService) MyTransactions(userID string) ([]domain.Transaction, error) {
	out, err := s.Txs.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Transaction{}
	}
	return out, nil
}
