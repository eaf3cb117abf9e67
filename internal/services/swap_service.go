package services

import (
	"database/sql"

	"rewear/internal/domain"
	"rewear/internal/repos"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SwapService implements the swap request lifecycle:
// pending -> accepted | rejected, settable only by the item owner.
type SwapService struct {
	DB    *sqlx.DB
	Swaps *repos.SwapRepo
	Items *repos.ItemRepo
}

func NewSwapService(db *sqlx.DB, swaps *repos.SwapRepo, items *repos.ItemRepo) *SwapService {
	return &SwapService{DB: db, Swaps: swaps, Items: items}
}

func (s *SwapService) Create(requesterID, itemID, message string) (domain.SwapRequest, error) {
	it, err := s.Items.Get(itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.SwapRequest{}, ErrNotFound
		}
		return domain.SwapRequest{}, err
	}
	if it.UserID == requesterID {
		return domain.SwapRequest{}, ErrSelfSwap
	}
	if it.Status != domain.ItemActive {
		return domain.SwapRequest{}, ErrItemUnavailable
	}
	dup, err := s.Swaps.HasPending(itemID, requesterID)
	if err != nil {
		return domain.SwapRequest{}, err
	}
	if dup {
		return domain.SwapRequest{}, ErrAlreadyRequested
	}

	req := &domain.SwapRequest{
		ID:          uuid.NewString(),
		ItemID:      itemID,
		RequesterID: requesterID,
		OwnerID:     it.UserID,
		Message:     message,
	}
	if err := s.Swaps.Create(req); err != nil {
		return domain.SwapRequest{}, err
	}
	return s.Swaps.Get(req.ID)
}

// Respond settles a pending request. Accepting hands the item over: the
// request, the item, both swap counters and the sibling requests move in one
// transaction so a crash can not leave the item swapped with its requests
// still open.
func (s *SwapService) Respond(callerID, requestID, decision string) (domain.SwapRequest, error) {
	if decision != domain.SwapAccepted && decision != domain.SwapRejected {
		return domain.SwapRequest{}, ErrInvalidState
	}

	req, err := s.Swaps.Get(requestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.SwapRequest{}, ErrNotFound
		}
		return domain.SwapRequest{}, err
	}
	if req.OwnerID != callerID {
		return domain.SwapRequest{}, ErrForbidden
	}
	if req.Status != domain.SwapPending {
		return domain.SwapRequest{}, ErrAlreadyResolved
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.SwapRequest{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Re-validated inside the transaction: a concurrent respond loses here.
	res, err := tx.Exec(`
	  UPDATE swap_requests SET status=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND status='pending'
	`, decision, requestID)
	if err != nil {
		return domain.SwapRequest{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.SwapRequest{}, ErrConflict
	}

	if decision == domain.SwapAccepted {
		res, err = tx.Exec(`
		  UPDATE items SET status='swapped', updated_at=CURRENT_TIMESTAMP
		  WHERE id=? AND status='active'
		`, req.ItemID)
		if err != nil {
			return domain.SwapRequest{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.SwapRequest{}, ErrItemUnavailable
		}

		// The item is gone; every other open request on it is dead.
		if _, err = tx.Exec(`
		  UPDATE swap_requests SET status='rejected', updated_at=CURRENT_TIMESTAMP
		  WHERE item_id=? AND status='pending' AND id<>?
		`, req.ItemID, requestID); err != nil {
			return domain.SwapRequest{}, err
		}

		if _, err = tx.Exec(`
		  UPDATE profiles SET total_swaps=total_swaps+1, updated_at=CURRENT_TIMESTAMP
		  WHERE id IN (?,?)
		`, req.OwnerID, req.RequesterID); err != nil {
			return domain.SwapRequest{}, err
		}

		// A zero-point swap still leaves an audit trail.
		if _, err = tx.Exec(`
		  INSERT INTO transactions(id,item_id,buyer_id,seller_id,points,type,status)
		  VALUES(?,?,?,?,0,'swap','completed')
		`, uuid.NewString(), req.ItemID, req.RequesterID, req.OwnerID); err != nil {
			return domain.SwapRequest{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.SwapRequest{}, err
	}
	return s.Swaps.Get(requestID)
}

func (s *SwapService) MySwaps(userID string) ([]domain.SwapRequest, error) {
	out, err := s.Swaps.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.SwapRequest{}
	}
	return out, nil
}
