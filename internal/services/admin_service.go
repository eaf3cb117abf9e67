package services

import (
	"database/sql"

	"rewear/internal/domain"
	"rewear/internal/repos"
)

// AdminService covers listing moderation and the admin dashboard reads.
// The role check is repeated here so the route guard is not the only gate.
type AdminService struct {
	Items    *repos.ItemRepo
	Profiles *repos.ProfileRepo
	Swaps    *repos.SwapRepo
	Txs      *repos.TransactionRepo
}

func NewAdminService(items *repos.ItemRepo, profiles *repos.ProfileRepo, swaps *repos.SwapRepo, txs *repos.TransactionRepo) *AdminService {
	return &AdminService{Items: items, Profiles: profiles, Swaps: swaps, Txs: txs}
}

func (s *AdminService) moderate(caller *domain.Profile, itemID, to string) (domain.Item, error) {
	if caller == nil || caller.Role != domain.RoleAdmin {
		return domain.Item{}, ErrForbidden
	}
	ok, err := s.Items.SetStatusIf(itemID, domain.ItemPending, to)
	if err != nil {
		return domain.Item{}, err
	}
	if !ok {
		// Either the item is gone or it already left the pending state.
		if _, err := s.Items.Get(itemID); err == sql.ErrNoRows {
			return domain.Item{}, ErrNotFound
		} else if err != nil {
			return domain.Item{}, err
		}
		return domain.Item{}, ErrInvalidState
	}
	return s.Items.Get(itemID)
}

func (s *AdminService) ApproveItem(caller *domain.Profile, itemID string) (domain.Item, error) {
	return s.moderate(caller, itemID, domain.ItemActive)
}

func (s *AdminService) RejectItem(caller *domain.Profile, itemID string) (domain.Item, error) {
	return s.moderate(caller, itemID, domain.ItemRejected)
}

func (s *AdminService) ListUsers(caller *domain.Profile) ([]domain.Profile, error) {
	if caller == nil || caller.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.Profiles.List()
}

func (s *AdminService) ListItems(caller *domain.Profile) ([]domain.Item, error) {
	if caller == nil || caller.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.Items.ListAll()
}

func (s *AdminService) ListSwaps(caller *domain.Profile) ([]domain.SwapRequest, error) {
	if caller == nil || caller.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.Swaps.ListAll()
}

func (s *AdminService) ListTransactions(caller *domain.Profile) ([]domain.Transaction, error) {
	if caller == nil || caller.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.Txs.ListAll()
}
