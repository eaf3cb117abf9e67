package services

import (
	"database/sql"

	"rewear/internal/domain"
	"rewear/internal/repos"

	"github.com/google/uuid"
)

// ListingService covers the owner side of items: create, edit, delete.
// Moderation (approve/reject) lives in AdminService.
type ListingService struct {
	Items *repos.ItemRepo
	Cats  *repos.CategoryRepo
}

func NewListingService(items *repos.ItemRepo, cats *repos.CategoryRepo) *ListingService {
	return &ListingService{Items: items, Cats: cats}
}

type ListingInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  string   `json:"category_id"`
	Size        string   `json:"size"`
	Condition   string   `json:"condition"`
	Points      int      `json:"points"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

func (s *ListingService) Create(ownerID string, in ListingInput) (domain.Item, error) {
	ok, err := s.Cats.Exists(in.CategoryID)
	if err != nil {
		return domain.Item{}, err
	}
	if !ok {
		return domain.Item{}, ErrNotFound
	}

	it := &domain.Item{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Size:        in.Size,
		Condition:   in.Condition,
		Points:      in.Points,
		Tags:        in.Tags,
		Images:      in.Images,
		UserID:      ownerID,
		Status:      domain.ItemPending, // goes live after moderation
	}
	if it.Tags == nil {
		it.Tags = []string{}
	}
	if it.Images == nil {
		it.Images = []string{}
	}
	if err := s.Items.Create(it); err != nil {
		return domain.Item{}, err
	}
	return s.Items.Get(it.ID)
}

func (s *ListingService) Update(callerID, itemID string, in ListingInput) (domain.Item, error) {
	it, err := s.Items.Get(itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Item{}, ErrNotFound
		}
		return domain.Item{}, err
	}
	if it.UserID != callerID {
		return domain.Item{}, ErrForbidden
	}
	// Swapped and rejected listings are terminal for the marketplace.
	if it.Status != domain.ItemPending && it.Status != domain.ItemActive {
		return domain.Item{}, ErrInvalidState
	}
	if in.CategoryID != it.CategoryID {
		ok, err := s.Cats.Exists(in.CategoryID)
		if err != nil {
			return domain.Item{}, err
		}
		if !ok {
			return domain.Item{}, ErrNotFound
		}
	}

	it.Title = in.Title
	it.Description = in.Description
	it.CategoryID = in.CategoryID
	it.Size = in.Size
	it.Condition = in.Condition
	it.Points = in.Points
	it.Tags = in.Tags
	it.Images = in.Images
	if it.Tags == nil {
		it.Tags = []string{}
	}
	if it.Images == nil {
		it.Images = []string{}
	}
	if err := s.Items.Update(&it); err != nil {
		return domain.Item{}, err
	}
	return s.Items.Get(itemID)
}

func (s *ListingService) Delete(callerID, itemID string) error {
	it, err := s.Items.Get(itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	if it.UserID != callerID {
		return ErrForbidden
	}
	if it.Status == domain.ItemSwapped {
		return ErrInvalidState
	}
	return s.Items.Delete(itemID)
}

func (s *ListingService) MyItems(userID string) ([]domain.Item, error) {
	out, err := s.Items.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Item{}
	}
	return out, nil
}
