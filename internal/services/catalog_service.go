package services

import (
	"database/sql"

	"rewear/internal/domain"
	"rewear/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Items *repos.ItemRepo
}

func NewCatalogService(cats *repos.CategoryRepo, items *repos.ItemRepo) *CatalogService {
	return &CatalogService{Cats: cats, Items: items}
}

type CatalogPage struct {
	Items    []domain.Item `json:"items"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// Browse returns one page of active listings plus the total match count.
func (s *CatalogService) Browse(q, category, sort string, page, pageSize int) (CatalogPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	if pageSize > 50 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	items, total, err := s.Items.Search(q, category, sort, pageSize, offset)
	if err != nil {
		return CatalogPage{}, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return CatalogPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// GetItem returns one listing and counts the view.
func (s *CatalogService) GetItem(id string) (domain.Item, error) {
	it, err := s.Items.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Item{}, ErrNotFound
		}
		return domain.Item{}, err
	}
	// Best effort; a lost view count is not worth failing the page.
	if err := s.Items.IncrementViews(id); err == nil {
		it.Views++
	}
	return it, nil
}
