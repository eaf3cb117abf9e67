package handlers

import (
	"github.com/jmoiron/sqlx"

	"rewear/internal/images"
	"rewear/internal/repos"
	"rewear/internal/services"
)

type Deps struct {
	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	ItemHandler    *ItemHandler
	SwapHandler    *SwapHandler
	EconomyHandler *EconomyHandler
	AdminHandler   *AdminHandler
	UploadHandler  *UploadHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService, uploader images.Uploader) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	itemRepo := repos.NewItemRepo(db)
	swapRepo := repos.NewSwapRepo(db)
	txRepo := repos.NewTransactionRepo(db)
	profileRepo := repos.NewProfileRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, itemRepo)
	listingSvc := services.NewListingService(itemRepo, catRepo)
	swapSvc := services.NewSwapService(db, swapRepo, itemRepo)
	economySvc := services.NewEconomyService(db, txRepo)
	adminSvc := services.NewAdminService(itemRepo, profileRepo, swapRepo, txRepo)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: auth},
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		ItemHandler:    &ItemHandler{Listings: listingSvc},
		SwapHandler:    &SwapHandler{Swaps: swapSvc},
		EconomyHandler: &EconomyHandler{Economy: economySvc},
		AdminHandler:   &AdminHandler{Admin: adminSvc},
		UploadHandler:  &UploadHandler{Images: uploader},
	}
}
