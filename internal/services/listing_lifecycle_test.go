package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"rewear/internal/domain"
	"rewear/internal/repos"
	"rewear/internal/services"
)

func listingdb(t *testing.T) (*sqlx.DB, *services.ListingService, *services.AdminService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.MustExec(`INSERT INTO profiles(id,name,email,password_hash,points) VALUES
	  ('u-owner','Owner','owner@rewear.test','x',500)`)

	items := repos.NewItemRepo(db)
	cats := repos.NewCategoryRepo(db)
	listings := services.NewListingService(items, cats)
	admin := services.NewAdminService(items, repos.NewProfileRepo(db), repos.NewSwapRepo(db), repos.NewTransactionRepo(db))
	return db, listings, admin
}

func validInput() services.ListingInput {
	return services.ListingInput{
		Title:      "Corduroy Pants",
		CategoryID: "bottoms",
		Size:       "M",
		Condition:  "Good",
		Points:     25,
		Tags:       []string{"corduroy"},
		Images:     []string{"items/x/main.jpg"},
	}
}

func TestListingCreateStartsPending(t *testing.T) {
	_, listings, _ := listingdb(t)

	it, err := listings.Create("u-owner", validInput())
	if err != nil {
		t.Fatal(err)
	}
	if it.Status != domain.ItemPending {
		t.Fatalf("new listing must await moderation, got %s", it.Status)
	}
	if it.OwnerName != "Owner" || it.CategoryName != "Bottoms" {
		t.Fatalf("joined names missing: %+v", it)
	}

	in := validInput()
	in.CategoryID = "no-such-category"
	if _, err := listings.Create("u-owner", in); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("unknown category: want ErrNotFound, got %v", err)
	}
}

func TestListingModerationFlow(t *testing.T) {
	db, listings, admin := listingdb(t)

	it, err := listings.Create("u-owner", validInput())
	if err != nil {
		t.Fatal(err)
	}

	profiles := repos.NewProfileRepo(db)
	adminP, err := profiles.ByID("u-admin")
	if err != nil {
		t.Fatal(err)
	}
	userP, err := profiles.ByID("u-demo")
	if err != nil {
		t.Fatal(err)
	}

	// Regular users can not moderate even if they reach the service directly.
	if _, err := admin.ApproveItem(userP, it.ID); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("non-admin moderation: want ErrForbidden, got %v", err)
	}

	approved, err := admin.ApproveItem(adminP, it.ID)
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != domain.ItemActive {
		t.Fatalf("want active after approval, got %s", approved.Status)
	}

	// Moderation is a one-way gate out of pending.
	if _, err := admin.RejectItem(adminP, it.ID); !errors.Is(err, services.ErrInvalidState) {
		t.Fatalf("re-moderation: want ErrInvalidState, got %v", err)
	}
	if _, err := admin.ApproveItem(adminP, "i-missing"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("unknown item: want ErrNotFound, got %v", err)
	}
}

func TestListingUpdateAndDeleteGuards(t *testing.T) {
	db, listings, _ := listingdb(t)

	it, err := listings.Create("u-owner", validInput())
	if err != nil {
		t.Fatal(err)
	}

	in := validInput()
	in.Title = "Corduroy Pants (hemmed)"
	if _, err := listings.Update("u-demo", it.ID, in); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("stranger edit: want ErrForbidden, got %v", err)
	}

	updated, err := listings.Update("u-owner", it.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != in.Title {
		t.Fatalf("edit did not stick: %+v", updated)
	}

	// A swapped item is out of the owner's hands.
	db.MustExec(`UPDATE items SET status='swapped' WHERE id=?`, it.ID)
	if _, err := listings.Update("u-owner", it.ID, in); !errors.Is(err, services.ErrInvalidState) {
		t.Fatalf("edit after swap: want ErrInvalidState, got %v", err)
	}
	if err := listings.Delete("u-owner", it.ID); !errors.Is(err, services.ErrInvalidState) {
		t.Fatalf("delete after swap: want ErrInvalidState, got %v", err)
	}

	db.MustExec(`UPDATE items SET status='rejected' WHERE id=?`, it.ID)
	if err := listings.Delete("u-owner", it.ID); err != nil {
		t.Fatalf("owner should be able to remove a rejected listing: %v", err)
	}
}
