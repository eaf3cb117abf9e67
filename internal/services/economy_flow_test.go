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

// memdb opens a seeded in-memory database and adds two extra profiles so the
// tests have a buyer with 100 points and one who can barely afford anything.
// The seed contains item 'i-denim' (45 points, owned by 'u-demo').
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.MustExec(`INSERT INTO profiles(id,name,email,password_hash,points) VALUES
	  ('u-buyer','Buyer','buyer@rewear.test','x',100),
	  ('u-broke','Broke','broke@rewear.test','x',10)`)
	return db
}

func profilePoints(t *testing.T, db *sqlx.DB, id string) int {
	t.Helper()
	var p int
	if err := db.Get(&p, `SELECT points FROM profiles WHERE id=?`, id); err != nil {
		t.Fatalf("points of %s: %v", id, err)
	}
	return p
}

func itemStatus(t *testing.T, db *sqlx.DB, id string) string {
	t.Helper()
	var s string
	if err := db.Get(&s, `SELECT status FROM items WHERE id=?`, id); err != nil {
		t.Fatalf("status of %s: %v", id, err)
	}
	return s
}

func TestRedeemTransfersPoints(t *testing.T) {
	db := memdb(t)
	svc := services.NewEconomyService(db, repos.NewTransactionRepo(db))

	// A pending swap request on the item should die with the sale.
	db.MustExec(`INSERT INTO swap_requests(id,item_id,requester_id,owner_id,message)
	  VALUES ('sr-1','i-denim','u-broke','u-demo','still interested')`)

	tx, err := svc.Redeem("u-buyer", "i-denim")
	if err != nil {
		t.Fatal(err)
	}
	if tx.Type != domain.TxPurchase || tx.Status != domain.TxCompleted || tx.Points != 45 {
		t.Fatalf("bad transaction: %+v", tx)
	}

	if got := profilePoints(t, db, "u-buyer"); got != 55 {
		t.Fatalf("buyer: want 55 points, got %d", got)
	}
	if got := profilePoints(t, db, "u-demo"); got != 1045 {
		t.Fatalf("seller: want 1045 points, got %d", got)
	}
	if got := itemStatus(t, db, "i-denim"); got != domain.ItemSwapped {
		t.Fatalf("item: want swapped, got %s", got)
	}

	var swaps []int
	if err := db.Select(&swaps, `SELECT total_swaps FROM profiles WHERE id IN ('u-buyer','u-demo')`); err != nil {
		t.Fatal(err)
	}
	for _, n := range swaps {
		if n != 1 {
			t.Fatalf("want total_swaps=1 on both sides, got %v", swaps)
		}
	}

	var srStatus string
	if err := db.Get(&srStatus, `SELECT status FROM swap_requests WHERE id='sr-1'`); err != nil {
		t.Fatal(err)
	}
	if srStatus != domain.SwapRejected {
		t.Fatalf("open request should be rejected after sale, got %s", srStatus)
	}
}

func TestRedeemInsufficientPointsLeavesBalancesAlone(t *testing.T) {
	db := memdb(t)
	svc := services.NewEconomyService(db, repos.NewTransactionRepo(db))

	_, err := svc.Redeem("u-broke", "i-denim")
	if !errors.Is(err, services.ErrInsufficientPoints) {
		t.Fatalf("want ErrInsufficientPoints, got %v", err)
	}

	if got := profilePoints(t, db, "u-broke"); got != 10 {
		t.Fatalf("failed redeem must not move points, got %d", got)
	}
	if got := profilePoints(t, db, "u-demo"); got != 1000 {
		t.Fatalf("seller must be untouched, got %d", got)
	}
	if got := itemStatus(t, db, "i-denim"); got != domain.ItemActive {
		t.Fatalf("item must stay active, got %s", got)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM transactions`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no transaction should be recorded, got %d", n)
	}
}

func TestRedeemGuards(t *testing.T) {
	db := memdb(t)
	svc := services.NewEconomyService(db, repos.NewTransactionRepo(db))

	// Own item
	if _, err := svc.Redeem("u-demo", "i-denim"); !errors.Is(err, services.ErrSelfSwap) {
		t.Fatalf("want ErrSelfSwap, got %v", err)
	}
	// Unknown item
	if _, err := svc.Redeem("u-buyer", "i-nope"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRedeemTwiceFailsAndConservesPoints(t *testing.T) {
	db := memdb(t)
	svc := services.NewEconomyService(db, repos.NewTransactionRepo(db))

	var before int
	if err := db.Get(&before, `SELECT SUM(points) FROM profiles`); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Redeem("u-buyer", "i-denim"); err != nil {
		t.Fatal(err)
	}
	// The item is no longer active, so the second buyer loses cleanly.
	if _, err := svc.Redeem("u-broke", "i-denim"); !errors.Is(err, services.ErrItemUnavailable) {
		t.Fatalf("want ErrItemUnavailable on resold item, got %v", err)
	}

	var after int
	if err := db.Get(&after, `SELECT SUM(points) FROM profiles`); err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Fatalf("points not conserved: before=%d after=%d", before, after)
	}
}
