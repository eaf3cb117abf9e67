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

// swapdb seeds two requesters next to the demo data. 'i-denim' belongs to
// 'u-demo' and is active, 'i-pending' is still waiting for moderation.
func swapdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.MustExec(`INSERT INTO profiles(id,name,email,password_hash,points) VALUES
	  ('u-ana','Ana','ana@rewear.test','x',500),
	  ('u-bob','Bob','bob@rewear.test','x',500)`)
	db.MustExec(`INSERT INTO items(id,title,category_id,size,condition,points,user_id,status)
	  VALUES ('i-pending','Wool Scarf','accessories','One Size','Good',20,'u-demo','pending')`)
	return db
}

func newSwapService(db *sqlx.DB) *services.SwapService {
	return services.NewSwapService(db, repos.NewSwapRepo(db), repos.NewItemRepo(db))
}

func TestSwapCreateGuards(t *testing.T) {
	db := swapdb(t)
	svc := newSwapService(db)

	if _, err := svc.Create("u-demo", "i-denim", "hi"); !errors.Is(err, services.ErrSelfSwap) {
		t.Fatalf("own item: want ErrSelfSwap, got %v", err)
	}
	if _, err := svc.Create("u-ana", "i-pending", "hi"); !errors.Is(err, services.ErrItemUnavailable) {
		t.Fatalf("unapproved item: want ErrItemUnavailable, got %v", err)
	}
	if _, err := svc.Create("u-ana", "i-missing", "hi"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("unknown item: want ErrNotFound, got %v", err)
	}

	if _, err := svc.Create("u-ana", "i-denim", "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create("u-ana", "i-denim", "again"); !errors.Is(err, services.ErrAlreadyRequested) {
		t.Fatalf("duplicate: want ErrAlreadyRequested, got %v", err)
	}
}

func TestSwapAcceptSettlesItemAndSiblings(t *testing.T) {
	db := swapdb(t)
	svc := newSwapService(db)

	reqAna, err := svc.Create("u-ana", "i-denim", "love this jacket")
	if err != nil {
		t.Fatal(err)
	}
	reqBob, err := svc.Create("u-bob", "i-denim", "me too")
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Respond("u-demo", reqAna.ID, domain.SwapAccepted)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.SwapAccepted {
		t.Fatalf("want accepted, got %s", got.Status)
	}

	if s := itemStatus(t, db, "i-denim"); s != domain.ItemSwapped {
		t.Fatalf("item: want swapped, got %s", s)
	}

	// Bob's competing request dies with the item.
	var bobStatus string
	if err := db.Get(&bobStatus, `SELECT status FROM swap_requests WHERE id=?`, reqBob.ID); err != nil {
		t.Fatal(err)
	}
	if bobStatus != domain.SwapRejected {
		t.Fatalf("sibling request: want rejected, got %s", bobStatus)
	}

	var swaps []int
	if err := db.Select(&swaps, `SELECT total_swaps FROM profiles WHERE id IN ('u-ana','u-demo')`); err != nil {
		t.Fatal(err)
	}
	for _, n := range swaps {
		if n != 1 {
			t.Fatalf("want total_swaps=1 on both sides, got %v", swaps)
		}
	}

	// The accepted swap leaves a zero-point completed transaction behind.
	var tx domain.Transaction
	if err := db.Get(&tx, `SELECT id,item_id,buyer_id,seller_id,points,type,status,created_at
	  FROM transactions WHERE item_id='i-denim'`); err != nil {
		t.Fatal(err)
	}
	if tx.Type != domain.TxSwap || tx.Status != domain.TxCompleted || tx.Points != 0 {
		t.Fatalf("bad swap transaction: %+v", tx)
	}
}

func TestSwapRespondGuards(t *testing.T) {
	db := swapdb(t)
	svc := newSwapService(db)

	req, err := svc.Create("u-ana", "i-denim", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Respond("u-demo", req.ID, "maybe"); !errors.Is(err, services.ErrInvalidState) {
		t.Fatalf("bad decision: want ErrInvalidState, got %v", err)
	}
	if _, err := svc.Respond("u-bob", req.ID, domain.SwapRejected); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("non-owner: want ErrForbidden, got %v", err)
	}
	if _, err := svc.Respond("u-demo", "sr-missing", domain.SwapRejected); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("unknown request: want ErrNotFound, got %v", err)
	}

	if _, err := svc.Respond("u-demo", req.ID, domain.SwapRejected); err != nil {
		t.Fatal(err)
	}
	// Terminal states stay terminal.
	if _, err := svc.Respond("u-demo", req.ID, domain.SwapAccepted); !errors.Is(err, services.ErrAlreadyResolved) {
		t.Fatalf("resolved request: want ErrAlreadyResolved, got %v", err)
	}
	if s := itemStatus(t, db, "i-denim"); s != domain.ItemActive {
		t.Fatalf("rejected swap must not touch the item, got %s", s)
	}
}
