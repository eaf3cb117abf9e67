package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// End-to-end purchase: sign up, redeem the seeded jacket, check the receipt
// and the balances on both sides.
func TestRedeemOverHTTP(t *testing.T) {
	app, db := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/v1/auth/signup", fiber.Map{
		"name": "Elliot", "email": "elliot@rewear.test", "password": "Sup3rsecret",
	}, ""), -1)
	if err != nil {
		t.Fatal(err)
	}
	var signed struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &signed)

	// Redeem the 45-point seeded jacket.
	resp, err = app.Test(jsonReq("POST", "/api/v1/items/i-denim/redeem", nil, signed.Token), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("redeem: want 201, got %d", resp.StatusCode)
	}
	var receipt struct {
		Transaction struct {
			Points int    `json:"points"`
			Type   string `json:"type"`
			Status string `json:"status"`
		} `json:"transaction"`
	}
	decodeBody(t, resp, &receipt)
	if receipt.Transaction.Points != 45 || receipt.Transaction.Type != "purchase" || receipt.Transaction.Status != "completed" {
		t.Fatalf("bad receipt: %+v", receipt.Transaction)
	}

	var buyerPoints, sellerPoints int
	if err := db.Get(&buyerPoints, `SELECT points FROM profiles WHERE email='elliot@rewear.test'`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&sellerPoints, `SELECT points FROM profiles WHERE id='u-demo'`); err != nil {
		t.Fatal(err)
	}
	if buyerPoints != 955 || sellerPoints != 1045 {
		t.Fatalf("balances after redeem: buyer=%d seller=%d", buyerPoints, sellerPoints)
	}

	// The item is gone from the marketplace; a second redeem conflicts.
	resp, err = app.Test(jsonReq("POST", "/api/v1/items/i-denim/redeem", nil, signed.Token), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("double redeem: want 409, got %d", resp.StatusCode)
	}

	// Owners can not buy their own listings.
	demoTok := loginToken(t, app, "demo@rewear.com", "Passw0rd!")
	resp, err = app.Test(jsonReq("POST", "/api/v1/items/i-sneakers/redeem", nil, demoTok), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("self redeem: want 400, got %d", resp.StatusCode)
	}

	// The receipt shows up in the buyer's history.
	resp, err = app.Test(jsonReq("GET", "/api/v1/my/transactions", nil, signed.Token), -1)
	if err != nil {
		t.Fatal(err)
	}
	var history struct {
		Transactions []struct {
			ItemTitle string `json:"item_title"`
		} `json:"transactions"`
	}
	decodeBody(t, resp, &history)
	if len(history.Transactions) != 1 || history.Transactions[0].ItemTitle != "Vintage Denim Jacket" {
		t.Fatalf("bad history: %+v", history.Transactions)
	}
}
