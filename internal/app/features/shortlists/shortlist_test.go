// internal/app/features/shortlists/shortlist_test.go
package shortlists

import (
	"net/http"
	"testing"

	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/dalemusser/helpbridge/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, readcache.New(readcache.Policy{}), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func asUser(u models.User) testutil.TestUser {
	return testutil.TestUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: u.Role}
}

func TestServeList_RequiresAuth(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewRequest("GET", "/shortlists"))

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestServeList_EmptyShortlist(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/shortlists", asUser(csr)))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"data":[]`)
}

func TestHandleToggle_AddThenRemove(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	toggle := func() *testutil.ResponseRecorder {
		r := testutil.NewAuthenticatedRequest("POST", "/shortlists/"+req.ID.Hex(), asUser(csr))
		r = testutil.WithChiURLParam(r, "requestId", req.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleToggle(rec, r)
		return rec
	}

	rec := toggle()
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"shortlisted":true`)

	stored, err := h.Requests.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ShortlistCount != 1 {
		t.Errorf("ShortlistCount = %d, want 1", stored.ShortlistCount)
	}

	rec = toggle()
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"shortlisted":false`)

	stored, err = h.Requests.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ShortlistCount != 0 {
		t.Errorf("ShortlistCount = %d, want 0 after removal", stored.ShortlistCount)
	}
}

func TestHandleToggle_UnknownRequest(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	missing := "65f000000000000000000000"

	r := testutil.NewAuthenticatedRequest("POST", "/shortlists/"+missing, asUser(csr))
	r = testutil.WithChiURLParam(r, "requestId", missing)
	rec := testutil.NewRecorder()
	h.HandleToggle(rec, r)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeList_ShowsSnapshot(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	r := testutil.NewAuthenticatedRequest("POST", "/shortlists/"+req.ID.Hex(), asUser(csr))
	r = testutil.WithChiURLParam(r, "requestId", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleToggle(rec, r)
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/shortlists", asUser(csr)))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Grocery run")
}
