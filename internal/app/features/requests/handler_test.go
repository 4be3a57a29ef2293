// internal/app/features/requests/handler_test.go
package requests

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/helpbridge/internal/app/system/match"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/dalemusser/helpbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, readcache.New(readcache.Policy{}), nil, zap.NewNop(), match.Policy{}, t.TempDir())
	return h, testutil.NewFixtures(t, db)
}

func asUser(u models.User) testutil.TestUser {
	return testutil.TestUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: u.Role}
}

func jsonRequest(method, target, body string, user testutil.TestUser) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return testutil.WithUser(r, user)
}

func TestServeList_RequiresAuth(t *testing.T) {
	h, _ := newTestHandler(t)

	r := testutil.NewRequest("GET", "/requests")
	rec := testutil.NewRecorder()
	h.ServeList(rec, r)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestServeList_RequesterSeesOnlyOwn(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	bob := fx.CreateUser(ctx, "Bob", "bob@example.com", models.RolePIN)
	fx.CreateRequest(ctx, alice, "Grocery run")
	fx.CreateRequestWithStatus(ctx, alice, "Pharmacy pickup", models.StatusCancelled)
	fx.CreateRequest(ctx, bob, "Yard work")

	r := testutil.NewAuthenticatedRequest("GET", "/requests", asUser(alice))
	rec := testutil.NewRecorder()
	h.ServeList(rec, r)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"total":2`)
	rec.AssertContains(t, "Grocery run")
	rec.AssertContains(t, "Pharmacy pickup")
	if strings.Contains(rec.Body.String(), "Yard work") {
		t.Error("requester should not see another requester's request")
	}
}

func TestServeList_VolunteerSeesOpenAndRedacted(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	fx.CreateRequest(ctx, alice, "Open request")
	fx.CreateRequestWithStatus(ctx, alice, "Frozen request", models.StatusFrozen)
	fx.CreateRequestWithStatus(ctx, alice, "Done request", models.StatusCompleted)

	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	r := testutil.NewAuthenticatedRequest("GET", "/requests", asUser(csr))
	rec := testutil.NewRecorder()
	h.ServeList(rec, r)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"total":1`)
	rec.AssertContains(t, "Open request")
	if strings.Contains(rec.Body.String(), "alice@example.com") {
		t.Error("requester contact details should be redacted for volunteers")
	}
}

func TestServeList_StatusFilter(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	fx.CreateRequest(ctx, alice, "Still open")
	fx.CreateRequestWithStatus(ctx, alice, "Already matched", models.StatusMatched)

	r := testutil.NewAuthenticatedRequest("GET", "/requests?status=matched", asUser(alice))
	rec := testutil.NewRecorder()
	h.ServeList(rec, r)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"total":1`)
	rec.AssertContains(t, "Already matched")
}

func TestServeView_OwnerSeesFrozen(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	req := fx.CreateRequestWithStatus(ctx, alice, "Paused request", models.StatusFrozen)

	r := testutil.NewAuthenticatedRequest("GET", "/requests/"+req.ID.Hex(), asUser(alice))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeView(rec, r)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Paused request")
}

func TestServeView_RequesterCannotSeeOthers(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	bob := fx.CreateUser(ctx, "Bob", "bob@example.com", models.RolePIN)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	r := testutil.NewAuthenticatedRequest("GET", "/requests/"+req.ID.Hex(), asUser(bob))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeView(rec, r)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeView_FrozenHiddenFromVolunteer(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequestWithStatus(ctx, alice, "Paused request", models.StatusFrozen)

	r := testutil.NewAuthenticatedRequest("GET", "/requests/"+req.ID.Hex(), asUser(csr))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeView(rec, r)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeView_AdminSeesEverything(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	req := fx.CreateRequestWithStatus(ctx, alice, "Paused request", models.StatusFrozen)

	r := testutil.NewAuthenticatedRequest("GET", "/requests/"+req.ID.Hex(), testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeView(rec, r)

	rec.AssertStatus(t, http.StatusOK)
}

func TestServeView_VolunteerGetsRedactionAndViewBump(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	r := testutil.NewAuthenticatedRequest("GET", "/requests/"+req.ID.Hex(), asUser(csr))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeView(rec, r)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"shortlisted":false`)
	if strings.Contains(rec.Body.String(), "alice@example.com") {
		t.Error("unassigned volunteer should not see requester contact details")
	}

	stored, err := h.Store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ViewCount != 1 {
		t.Errorf("ViewCount = %d, want 1", stored.ViewCount)
	}
}

func TestServeView_MalformedID(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	r := testutil.NewAuthenticatedRequest("GET", "/requests/not-an-id", asUser(alice))
	r = testutil.WithChiURLParam(r, "id", "not-an-id")
	rec := testutil.NewRecorder()
	h.ServeView(rec, r)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleCreate_Valid(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)

	body := `{"title":"Grocery run","description":"Need help with weekly groceries.","category":"shopping","urgency":"medium","location":"221B Baker St","contactMethod":"email"}`
	r := jsonRequest("POST", "/requests", body, asUser(alice))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, r)

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `"status":"pending"`)
	rec.AssertContains(t, `"requesterName":"Alice"`)
	rec.AssertContains(t, `"requesterEmail":"alice@example.com"`)
}

func TestHandleCreate_MissingTitle(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)

	body := `{"description":"Need help.","category":"shopping","urgency":"medium","contactMethod":"email"}`
	r := jsonRequest("POST", "/requests", body, asUser(alice))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, r)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Title is required.")
}

func TestHandleCreate_BadExpectedDate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)

	body := `{"title":"Grocery run","description":"Need help soon.","category":"shopping","urgency":"medium","location":"221B Baker St","contactMethod":"email","expectedDate":"next tuesday"}`
	r := jsonRequest("POST", "/requests", body, asUser(alice))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, r)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Expected date must be YYYY-MM-DD.")
}

func TestHandleCreate_UnknownCategory(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)

	body := `{"title":"Grocery run","description":"Need help soon.","category":"timetravel","urgency":"medium","location":"221B Baker St","contactMethod":"email"}`
	r := jsonRequest("POST", "/requests", body, asUser(alice))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, r)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Unknown category.")
}

func TestHandleCreate_PastExpectedDate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)

	body := `{"title":"Grocery run","description":"Need help soon.","category":"shopping","urgency":"medium","location":"221B Baker St","contactMethod":"email","expectedDate":"2020-01-01"}`
	r := jsonRequest("POST", "/requests", body, asUser(alice))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, r)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Expected date cannot be in the past.")
}

func TestHandleUpdate_NonOwnerForbidden(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	bob := fx.CreateUser(ctx, "Bob", "bob@example.com", models.RolePIN)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	body := `{"title":"Hijacked","description":"x","category":"other","urgency":"low","contactMethod":"email"}`
	r := jsonRequest("PUT", "/requests/"+req.ID.Hex(), body, asUser(bob))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec, r)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleUpdate_MatchedIsLocked(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	req := fx.CreateRequestWithStatus(ctx, alice, "Grocery run", models.StatusMatched)

	body := `{"title":"New terms","description":"Changed.","category":"other","urgency":"low","contactMethod":"email"}`
	r := jsonRequest("PUT", "/requests/"+req.ID.Hex(), body, asUser(alice))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec, r)

	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleUpdate_OwnerEditsPending(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	body := `{"title":"Grocery run and pharmacy","description":"Two stops now please.","category":"shopping","urgency":"high","location":"221B Baker St","contactMethod":"email"}`
	r := jsonRequest("PUT", "/requests/"+req.ID.Hex(), body, asUser(alice))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec, r)

	rec.AssertStatus(t, http.StatusOK)

	stored, err := h.Store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Title != "Grocery run and pharmacy" {
		t.Errorf("Title = %q, want edited title", stored.Title)
	}
	if stored.Urgency != "high" {
		t.Errorf("Urgency = %q, want high", stored.Urgency)
	}
}

func TestHandleApply_AddsVolunteer(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	r := testutil.NewAuthenticatedRequest("POST", "/requests/"+req.ID.Hex()+"/apply", asUser(csr))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleApply(rec, r)

	rec.AssertStatus(t, http.StatusOK)

	stored, err := h.Store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.InterestedVolunteers) != 1 {
		t.Fatalf("InterestedVolunteers = %d, want 1", len(stored.InterestedVolunteers))
	}
	if stored.InterestedVolunteers[0].VolunteerID != csr.ID {
		t.Error("stored volunteer ID does not match applicant")
	}
}

func TestHandleApply_CancelledRequestConflicts(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequestWithStatus(ctx, alice, "Grocery run", models.StatusCancelled)

	r := testutil.NewAuthenticatedRequest("POST", "/requests/"+req.ID.Hex()+"/apply", asUser(csr))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleApply(rec, r)

	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleRejectSelf_HiddenFromListings(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequest(ctx, alice, "Grocery run")
	fx.CreateRequest(ctx, alice, "Yard work")

	r := jsonRequest("POST", "/requests/"+req.ID.Hex()+"/reject", `{"reason":"too far"}`, asUser(csr))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleRejectSelf(rec, r)
	rec.AssertStatus(t, http.StatusOK)

	// The declined request drops out of this volunteer's browse list.
	lr := testutil.NewAuthenticatedRequest("GET", "/requests", asUser(csr))
	lrec := testutil.NewRecorder()
	h.ServeList(lrec, lr)

	lrec.AssertStatus(t, http.StatusOK)
	lrec.AssertContains(t, `"total":1`)
	lrec.AssertContains(t, "Yard work")
	if strings.Contains(lrec.Body.String(), "Grocery run") {
		t.Error("declined request should be hidden from the volunteer's list")
	}
}

func TestServeList_OtherVolunteersStillSeeRejected(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	vera := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	walt := fx.CreateUser(ctx, "Walt", "walt@example.com", models.RoleCSR)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	r := jsonRequest("POST", "/requests/"+req.ID.Hex()+"/reject", "", asUser(vera))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleRejectSelf(rec, r)
	rec.AssertStatus(t, http.StatusOK)

	lr := testutil.NewAuthenticatedRequest("GET", "/requests", asUser(walt))
	lrec := testutil.NewRecorder()
	h.ServeList(lrec, lr)

	lrec.AssertStatus(t, http.StatusOK)
	lrec.AssertContains(t, `"total":1`)
	lrec.AssertContains(t, "Grocery run")
}

func TestHandleApply_AfterSelfRejectConflicts(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	r := jsonRequest("POST", "/requests/"+req.ID.Hex()+"/reject", "", asUser(csr))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleRejectSelf(rec, r)
	rec.AssertStatus(t, http.StatusOK)

	ar := testutil.NewAuthenticatedRequest("POST", "/requests/"+req.ID.Hex()+"/apply", asUser(csr))
	ar = testutil.WithChiURLParam(ar, "id", req.ID.Hex())
	arec := testutil.NewRecorder()
	h.HandleApply(arec, ar)

	arec.AssertStatus(t, http.StatusConflict)
}

func TestAssignCompleteFlow(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	// Volunteer applies.
	r := testutil.NewAuthenticatedRequest("POST", "/requests/"+req.ID.Hex()+"/apply", asUser(csr))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleApply(rec, r)
	rec.AssertStatus(t, http.StatusOK)

	// Requester assigns them.
	r = testutil.NewAuthenticatedRequest("POST", "/requests/"+req.ID.Hex()+"/assign/"+csr.ID.Hex(), asUser(alice))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	r = testutil.WithChiURLParam(r, "volunteerId", csr.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleAssign(rec, r)
	rec.AssertStatus(t, http.StatusOK)

	stored, err := h.Store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != models.StatusMatched {
		t.Fatalf("Status = %q, want matched", stored.Status)
	}
	if len(stored.AssignedVolunteers) != 1 || stored.AssignedVolunteers[0].Email != "vera@example.com" {
		t.Error("assigned volunteer should carry the profile contact snapshot")
	}

	// Requester confirms completion with a rating.
	body := `{"volunteerId":"` + csr.ID.Hex() + `","rating":5,"feedback":"Very helpful."}`
	r = jsonRequest("POST", "/requests/"+req.ID.Hex()+"/complete", body, asUser(alice))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleComplete(rec, r)
	rec.AssertStatus(t, http.StatusOK)

	stored, err = h.Store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want completed", stored.Status)
	}
	if stored.AssignedVolunteers[0].Rating == nil || *stored.AssignedVolunteers[0].Rating != 5 {
		t.Error("completion rating not recorded")
	}
}

func TestHandleComplete_AdminForbidden(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequestWithStatus(ctx, alice, "Grocery run", models.StatusMatched)

	// Only the requester who received the help can rate it.
	body := `{"volunteerId":"` + csr.ID.Hex() + `","rating":5}`
	r := jsonRequest("POST", "/requests/"+req.ID.Hex()+"/complete", body, testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleComplete(rec, r)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleAssign_NotApplicantConflicts(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	csr := fx.CreateUser(ctx, "Vera", "vera@example.com", models.RoleCSR)
	req := fx.CreateRequest(ctx, alice, "Grocery run")

	r := testutil.NewAuthenticatedRequest("POST", "/requests/"+req.ID.Hex()+"/assign/"+csr.ID.Hex(), asUser(alice))
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	r = testutil.WithChiURLParam(r, "volunteerId", csr.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleAssign(rec, r)

	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleCancel(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	pending := fx.CreateRequest(ctx, alice, "Grocery run")
	matched := fx.CreateRequestWithStatus(ctx, alice, "Yard work", models.StatusMatched)

	r := testutil.NewAuthenticatedRequest("POST", "/requests/"+pending.ID.Hex()+"/cancel", asUser(alice))
	r = testutil.WithChiURLParam(r, "id", pending.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleCancel(rec, r)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"status":"cancelled"`)

	// Matched requests run through complete, not cancel.
	r = testutil.NewAuthenticatedRequest("POST", "/requests/"+matched.ID.Hex()+"/cancel", asUser(alice))
	r = testutil.WithChiURLParam(r, "id", matched.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleCancel(rec, r)
	rec.AssertStatus(t, http.StatusConflict)
}

func TestFreezeUnfreezeRoundTrip(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	req := fx.CreateRequest(ctx, alice, "Grocery run")
	admin := testutil.AdminUser()

	r := testutil.NewAuthenticatedRequest("POST", "/requests/"+req.ID.Hex()+"/freeze", admin)
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleFreeze(rec, r)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"status":"frozen"`)

	r = testutil.NewAuthenticatedRequest("POST", "/requests/"+req.ID.Hex()+"/unfreeze", admin)
	r = testutil.WithChiURLParam(r, "id", req.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleUnfreeze(rec, r)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"status":"pending"`)

	stored, err := h.Store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != models.StatusPending {
		t.Errorf("Status = %q, want pending after unfreeze", stored.Status)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RolePIN)
	pending := fx.CreateRequest(ctx, alice, "Grocery run")
	matched := fx.CreateRequestWithStatus(ctx, alice, "Yard work", models.StatusMatched)

	r := testutil.NewAuthenticatedRequest("DELETE", "/requests/"+pending.ID.Hex(), asUser(alice))
	r = testutil.WithChiURLParam(r, "id", pending.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec, r)
	rec.AssertStatus(t, http.StatusOK)

	if _, err := h.Store.GetByID(ctx, pending.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("deleted request still loads: err = %v", err)
	}

	// A matched request has engaged volunteers; the owner cannot delete it.
	r = testutil.NewAuthenticatedRequest("DELETE", "/requests/"+matched.ID.Hex(), asUser(alice))
	r = testutil.WithChiURLParam(r, "id", matched.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDelete(rec, r)
	rec.AssertStatus(t, http.StatusConflict)

	// An admin can.
	r = testutil.NewAuthenticatedRequest("DELETE", "/requests/"+matched.ID.Hex(), testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", matched.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDelete(rec, r)
	rec.AssertStatus(t, http.StatusOK)
}
