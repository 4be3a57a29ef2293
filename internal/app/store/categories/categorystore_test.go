package categorystore_test

import (
	"errors"
	"testing"

	categorystore "github.com/dalemusser/helpbridge/internal/app/store/categories"
	"github.com/dalemusser/helpbridge/internal/app/system/indexes"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/dalemusser/helpbridge/internal/testutil"
)

func TestDefaults(t *testing.T) {
	defaults := categorystore.Defaults()

	if len(defaults) != 8 {
		t.Fatalf("expected 8 default categories, got %d", len(defaults))
	}

	keys := map[string]bool{}
	for _, c := range defaults {
		keys[c.Key] = true
		if c.DisplayName.ZH == "" || c.DisplayName.EN == "" {
			t.Errorf("category %q missing a display name", c.Key)
		}
		if c.Status != "active" {
			t.Errorf("category %q should be active", c.Key)
		}
	}
	for _, want := range []string{"medical", "transportation", "shopping", "housework", "companionship", "education", "legal", "other"} {
		if !keys[want] {
			t.Errorf("missing default category %q", want)
		}
	}
}

func TestEnsureDefaults_SeedsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureDefaults(ctx); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}

	cats, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(cats) != 8 {
		t.Fatalf("expected 8 categories, got %d", len(cats))
	}
}

func TestEnsureDefaults_PreservesEdits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureDefaults(ctx); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}

	// An admin renames a default category.
	cat, err := store.GetByKey(ctx, "medical")
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	cat.Name = "Medical Support"
	if _, err := store.Update(ctx, "medical", cat); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// A restart re-runs EnsureDefaults; the edit must survive.
	if err := store.EnsureDefaults(ctx); err != nil {
		t.Fatalf("second EnsureDefaults failed: %v", err)
	}

	got, err := store.GetByKey(ctx, "medical")
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if got.Name != "Medical Support" {
		t.Errorf("edit was clobbered: got %q", got.Name)
	}
}

func TestCreate_DuplicateKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	_, err := store.Create(ctx, models.Category{Key: "tutoring", Name: "Tutoring", Status: "active"})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err = store.Create(ctx, models.Category{Key: "Tutoring", Name: "Other", Status: "active"})
	if !errors.Is(err, categorystore.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestListActive_ExcludesInactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Category{Key: "active-one", Name: "Active", Status: "active"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = store.Create(ctx, models.Category{Key: "hidden-one", Name: "Hidden", Status: "inactive"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 1 || active[0].Key != "active-one" {
		t.Errorf("expected only the active category, got %d entries", len(active))
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListAll: got %d, want 2", len(all))
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Category{Key: "doomed", Name: "Doomed", Status: "active"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(ctx, "doomed")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: got %d, want 1", deleted)
	}

	deleted, err = store.Delete(ctx, "doomed")
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second delete: got %d, want 0", deleted)
	}
}
