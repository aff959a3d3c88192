// Tests for the SQLite store implementation.
package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/seewee/seewee/pkg/types"
)

func attachedStore(t *testing.T) *Store {
	t.Helper()

	s := NewStore()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	if err := s.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { s.Detach() })
	return s
}

func TestStore_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	s := NewStore()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := s.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Verify database file created
	dbPath := filepath.Join(tmpDir, "seewee.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("seewee.db not created")
	}

	// Verify double attach fails
	err = s.Attach(config)
	if !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	s.Detach()
}

func TestStore_AttachRejectsBadConfig(t *testing.T) {
	s := NewStore()
	err := s.Attach(types.Config{Backend: "carrier-pigeon", DataDir: t.TempDir()})
	if !errors.Is(err, types.ErrBackendUnknown) {
		t.Errorf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestStore_Detach(t *testing.T) {
	s := NewStore()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	s.Attach(config)

	err := s.Detach()
	if err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Verify idempotent
	err = s.Detach()
	if err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	// Verify operations fail after detach
	_, err = s.ListEntries("")
	if !errors.Is(err, ErrDetached) {
		t.Errorf("expected ErrDetached, got %v", err)
	}
}

func TestStore_AttachPreservesExistingData(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	s := NewStore()
	if err := s.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	entry, err := s.CreateEntry(types.CategoryExperience, map[string]types.FieldValue{
		"role": types.Text("Engineer"),
	}, nil)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	s.Detach()

	s2 := NewStore()
	if err := s2.Attach(config); err != nil {
		t.Fatalf("re-Attach failed: %v", err)
	}
	defer s2.Detach()

	got, err := s2.GetEntry(entry.EntryID)
	if err != nil {
		t.Fatalf("GetEntry after re-attach failed: %v", err)
	}
	if got.Field("role").AsString() != "Engineer" {
		t.Errorf("expected role to survive reopen, got %q", got.Field("role").AsString())
	}
}

func TestStore_SeedsDefaultVariant(t *testing.T) {
	s := attachedStore(t)

	variants, err := s.ListVariants()
	if err != nil {
		t.Fatalf("ListVariants failed: %v", err)
	}
	if len(variants) != 1 {
		t.Fatalf("expected 1 seeded variant, got %d", len(variants))
	}
	if variants[0].Name != defaultVariantName {
		t.Errorf("expected seeded variant %q, got %q", defaultVariantName, variants[0].Name)
	}
	if len(variants[0].SectionIDs) != len(defaultSectionOrder) {
		t.Errorf("expected %d seeded sections, got %d", len(defaultSectionOrder), len(variants[0].SectionIDs))
	}
}

func TestEntry_CRUD(t *testing.T) {
	s := attachedStore(t)

	fields := map[string]types.FieldValue{
		"role":       types.Text("Staff Engineer"),
		"company":    types.Text("Initech"),
		"start_date": types.Date("2021-03"),
		"highlights": types.TextList("Shipped the thing", "Deleted the other thing"),
	}

	entry, err := s.CreateEntry(types.CategoryExperience, fields, []string{"tech", "senior"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if entry.EntryID == "" {
		t.Error("CreateEntry should assign an ID")
	}

	got, err := s.GetEntry(entry.EntryID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Category != types.CategoryExperience {
		t.Errorf("expected category experience, got %q", got.Category)
	}
	if got.Field("role").AsString() != "Staff Engineer" {
		t.Errorf("expected role round trip, got %q", got.Field("role").AsString())
	}
	// Declared kinds are restored after the JSON round trip.
	if got.Field("start_date").Kind != types.KindDate {
		t.Errorf("expected start_date to hydrate as a date, got %v", got.Field("start_date").Kind)
	}
	if hl := got.Field("highlights").AsList(); len(hl) != 2 || hl[0] != "Shipped the thing" {
		t.Errorf("expected highlights list round trip, got %v", hl)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "senior" || got.Tags[1] != "tech" {
		t.Errorf("expected sorted tags [senior tech], got %v", got.Tags)
	}

	// Update fields only; tags are left alone.
	updated, err := s.UpdateEntry(entry.EntryID, map[string]types.FieldValue{
		"role": types.Text("Principal Engineer"),
	}, nil)
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if updated.Field("role").AsString() != "Principal Engineer" {
		t.Errorf("expected updated role, got %q", updated.Field("role").AsString())
	}
	if len(updated.Tags) != 2 {
		t.Errorf("expected tags untouched, got %v", updated.Tags)
	}

	// Replace tags.
	updated, err = s.UpdateEntry(entry.EntryID, nil, []string{"tech"})
	if err != nil {
		t.Fatalf("UpdateEntry tags failed: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "tech" {
		t.Errorf("expected tags [tech], got %v", updated.Tags)
	}

	if err := s.DeleteEntry(entry.EntryID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	_, err = s.GetEntry(entry.EntryID)
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteEntry(entry.EntryID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestEntry_UnknownCategory(t *testing.T) {
	s := attachedStore(t)

	_, err := s.CreateEntry("interpretive_dance", nil, nil)
	if !errors.Is(err, types.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestEntry_ListFilterByCategory(t *testing.T) {
	s := attachedStore(t)

	mustCreate := func(cat types.Category, role string) {
		t.Helper()
		_, err := s.CreateEntry(cat, map[string]types.FieldValue{"title": types.Text(role)}, nil)
		if err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}
	mustCreate(types.CategoryExperience, "A")
	mustCreate(types.CategoryExperience, "B")
	mustCreate(types.CategoryEducation, "C")

	all, err := s.ListEntries("")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries, got %d", len(all))
	}

	exp, err := s.ListEntries(types.CategoryExperience)
	if err != nil {
		t.Fatalf("ListEntries(experience) failed: %v", err)
	}
	if len(exp) != 2 {
		t.Errorf("expected 2 experience entries, got %d", len(exp))
	}
}

func TestVariant_CRUD(t *testing.T) {
	s := attachedStore(t)

	rules := types.Rules{
		types.RuleIncludeTags: []string{"tech"},
	}
	v, err := s.CreateVariant("tech-resume", rules, []string{"experience", "skills"})
	if err != nil {
		t.Fatalf("CreateVariant failed: %v", err)
	}

	got, err := s.GetVariant(v.VariantID)
	if err != nil {
		t.Fatalf("GetVariant failed: %v", err)
	}
	if got.Name != "tech-resume" {
		t.Errorf("expected name round trip, got %q", got.Name)
	}
	if len(got.SectionIDs) != 2 || got.SectionIDs[0] != "experience" {
		t.Errorf("expected declared section order, got %v", got.SectionIDs)
	}
	if !got.Rules.Matches([]string{"tech", "misc"}) {
		t.Error("expected include rule to match after round trip")
	}

	if err := s.UpdateVariantName(v.VariantID, "tech"); err != nil {
		t.Fatalf("UpdateVariantName failed: %v", err)
	}
	if err := s.UpdateVariantName(v.VariantID, "  "); !errors.Is(err, types.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}

	if err := s.UpdateVariantRules(v.VariantID, types.Rules{
		types.RuleExcludeTags: []string{"draft"},
	}); err != nil {
		t.Fatalf("UpdateVariantRules failed: %v", err)
	}
	got, _ = s.GetVariant(v.VariantID)
	if got.Rules.Matches([]string{"draft"}) {
		t.Error("expected replaced rules to exclude draft")
	}

	if err := s.DeleteVariant(v.VariantID); err != nil {
		t.Fatalf("DeleteVariant failed: %v", err)
	}
	if _, err := s.GetVariant(v.VariantID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestVariant_EmptyNameRejected(t *testing.T) {
	s := attachedStore(t)

	_, err := s.CreateVariant("", nil, []string{"experience"})
	if !errors.Is(err, types.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestLayout_RoundTrip(t *testing.T) {
	s := attachedStore(t)

	v, err := s.CreateVariant("layout-test", nil, []string{"experience", "education", "projects"})
	if err != nil {
		t.Fatalf("CreateVariant failed: %v", err)
	}

	// A fresh variant loads as empty sections in declared order.
	layout, err := s.LoadLayout(v.VariantID)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if !layout.Empty() {
		t.Error("expected fresh layout to be empty")
	}
	if len(layout.Sections) != 3 || layout.Sections[0].SectionID != "experience" {
		t.Errorf("expected seeded section order, got %+v", layout.Sections)
	}

	// Orders are arbitrary permutations and must survive exactly.
	layout.Sections[0].EntryIDs = []string{"e3", "e1", "e2"}
	layout.Sections[1].EntryIDs = []string{"e5"}
	if err := layout.ReorderSections(2, 0); err != nil {
		t.Fatalf("ReorderSections failed: %v", err)
	}

	if err := s.SaveLayout(layout); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}

	got, err := s.LoadLayout(v.VariantID)
	if err != nil {
		t.Fatalf("LoadLayout after save failed: %v", err)
	}
	if !layout.Equal(got) {
		t.Errorf("layout did not round trip:\nsaved:  %s\nloaded: %s", layout.Canonical(), got.Canonical())
	}

	// Saving again replaces wholesale rather than appending.
	got.Sections[1].EntryIDs = []string{"e1"}
	if err := s.SaveLayout(got); err != nil {
		t.Fatalf("second SaveLayout failed: %v", err)
	}
	again, err := s.LoadLayout(v.VariantID)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if !got.Equal(again) {
		t.Errorf("second save did not round trip:\nsaved:  %s\nloaded: %s", got.Canonical(), again.Canonical())
	}
}

func TestLayout_UnknownVariant(t *testing.T) {
	s := attachedStore(t)

	if _, err := s.LoadLayout("no-such-variant"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	layout := types.NewLayout("no-such-variant", []string{"experience"})
	if err := s.SaveLayout(layout); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLayout_DeleteEntryLeavesPlacement(t *testing.T) {
	s := attachedStore(t)

	entry, err := s.CreateEntry(types.CategoryExperience, map[string]types.FieldValue{
		"role": types.Text("Engineer"),
	}, nil)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	v, err := s.CreateVariant("lazy", nil, []string{"experience"})
	if err != nil {
		t.Fatalf("CreateVariant failed: %v", err)
	}

	layout, _ := s.LoadLayout(v.VariantID)
	if err := layout.Place(entry.EntryID, "experience", 0); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := s.SaveLayout(layout); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}

	// Deleting the entry must not rewrite stored layouts; the dangling
	// reference stays until the next explicit layout save.
	if err := s.DeleteEntry(entry.EntryID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	got, err := s.LoadLayout(v.VariantID)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if len(got.Sections[0].EntryIDs) != 1 || got.Sections[0].EntryIDs[0] != entry.EntryID {
		t.Errorf("expected dangling reference to remain, got %v", got.Sections[0].EntryIDs)
	}
}

func TestLayout_Clear(t *testing.T) {
	s := attachedStore(t)

	v, err := s.CreateVariant("clear-test", nil, []string{"experience"})
	if err != nil {
		t.Fatalf("CreateVariant failed: %v", err)
	}
	layout, _ := s.LoadLayout(v.VariantID)
	layout.Sections[0].EntryIDs = []string{"e1", "e2"}
	if err := s.SaveLayout(layout); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}

	if err := s.ClearLayout(v.VariantID); err != nil {
		t.Fatalf("ClearLayout failed: %v", err)
	}
	got, _ := s.LoadLayout(v.VariantID)
	if !got.Empty() {
		t.Errorf("expected empty layout after clear, got %s", got.Canonical())
	}
	if len(got.Sections) != 1 || got.Sections[0].SectionID != "experience" {
		t.Errorf("expected section order preserved, got %+v", got.Sections)
	}
}

func TestProfile_Singleton(t *testing.T) {
	s := attachedStore(t)

	// First read auto-creates an empty profile.
	p, err := s.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Personal.FullName != "" {
		t.Errorf("expected empty default profile, got %+v", p)
	}

	p.Personal.FullName = "Ada Lovelace"
	p.Links.Email = "ada@example.com"
	if err := s.PutProfile(p); err != nil {
		t.Fatalf("PutProfile failed: %v", err)
	}

	got, err := s.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.Personal.FullName != "Ada Lovelace" || got.Links.Email != "ada@example.com" {
		t.Errorf("profile did not round trip: %+v", got)
	}

	// A second write replaces the same row.
	got.Personal.FullName = "Ada King"
	if err := s.PutProfile(got); err != nil {
		t.Fatalf("second PutProfile failed: %v", err)
	}
	again, _ := s.GetProfile()
	if again.Personal.FullName != "Ada King" {
		t.Errorf("expected replaced profile, got %+v", again)
	}
}
