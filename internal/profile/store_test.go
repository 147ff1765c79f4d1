package profile

import (
	"errors"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func constTraits(v float64) TraitVector {
	var t TraitVector
	for i := range t {
		t[i] = v
	}
	return t
}

func TestCreateAndGetProfile(t *testing.T) {
	s := tempStore(t)

	p, err := s.CreateProfile("Ada", "1990-01-01")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if p.ProfileID == "" {
		t.Fatal("expected non-empty profile ID")
	}

	got, err := s.GetProfile(p.ProfileID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Name != "Ada" || got.Birthdate != "1990-01-01" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created_at to round-trip")
	}
}

func TestGetProfileNotFound(t *testing.T) {
	s := tempStore(t)
	_, err := s.GetProfile("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileWithoutBirthdate(t *testing.T) {
	s := tempStore(t)
	p, err := s.CreateProfile("Grace", "")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	got, err := s.GetProfile(p.ProfileID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Birthdate != "" {
		t.Fatalf("expected empty birthdate, got %q", got.Birthdate)
	}
}

func TestGetCurrentWithoutTraits(t *testing.T) {
	s := tempStore(t)
	p, _ := s.CreateProfile("Ada", "")
	_, err := s.GetCurrent(p.ProfileID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCommitTraitsChainsVersions(t *testing.T) {
	s := tempStore(t)
	p, _ := s.CreateProfile("Ada", "")

	v1, err := s.CommitTraits(p.ProfileID, constTraits(0.5), SourceQuestionnaire)
	if err != nil {
		t.Fatalf("CommitTraits v1: %v", err)
	}
	if v1.ParentID != "" {
		t.Fatalf("first version should have no parent, got %s", v1.ParentID)
	}

	traits := constTraits(0.5)
	traits[3] = 0.9
	v2, err := s.CommitTraits(p.ProfileID, traits, SourceStoryQuest)
	if err != nil {
		t.Fatalf("CommitTraits v2: %v", err)
	}
	if v2.ParentID != v1.VersionID {
		t.Fatalf("expected parent %s, got %s", v1.VersionID, v2.ParentID)
	}

	cur, err := s.GetCurrent(p.ProfileID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if cur.VersionID != v2.VersionID {
		t.Fatalf("expected active %s, got %s", v2.VersionID, cur.VersionID)
	}
	if cur.Traits[3] != 0.9 {
		t.Fatalf("expected traits[3]=0.9 after decode, got %v", cur.Traits[3])
	}
	if cur.Source != SourceStoryQuest {
		t.Fatalf("expected source story_quest, got %s", cur.Source)
	}
}

func TestCommitTraitsUnknownProfile(t *testing.T) {
	s := tempStore(t)
	_, err := s.CommitTraits("nope", constTraits(0.1), SourceManual)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRollback(t *testing.T) {
	s := tempStore(t)
	p, _ := s.CreateProfile("Ada", "")
	v1, _ := s.CommitTraits(p.ProfileID, constTraits(0.2), SourceManual)
	if _, err := s.CommitTraits(p.ProfileID, constTraits(0.8), SourceManual); err != nil {
		t.Fatalf("CommitTraits: %v", err)
	}

	if err := s.Rollback(p.ProfileID, v1.VersionID); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	cur, _ := s.GetCurrent(p.ProfileID)
	if cur.VersionID != v1.VersionID {
		t.Fatalf("expected %s after rollback, got %s", v1.VersionID, cur.VersionID)
	}
	if cur.Traits[0] != 0.2 {
		t.Fatalf("expected rolled back traits, got %v", cur.Traits[0])
	}
}

func TestRollbackRejectsForeignVersion(t *testing.T) {
	s := tempStore(t)
	a, _ := s.CreateProfile("A", "")
	b, _ := s.CreateProfile("B", "")
	if _, err := s.CommitTraits(a.ProfileID, constTraits(0.2), SourceManual); err != nil {
		t.Fatalf("CommitTraits: %v", err)
	}
	vb, _ := s.CommitTraits(b.ProfileID, constTraits(0.3), SourceManual)

	if err := s.Rollback(a.ProfileID, vb.VersionID); err == nil {
		t.Fatal("expected error rolling back to another profile's version")
	}
	if err := s.Rollback(a.ProfileID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListVersionsNewestFirst(t *testing.T) {
	s := tempStore(t)
	p, _ := s.CreateProfile("Ada", "")
	var ids []string
	for i := 0; i < 5; i++ {
		rec, err := s.CommitTraits(p.ProfileID, constTraits(float64(i)/10), SourceManual)
		if err != nil {
			t.Fatalf("CommitTraits %d: %v", i, err)
		}
		ids = append(ids, rec.VersionID)
	}

	got, err := s.ListVersions(p.ProfileID, 3)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(got))
	}
	if got[0].VersionID != ids[4] {
		t.Fatalf("expected newest %s first, got %s", ids[4], got[0].VersionID)
	}
}

func TestListProfiles(t *testing.T) {
	s := tempStore(t)
	for _, name := range []string{"A", "B", "C"} {
		if _, err := s.CreateProfile(name, ""); err != nil {
			t.Fatalf("CreateProfile: %v", err)
		}
	}
	got, err := s.ListProfiles(10)
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(got))
	}
	if got[0].Name != "C" {
		t.Fatalf("expected newest profile first, got %s", got[0].Name)
	}
}

func TestTraitEncodingRoundTrip(t *testing.T) {
	var v TraitVector
	for i := range v {
		v[i] = float64(i) * 0.031
	}
	if decodeTraits(encodeTraits(v)) != v {
		t.Fatal("encode/decode mismatch")
	}
}
