package persona

import "testing"

func TestResolveExplicitWins(t *testing.T) {
	r := NewRegistry()
	got := r.Resolve("coach", "mentor")
	if got.ID != "coach" {
		t.Fatalf("expected coach, got %q", got.ID)
	}
}

func TestResolvePreferenceFallback(t *testing.T) {
	r := NewRegistry()
	got := r.Resolve("", "mentor")
	if got.ID != "mentor" {
		t.Fatalf("expected mentor, got %q", got.ID)
	}
}

func TestResolveUnknownFallsToDefault(t *testing.T) {
	r := NewRegistry()
	got := r.Resolve("not-a-real-key", "")
	if got.ID != DefaultID {
		t.Fatalf("expected default, got %q", got.ID)
	}
}

func TestResolveSkipsUnknownAtEachStage(t *testing.T) {
	r := NewRegistry()
	got := r.Resolve("nope", "motivator")
	if got.ID != "motivator" {
		t.Fatalf("expected motivator, got %q", got.ID)
	}
}

func TestGetNeverFails(t *testing.T) {
	r := NewRegistry()
	got := r.Get("does-not-exist")
	if got.ID != DefaultID {
		t.Fatalf("expected default profile, got %q", got.ID)
	}
	if got.SystemPrompt == "" {
		t.Fatal("default profile has no system prompt")
	}
}

func TestGetNormalizesKey(t *testing.T) {
	r := NewRegistry()
	got := r.Get("  Mentor ")
	if got.ID != "mentor" {
		t.Fatalf("expected mentor, got %q", got.ID)
	}
}

func TestListCoversCatalog(t *testing.T) {
	r := NewRegistry()
	profiles := r.List()
	if len(profiles) != 5 {
		t.Fatalf("expected 5 profiles, got %d", len(profiles))
	}
	if profiles[0].ID != "default" {
		t.Fatalf("expected default first, got %q", profiles[0].ID)
	}
	for _, p := range profiles {
		if p.Name == "" || p.Description == "" || p.SystemPrompt == "" {
			t.Fatalf("profile %q is missing metadata", p.ID)
		}
	}
}
