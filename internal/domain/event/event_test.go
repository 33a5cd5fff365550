package event

import "testing"

func TestResolve_SynonymsAgree(t *testing.T) {
	r := NewResolver()

	a, ok := r.Resolve("200m")
	if !ok {
		t.Fatal("expected 200m to resolve")
	}
	b, ok := r.Resolve("200 metros")
	if !ok {
		t.Fatal("expected '200 metros' to resolve")
	}
	if a != b {
		t.Errorf("200m resolved to %q but '200 metros' to %q", a, b)
	}
}

func TestResolve_CanonicalFormat(t *testing.T) {
	r := NewResolver()

	got, ok := r.Resolve("100 metros lisos")
	if !ok {
		t.Fatal("expected '100 metros lisos' to resolve")
	}
	// Dots removed and lower-cased, matching the normalized event column.
	if got != "100 ml masculino" {
		t.Errorf("canonical id = %q, want %q", got, "100 ml masculino")
	}
}

func TestResolve_AccentInsensitive(t *testing.T) {
	r := NewResolver()

	plain, _ := r.Resolve("100 metros")
	accented, ok := r.Resolve("100 MÉTROS")
	if !ok {
		t.Fatal("expected accented label to resolve")
	}
	if plain != accented {
		t.Errorf("accented label resolved to %q, want %q", accented, plain)
	}
}

func TestResolve_Miss(t *testing.T) {
	r := NewResolver()

	if _, ok := r.Resolve("salto de altura"); ok {
		t.Error("expected unmapped event to miss")
	}
}

// Distinct labels must not shadow each other: the source data once mapped
// "1500 metros lisos" to two different distances.
func TestSynonyms_NoDuplicateLabels(t *testing.T) {
	seen := make(map[string]string, len(Synonyms))
	for _, s := range Synonyms {
		if prev, ok := seen[s.Label]; ok {
			t.Errorf("label %q maps to both %q and %q", s.Label, prev, s.Canonical)
		}
		seen[s.Label] = s.Canonical
	}
}
