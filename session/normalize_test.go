package session

import "testing"

func TestNormalizeUppercasesRole(t *testing.T) {
	got := Normalize(Session{Role: " seller "})
	if got.Role != RoleSeller {
		t.Fatalf("role = %q, want %q", got.Role, RoleSeller)
	}
	if got.RoleLabel != "Seller" {
		t.Fatalf("role label = %q, want %q", got.RoleLabel, "Seller")
	}
}

func TestNormalizeFallsBackToLabel(t *testing.T) {
	got := Normalize(Session{RoleLabel: "Designer"})
	if got.Role != RoleDesigner {
		t.Fatalf("role = %q, want %q", got.Role, RoleDesigner)
	}
	if got.RoleLabel != "Designer" {
		t.Fatalf("role label = %q", got.RoleLabel)
	}
}

func TestNormalizeKeepsServerLabel(t *testing.T) {
	got := Normalize(Session{Role: "ADMIN", RoleLabel: "Administrator"})
	if got.RoleLabel != "Administrator" {
		t.Fatalf("server label must win, got %q", got.RoleLabel)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []Session{
		{},
		{Role: "buyer"},
		{Role: " ADMIN ", RoleLabel: "Administrator"},
		{RoleLabel: "Seller"},
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %+v: %+v vs %+v", in, once, twice)
		}
	}
}

func TestMergeTokensCarriesPrevious(t *testing.T) {
	prev := Session{AccessToken: "acc-1", RefreshToken: "ref-1"}
	fresh := Session{UserID: 7, Email: "a@b.com"}

	merged := MergeTokens(prev, fresh)
	if merged.AccessToken != "acc-1" || merged.RefreshToken != "ref-1" {
		t.Fatalf("tokens dropped: %+v", merged)
	}
	if merged.UserID != 7 {
		t.Fatalf("fresh payload lost: %+v", merged)
	}
}

func TestMergeTokensFreshWins(t *testing.T) {
	prev := Session{AccessToken: "acc-1", RefreshToken: "ref-1"}
	fresh := Session{AccessToken: "acc-2", RefreshToken: "ref-2"}

	merged := MergeTokens(prev, fresh)
	if merged.AccessToken != "acc-2" || merged.RefreshToken != "ref-2" {
		t.Fatalf("fresh tokens must win: %+v", merged)
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	cases := []struct {
		sess Session
		want string
	}{
		{Session{FirstName: "Ada", LastName: "Reyes"}, "Ada Reyes"},
		{Session{FirstName: "Ada"}, "Ada"},
		{Session{Username: "ada.r"}, "ada.r"},
		{Session{Email: "ada@example.com"}, "ada@example.com"},
	}
	for _, c := range cases {
		if got := c.sess.DisplayName(); got != c.want {
			t.Fatalf("display name for %+v = %q, want %q", c.sess, got, c.want)
		}
	}
}
