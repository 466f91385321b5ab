package sites

import "testing"

func TestRootDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://m.example.com/watch?v=1", "example.com", true},
		{"sub.foo.example.co.uk", "example.co.uk", true},
		{"example.com", "example.com", true},
		{"EXAMPLE.com/path", "example.com", true},
		{"noperiod", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := RootDomain(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("RootDomain(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatches(t *testing.T) {
	list := []string{"badsite.com", "https://games.example.org"}

	if entry, ok := Matches(list, "https://m.badsite.com/page"); !ok || entry != "badsite.com" {
		t.Fatalf("subdomain must match list entry, got (%q, %v)", entry, ok)
	}
	if _, ok := Matches(list, "https://example.org/news"); !ok {
		t.Fatal("same registrable domain must match regardless of path")
	}
	if _, ok := Matches(list, "https://goodsite.com"); ok {
		t.Fatal("unrelated domain must not match")
	}
	if _, ok := Matches(nil, "https://anything.com"); ok {
		t.Fatal("empty list must never match")
	}
}
