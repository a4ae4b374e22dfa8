package types

import "testing"

func TestRoleBeforeSaveFacilitatorFlag(t *testing.T) {
	cases := []struct {
		title string
		want  bool
	}{
		{"Facilitator", true},
		{"facilitator", true},
		{"  FACILITATOR  ", true},
		{"Student", false},
		{"Facilitators", false},
	}
	for _, tc := range cases {
		r := &Role{Title: tc.title}
		if err := r.BeforeSave(nil); err != nil {
			t.Fatalf("BeforeSave(%q): %v", tc.title, err)
		}
		if r.IsFacilitator != tc.want {
			t.Fatalf("IsFacilitator for %q = %v, want %v", tc.title, r.IsFacilitator, tc.want)
		}
	}
}

func TestPersonDisplayString(t *testing.T) {
	year := 2025
	p := &Person{
		User:           &User{FirstName: "Ada", LastName: "Chen", Username: "achen"},
		Role:           &Role{Title: "Student"},
		GraduatingYear: &year,
	}
	if got, want := p.DisplayString(), "Ada Chen (Student, Graduating: 2025)"; got != want {
		t.Fatalf("DisplayString() = %q, want %q", got, want)
	}

	p.Role = nil
	p.GraduatingYear = nil
	if got, want := p.DisplayString(), "Ada Chen (No Role)"; got != want {
		t.Fatalf("DisplayString() without role = %q, want %q", got, want)
	}
}
