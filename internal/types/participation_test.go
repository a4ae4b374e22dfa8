package types

import "testing"

func TestFormatSchoolYears(t *testing.T) {
	p := &Participation{Years: []int{2022, 2020, 2021}}

	got := p.FormatSchoolYears()
	want := "2020-2021, 2021-2022, 2022-2023"
	if got != want {
		t.Fatalf("FormatSchoolYears() = %q, want %q", got, want)
	}

	if p.Years[0] != 2022 {
		t.Fatalf("stored years mutated: %v", p.Years)
	}
}

func TestFormatSchoolYearsEmpty(t *testing.T) {
	p := &Participation{}
	if got := p.FormatSchoolYears(); got != "" {
		t.Fatalf("FormatSchoolYears() on empty set = %q, want empty", got)
	}
}
