package model

import "testing"

func TestNewField_LeadingDigits(t *testing.T) {
	cases := map[string]bool{
		"38.15":  true,
		"12abc":  true,
		"0":      true,
		"N/A123": false,
		"-":      false,
		"":       false,
		" 5":     false,
	}
	for in, want := range cases {
		if got := NewField(in).Numeric; got != want {
			t.Fatalf("NewField(%q).Numeric = %v, want %v", in, got, want)
		}
	}
}

func TestField_IsEmpty(t *testing.T) {
	if !NewField(EmptySentinel).IsEmpty() {
		t.Fatal("sentinel should be empty")
	}
	if NewField("38.15").IsEmpty() {
		t.Fatal("value should not be empty")
	}
}
