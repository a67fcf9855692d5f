package fire

import (
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestFormatValidResult(t *testing.T) {
	t.Parallel()

	msg := Format(&CalculationResult{
		SavingsPerYear:         floatPtr(93788.0),
		NetResultAtTerminalAge: floatPtr(-5161782.0),
	})

	for _, want := range []string{"93,788 kr", "-5,161,782 kr", "Hvis du sparer", "penly.dk", "ved din alder 95"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message does not contain %q:\n%s", want, msg)
		}
	}
	if !strings.Contains(msg, ProfileURL) || !strings.Contains(msg, LoginURL) {
		t.Fatal("message must contain both call-to-action links")
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	t.Parallel()

	res := &CalculationResult{SavingsPerYear: floatPtr(1234.5), NetResultAtTerminalAge: floatPtr(0)}
	if Format(res) != Format(res) {
		t.Fatal("Format must be deterministic")
	}
}

func TestFormatFallbacks(t *testing.T) {
	t.Parallel()

	if got := Format(nil); got != MessageNoInformation {
		t.Fatalf("Format(nil) = %q", got)
	}
	if got := Format(&CalculationResult{NetResultAtTerminalAge: floatPtr(100000)}); got != MessageNotComputed {
		t.Fatalf("Format(missing opsparing_ar) = %q", got)
	}
	if got := Format(&CalculationResult{SavingsPerYear: floatPtr(100000)}); got != MessageNotComputed {
		t.Fatalf("Format(missing result) = %q", got)
	}
}

func TestFormatKroner(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{50000, "50,000"},
		{1000000, "1,000,000"},
		{-5161782, "-5,161,782"},
		{93787.6, "93,788"},
		{2.5, "2"},
		{3.5, "4"},
		{-1234.4, "-1,234"},
		{1234567890123456, "1,234,567,890,123,456"},
	}
	for _, tc := range cases {
		if got := FormatKroner(tc.in); got != tc.want {
			t.Fatalf("FormatKroner(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
