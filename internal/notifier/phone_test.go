package notifier

import "testing"

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"nepal with prefix", "9779800000001", "9779800000001"},
		{"nepal prefix with redundant zero", "97709800000001", "9779800000001"},
		{"india with prefix", "919812345678", "919812345678"},
		{"india prefix with redundant zero", "9109812345678", "919812345678"},
		{"double zero international", "009779800000001", "9779800000001"},
		{"bare leading zero defaults to nepal", "09800000001", "9779800000001"},
		{"bare nine digits after zero", "0980000001", "977980000001"},
		{"bare ten digits defaults to nepal", "9800000001", "9779800000001"},
		{"formatting stripped", "+977 980-000-0001", "9779800000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeNumber(tt.input)
			if err != nil {
				t.Fatalf("NormalizeNumber(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("NormalizeNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNumberRejectsUnknownShapes(t *testing.T) {
	bad := []string{
		"",
		"abc",
		"12345",
		"91980000000",      // india prefix with 9-digit local
		"97798000000010",   // nepal prefix with 11-digit local
		"123456789012345",  // too long, no recognized prefix
	}

	for _, input := range bad {
		if _, err := NormalizeNumber(input); err != ErrInvalidAddress {
			t.Fatalf("NormalizeNumber(%q) expected ErrInvalidAddress, got %v", input, err)
		}
	}
}

func TestIsPlaceholder(t *testing.T) {
	for _, number := range []string{"0123456789", "1234567890", "123456789", "01234567890", "012-345-6789"} {
		if !IsPlaceholder(number) {
			t.Fatalf("expected %q to be flagged as placeholder", number)
		}
	}

	for _, number := range []string{"", "9779800000001", "919812345678"} {
		if IsPlaceholder(number) {
			t.Fatalf("expected %q not to be flagged as placeholder", number)
		}
	}
}
