package common

import (
	"math/big"
	"testing"
)

func TestFormatUnits(t *testing.T) {
	cases := []struct {
		value    string
		decimals uint8
		want     string
	}{
		{"0", 18, "0"},
		{"1000000000000000000", 18, "1"},
		{"1500000000000000000", 18, "1.5"},
		{"10000000000000000", 18, "0.01"},
		{"1", 18, "0.000000000000000001"},
		{"25000000", 6, "25"},
		{"10500000", 6, "10.5"},
		{"123", 0, "123"},
	}

	for _, c := range cases {
		v, ok := new(big.Int).SetString(c.value, 10)
		if !ok {
			t.Fatalf("bad test value %q", c.value)
		}
		if got := FormatUnits(v, c.decimals); got != c.want {
			t.Errorf("FormatUnits(%s, %d) = %q, want %q", c.value, c.decimals, got, c.want)
		}
	}
}

func TestParseUnits(t *testing.T) {
	cases := []struct {
		in       string
		decimals uint8
		want     string
		wantErr  bool
	}{
		{"1", 18, "1000000000000000000", false},
		{"1.5", 18, "1500000000000000000", false},
		{"0.000000000000000001", 18, "1", false},
		{"10", 6, "10000000", false},
		{"10.", 6, "10000000", false},
		{".5", 6, "500000", false},
		{"10.1234567", 6, "10123456", false}, // extra precision truncated
		{"", 18, "", true},
		{"-1", 18, "", true},
		{"1.2.3", 18, "", true},
		{"abc", 18, "", true},
	}

	for _, c := range cases {
		got, err := ParseUnits(c.in, c.decimals)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseUnits(%q) expected error, got %s", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseUnits(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got.String() != c.want {
			t.Errorf("ParseUnits(%q, %d) = %s, want %s", c.in, c.decimals, got, c.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "0.5", "123456.789", "0.000001"} {
		v, err := ParseUnits(s, 6)
		if err != nil {
			t.Fatalf("ParseUnits(%q): %v", s, err)
		}
		if got := FormatUnits(v, 6); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestCompareAmounts(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"5", "10", -1},
		{"10", "10", 0},
		{"10.000001", "10", 1},
		{"0.5", "0.50", 0},
	}
	for _, c := range cases {
		got, err := CompareAmounts(c.a, c.b, 6)
		if err != nil {
			t.Fatalf("CompareAmounts(%q, %q): %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("CompareAmounts(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	mixed := "0x31C3D3de371e155b7dacEd91Cf1C2C675964Af30"
	lower := "0x31c3d3de371e155b7daced91cf1c2c675964af30"

	got, err := NormalizeAddress(mixed)
	if err != nil {
		t.Fatalf("NormalizeAddress(%q): %v", mixed, err)
	}
	if got != lower {
		t.Errorf("NormalizeAddress(%q) = %q, want %q", mixed, got, lower)
	}

	for _, bad := range []string{"", "0x123", "31c3d3de371e155b7daced91cf1c2c675964af30", "0xZZc3d3de371e155b7daced91cf1c2c675964af30"} {
		if _, err := NormalizeAddress(bad); err == nil {
			t.Errorf("NormalizeAddress(%q) expected error", bad)
		}
	}
}

func TestSameAddress(t *testing.T) {
	a := "0x31C3D3de371e155b7dacEd91Cf1C2C675964Af30"
	b := "0x31c3d3de371e155b7daced91cf1c2c675964af30"
	if !SameAddress(a, b) {
		t.Errorf("SameAddress(%q, %q) = false, want true", a, b)
	}
	if SameAddress(a, ZeroAddress) {
		t.Error("distinct addresses compared equal")
	}
	if SameAddress("garbage", "garbage") {
		t.Error("malformed addresses must never compare equal")
	}
}

func TestIsZeroAddress(t *testing.T) {
	if !IsZeroAddress(ZeroAddress) {
		t.Error("zero address not detected")
	}
	if IsZeroAddress("0x31c3d3de371e155b7daced91cf1c2c675964af30") {
		t.Error("non-zero address reported zero")
	}
}
