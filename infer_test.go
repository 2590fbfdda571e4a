package croissant_test

import (
	"testing"

	croissant "github.com/reoring/croissant"
)

func TestInferType(t *testing.T) {
	cases := []struct {
		in   string
		want croissant.DataType
	}{
		{"", croissant.Text},
		{"   ", croissant.Text},
		{"true", croissant.Boolean},
		{"False", croissant.Boolean},
		{" TRUE ", croissant.Boolean},
		{"42", croissant.Integer},
		{"-3", croissant.Integer},
		{"+7", croissant.Integer},
		{"123456789012345678901234567890", croissant.Integer},
		{"3.0", croissant.Float},
		{"3.", croissant.Float},
		{".5", croissant.Float},
		{"3.14e2", croissant.Float},
		{"-1E-3", croissant.Float},
		{"1e999", croissant.Float},
		{"inf", croissant.Float},
		{"NaN", croissant.Float},
		{"abc", croissant.Text},
		{"1,000", croissant.Text},
		{"1_000", croissant.Text},
		{"0x1p-2", croissant.Text},
		{"yes", croissant.Text},
		{"12abc", croissant.Text},
	}
	for _, c := range cases {
		if got := croissant.InferType(c.in); got != c.want {
			t.Errorf("InferType(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestInferType_Deterministic(t *testing.T) {
	for _, s := range []string{"", "1", "1.5", "true", "x"} {
		a, b := croissant.InferType(s), croissant.InferType(s)
		if a != b {
			t.Fatalf("InferType(%q) not deterministic: %s vs %s", s, a, b)
		}
	}
	if len(croissant.DataTypes()) != 4 {
		t.Fatalf("expected four data types")
	}
}
