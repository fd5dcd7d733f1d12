package colour

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
)

func TestSensitivityThreshold(t *testing.T) {
	want := map[Sensitivity]int{VeryLow: 10, Low: 20, Medium: 30, High: 40, VeryHigh: 50}
	for s, threshold := range want {
		if got := s.Threshold(); got != threshold {
			t.Errorf("%s.Threshold() = %d, want %d", s, got, threshold)
		}
	}
}

func TestParseSensitivity(t *testing.T) {
	tests := []struct {
		in      string
		want    Sensitivity
		wantErr bool
	}{
		{in: "very-low", want: VeryLow},
		{in: "Very Low", want: VeryLow},
		{in: "VERY_HIGH", want: VeryHigh},
		{in: "medium", want: Medium},
		{in: "3", want: High},
		{in: "5", wantErr: true},
		{in: "extreme", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSensitivity(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSensitivity) {
					t.Errorf("ParseSensitivity() error = %v, want ErrInvalidSensitivity", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSensitivity() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSensitivity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSensitivityFlagValue(t *testing.T) {
	var s Sensitivity
	if err := s.Set("high"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if s != High || s.String() != "high" {
		t.Errorf("after Set: %v", s)
	}
	if s.Type() != "sensitivity" {
		t.Errorf("Type() = %q", s.Type())
	}
	if err := s.Set("nope"); err == nil {
		t.Error("Set(nope) succeeded")
	}
	if s != High {
		t.Errorf("failed Set changed value to %v", s)
	}
}

func TestSensitivityInvalid(t *testing.T) {
	s := Sensitivity(9)
	if s.Valid() {
		t.Error("Sensitivity(9) reported valid")
	}
	if _, err := s.MarshalText(); !errors.Is(err, ErrInvalidSensitivity) {
		t.Errorf("MarshalText() error = %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("Threshold() on invalid sensitivity did not panic")
		}
	}()
	_ = s.Threshold()
}

func TestSensitivityFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	s := VeryLow
	fs.VarP(&s, "sensitivity", "s", "merge sensitivity")

	if err := fs.Parse([]string{"-s", "High"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s != High {
		t.Errorf("sensitivity = %v, want high", s)
	}
	if got := fs.Lookup("sensitivity").Value.Type(); got != "sensitivity" {
		t.Errorf("Type() = %q", got)
	}

	if err := fs.Parse([]string{"--sensitivity", "7"}); err == nil {
		t.Error("Parse() should reject an out of range ordinal")
	}
}
