package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
)

type sample struct {
	Name      string  `validate:"required"`
	Threshold float64 `validate:"gte=0,lte=1"`
	Workers   int     `validate:"gte=0"`
	Mode      string  `validate:"omitempty,oneof=all subjects"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		wantErr string
	}{
		{"valid", &sample{Name: "x", Threshold: 0.5}, ""},
		{"missing name", &sample{Threshold: 0.5}, "Name: field is required"},
		{"threshold above one", &sample{Name: "x", Threshold: 1.5}, "Threshold: must not exceed 1"},
		{"threshold negative", &sample{Name: "x", Threshold: -0.1}, "Threshold: must be at least 0"},
		{"negative workers", &sample{Name: "x", Workers: -1}, "Workers: must be at least 0"},
		{"unknown mode", &sample{Name: "x", Mode: "some"}, "Mode: must be one of [all subjects]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Expected %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); !errors.Is(err, ErrNil) {
		t.Errorf("Expected ErrNil, got %v", err)
	}
}

func TestVar(t *testing.T) {
	if err := Var("threshold", 0.4, "gte=0,lte=1"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	err := Var("threshold", 2.0, "gte=0,lte=1")
	if err == nil || err.Error() != "threshold: must not exceed 1" {
		t.Errorf("Expected error naming the field, got %v", err)
	}
}

func TestConfigValidator(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := NewConfigValidator("analysis").
			Unit("hole_threshold", 0.15).
			Ordered("low", 0.3, "high", 0.7).
			NonNegative("workers", 0).
			OneOf("subset", "all", []string{"all", "subjects"}).
			Validate()
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("collects every failure", func(t *testing.T) {
		err := NewConfigValidator("analysis").
			Unit("hole_threshold", 1.2).
			Ordered("low", 0.8, "high", 0.7).
			NonNegative("workers", -2).
			Validate()
		if err == nil || !strings.Contains(err.Error(), "3 errors") {
			t.Errorf("Expected combined error, got %v", err)
		}
	})

	t.Run("NaN is out of range", func(t *testing.T) {
		err := NewConfigValidator("analysis").Unit("hole_threshold", math.NaN()).Validate()
		if err == nil {
			t.Error("Expected NaN to be rejected")
		}
	})

	t.Run("when", func(t *testing.T) {
		err := NewConfigValidator("c").
			When(false, func(cv *ConfigValidator) { cv.Unit("x", 5) }).
			When(true, func(cv *ConfigValidator) { cv.Unit("y", 5) }).
			Validate()
		if err == nil || !strings.Contains(err.Error(), "c.y") || strings.Contains(err.Error(), "c.x") {
			t.Errorf("Expected only the enabled branch to run, got %v", err)
		}
	})

	t.Run("var", func(t *testing.T) {
		err := NewConfigValidator("analysis").Var("SubsetTerms", []string{"a", ""}, "min=1,dive,required").Validate()
		if err == nil || err.Error() != "analysis.SubsetTerms: field is required" {
			t.Errorf("Expected element error under the field name, got %v", err)
		}
		if err := NewConfigValidator("analysis").Var("SubsetTerms", []string{"a"}, "min=1,dive,required").Validate(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("struct tags", func(t *testing.T) {
		err := NewConfigValidator("sample").Struct(&sample{Threshold: 0.2}).Validate()
		if err == nil || err.Error() != "sample.Name: field is required" {
			t.Errorf("Expected prefixed struct error, got %v", err)
		}
	})

	t.Run("custom", func(t *testing.T) {
		sentinel := errors.New("bad")
		err := NewConfigValidator("c").Custom("f", func() error { return sentinel }).Validate()
		if !errors.Is(err, sentinel) {
			t.Errorf("Expected wrapped sentinel, got %v", err)
		}
	})
}
