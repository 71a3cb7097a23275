package fuzzy

import (
	"math"
	"testing"
)

func TestNewValue_NormalizesTolerances(t *testing.T) {
	t.Parallel()

	v := NewValue(1.5, -1e-9, -4)
	if v.Value() != 1.5 {
		t.Errorf("Value() = %v, want 1.5", v.Value())
	}
	if v.MarginOfError() != 1e-9 {
		t.Errorf("MarginOfError() = %v, want 1e-9", v.MarginOfError())
	}
	if v.ULPTolerance() != 4 {
		t.Errorf("ULPTolerance() = %d, want 4", v.ULPTolerance())
	}
}

func TestValue_UsesLeftTolerance(t *testing.T) {
	t.Parallel()

	loose := NewValue(1.0, 0.5, 0)
	strict := NewValue(1.4, 0, 0)

	if !loose.Equal(strict) {
		t.Error("loose.Equal(strict) = false, want true")
	}
	if strict.Equal(loose) {
		t.Error("strict.Equal(loose) = true, want false")
	}
	if got := strict.Compare(loose); got != 1 {
		t.Errorf("strict.Compare(loose) = %d, want 1", got)
	}
	if got := loose.Compare(strict); got != 0 {
		t.Errorf("loose.Compare(strict) = %d, want 0", got)
	}
}

func TestValue_RawOperands(t *testing.T) {
	t.Parallel()

	v := NewValue(1.0, 0.5, 0)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"EqualRaw within margin", v.EqualRaw(1.4), true},
		{"EqualRaw outside margin", v.EqualRaw(1.6), false},
		{"RawEqual within margin", RawEqual(1.4, v), true},
		{"LessRaw", v.LessRaw(2.0), true},
		{"LessRaw equal", v.LessRaw(1.2), false},
		{"GreaterRaw", v.GreaterRaw(0.2), true},
		{"LessOrEqualRaw equal", v.LessOrEqualRaw(1.4), true},
		{"LessOrEqualRaw greater", v.LessOrEqualRaw(0.2), false},
		{"GreaterOrEqualRaw equal", v.GreaterOrEqualRaw(1.4), true},
		{"GreaterOrEqualRaw less", v.GreaterOrEqualRaw(2.0), false},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if got := RawCompare(2.0, v); got != 1 {
		t.Errorf("RawCompare(2, v) = %d, want 1", got)
	}
	if got := RawCompare(0.0, v); got != -1 {
		t.Errorf("RawCompare(0, v) = %d, want -1", got)
	}
	if got := RawCompare(1.3, v); got != 0 {
		t.Errorf("RawCompare(1.3, v) = %d, want 0", got)
	}
}

func TestValue_Ordering(t *testing.T) {
	t.Parallel()

	one := NewValue(1.0, 1e-9, 4)
	two := NewValue(2.0, 1e-9, 4)
	nearOne := NewValue(1.0+1e-12, 1e-9, 4)

	if !one.Less(two) || one.Less(nearOne) {
		t.Error("Less is inconsistent")
	}
	if !one.LessOrEqual(nearOne) || !one.LessOrEqual(two) || two.LessOrEqual(one) {
		t.Error("LessOrEqual is inconsistent")
	}
	if !two.Greater(one) || nearOne.Greater(one) {
		t.Error("Greater is inconsistent")
	}
	if !nearOne.GreaterOrEqual(one) || one.GreaterOrEqual(two) {
		t.Error("GreaterOrEqual is inconsistent")
	}
}

func TestValue_HashIsSentinel(t *testing.T) {
	t.Parallel()

	values := []Value[float64]{
		NewValue(0.0, 0, 0),
		NewValue(1.0, 1e-9, 4),
		NewValue(-1e300, 1, 1000),
		NewValue(math.NaN(), 0, 0),
	}
	for _, p := range values {
		for _, q := range values {
			if p.Hash() != q.Hash() {
				t.Errorf("Hash(%v) = %d, Hash(%v) = %d, want identical", p, p.Hash(), q, q.Hash())
			}
		}
	}
}

func TestValue_Conversions(t *testing.T) {
	t.Parallel()

	v := NewValue(-2.75, 0, 0)
	if v.Float64() != -2.75 {
		t.Errorf("Float64() = %v, want -2.75", v.Float64())
	}
	if v.Float32() != -2.75 {
		t.Errorf("Float32() = %v, want -2.75", v.Float32())
	}
	if v.Int() != -2 {
		t.Errorf("Int() = %d, want -2", v.Int())
	}
	if v.Int64() != -2 {
		t.Errorf("Int64() = %d, want -2", v.Int64())
	}
}

func TestValue_Bool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value Value[float64]
		want  bool
	}{
		{"zero", NewValue(0.0, 0, 0), false},
		{"negative zero", NewValue(math.Copysign(0, -1), 0, 0), false},
		{"within margin of zero", NewValue(1e-12, 1e-9, 0), false},
		{"outside margin of zero", NewValue(1e-6, 1e-9, 0), true},
		{"one", NewValue(1.0, 1e-9, 4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.value.Bool(); got != tt.want {
				t.Errorf("Bool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	if got, want := NewValue(1.5, 0.25, 4).String(), "1.5 ±0.25 (4 ulp)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := NewValue[float32](0.1, 0, 0).String(), "0.1 ±0 (0 ulp)"; got != want {
		t.Errorf("float32 String() = %q, want %q", got, want)
	}
}

func TestValue_HashedConversions(t *testing.T) {
	t.Parallel()

	v := NewValue(3.0, 1e-6, 7)
	h := ToHashed(v, 0)
	if h.Value() != 3.0 || h.MarginOfError() != 1e-6 || h.ULPTolerance() != 7 || h.BoundaryScale() != 1 {
		t.Errorf("ToHashed() = %v", h)
	}
	if back := FromHashed(h); back != v {
		t.Errorf("FromHashed(ToHashed(v)) = %v, want %v", back, v)
	}
}
