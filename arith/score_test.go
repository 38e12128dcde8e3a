package arith

import "testing"

func TestRevertAbsent(t *testing.T) {
	if got := Revert(Absent); got.Present {
		t.Fatalf("Revert(Absent) = %+v, want absent", got)
	}
	if got := Revert(Of(0.3)); !Equal(got, Of(0.7)) {
		t.Fatalf("Revert(0.3) = %+v, want 0.7", got)
	}
}

func TestAvgBothAbsent(t *testing.T) {
	if got := Avg(Absent, Absent); got.Present {
		t.Fatalf("Avg(absent,absent) = %+v, want absent", got)
	}
}

func TestAvgOneAbsent(t *testing.T) {
	if got := Avg(Of(0.4), Absent); !Equal(got, Of(0.4)) {
		t.Fatalf("Avg(0.4,absent) = %+v, want 0.4", got)
	}
	if got := Avg(Absent, Of(0.4)); !Equal(got, Of(0.4)) {
		t.Fatalf("Avg(absent,0.4) = %+v, want 0.4", got)
	}
}

func TestAvgBothPresent(t *testing.T) {
	got := Avg(Of(0.6), Revert(Of(0.6)))
	if !Equal(got, Of(0.5)) {
		t.Fatalf("Avg(0.6, revert(0.6)) = %+v, want 0.5", got)
	}
}

func TestMaxIgnoresAbsent(t *testing.T) {
	got := Max(Absent, Of(0.5), Of(0.6), Absent)
	if !Equal(got, Of(0.6)) {
		t.Fatalf("Max(...) = %+v, want 0.6", got)
	}
	if got := Max(Absent, Absent); got.Present {
		t.Fatalf("Max(absent,absent) = %+v, want absent", got)
	}
}

func TestMinIgnoresAbsent(t *testing.T) {
	got := Min(Absent, Of(0.5), Of(0.6))
	if !Equal(got, Of(0.5)) {
		t.Fatalf("Min(...) = %+v, want 0.5", got)
	}
	if got := Min(); got.Present {
		t.Fatalf("Min() = %+v, want absent", got)
	}
}

func TestEqualToleranceAndAbsence(t *testing.T) {
	if !Equal(Of(0.1+1e-9), Of(0.1)) {
		t.Fatalf("values within tolerance should be equal")
	}
	if Equal(Of(0.1), Absent) {
		t.Fatalf("present and absent must never be equal")
	}
	if !Equal(Absent, Absent) {
		t.Fatalf("absent must equal absent")
	}
}

func TestClamp(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		if !Clamp(v) {
			t.Fatalf("Clamp(%v) = false, want true", v)
		}
	}
	for _, v := range []float64{-0.01, 1.01} {
		if Clamp(v) {
			t.Fatalf("Clamp(%v) = true, want false", v)
		}
	}
}
