package kepler

import (
	"math"
	"sync"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestOrbitAtEpoch(t *testing.T) {
	o := NewOrbit(leoElements())
	an := o.Anomaly(testEpoch)
	if !scalar.EqualWithinAbs(an.TrueAnomaly, 0, 1e-5) {
		t.Fatalf("ν=%f at epoch", an.TrueAnomaly)
	}
	if an.Regime != Elliptical || !an.Solution.Converged {
		t.Fatalf("unexpected anomaly %+v", an)
	}
	R := o.Position(testEpoch)
	if !R.EqualApprox(NewVector3(6.3e6, 0, 0), 1e-6) {
		t.Fatalf("R=%s at periapsis", R)
	}
	if !scalar.EqualWithinRel(R.Norm(), o.Periapsis(), 1e-12) {
		t.Fatalf("|R|=%f rP=%f", R.Norm(), o.Periapsis())
	}
}

func TestOrbitHalfPeriod(t *testing.T) {
	el := leoElements()
	o := NewOrbit(el)
	dt := testEpoch.Add(el.Period / 2)
	ν := o.TrueAnomaly(dt)
	if !scalar.EqualWithinAbs(ν, math.Pi, 1e-2) {
		t.Fatalf("ν=%f at half period", ν)
	}
	if r := o.Position(dt).Norm(); !scalar.EqualWithinRel(r, 7.7e6, 1e-5) {
		t.Fatalf("r=%f at half period", r)
	}
	if !scalar.EqualWithinRel(o.Apoapsis(), 7.7e6, 1e-12) {
		t.Fatalf("rA=%f", o.Apoapsis())
	}
}

func TestOrbitPeriodicity(t *testing.T) {
	el := leoElements()
	el.MeanAnomaly = 1.3
	el.RAAN = Deg2rad(227.89)
	el.ArgPeriapsis = Deg2rad(53.38)
	el.Inclination = Deg2rad(87.87)
	o := NewOrbit(el)
	R0 := o.Position(testEpoch)
	for _, k := range []int{-1000, -3, -2, -1, 0, 1, 2, 3, 1000} {
		dt := testEpoch.Add(time.Duration(k) * el.Period)
		if R := o.Position(dt); !R.EqualApprox(R0, 1e-9) {
			t.Fatalf("k=%d: R=%s != R0=%s", k, R, R0)
		}
	}
	// Any instant, not only the epoch, repeats every period.
	for offset := -3 * time.Hour; offset < 3*time.Hour; offset += 7*time.Minute + 13*time.Second {
		dt := testEpoch.Add(offset)
		R := o.Position(dt)
		for _, k := range []int{-2, -1, 1, 5} {
			if Rk := o.Position(dt.Add(time.Duration(k) * el.Period)); !Rk.EqualApprox(R, 1e-9) {
				t.Fatalf("offset=%s k=%d: R=%s != %s", offset, k, Rk, R)
			}
		}
	}
}

func TestOrbitTrueAnomalyRange(t *testing.T) {
	for _, e := range []float64{0, 0.1, 0.5, 0.8} {
		for _, M0 := range []float64{0, 1, 4, 2 * math.Pi} {
			el := leoElements()
			el.Eccentricity = e
			el.MeanAnomaly = M0
			o := NewOrbit(el)
			for offset := -48 * time.Hour; offset < 48*time.Hour; offset += 17 * time.Minute {
				ν := o.TrueAnomaly(testEpoch.Add(offset))
				if ν < 0 || ν >= 2*math.Pi {
					t.Fatalf("e=%f M0=%f offset=%s: ν=%f", e, M0, offset, ν)
				}
			}
		}
	}
}

func TestOrbitKeplerRoundTrip(t *testing.T) {
	el := leoElements()
	el.Eccentricity = 0.3
	el.MeanAnomaly = 0.7
	el.Period = 0 // Keep the mean anomaly a plain linear function of time.
	o := NewOrbit(el)
	for s := 0; s < 5000; s += 37 {
		an := o.Anomaly(testEpoch.Add(time.Duration(s) * time.Second))
		expM := MeanAnomalyAtTime(el.MeanAnomaly, el.MeanMotion, float64(s))
		if M := MeanAnomalyFromEccentricAnomaly(el.Eccentricity, an.Solution.Anomaly); !scalar.EqualWithinAbs(M, expM, 1e-5) {
			t.Fatalf("t=%ds: M=%f expected %f", s, M, expM)
		}
	}
}

func TestOrbitZeroPeriod(t *testing.T) {
	el := leoElements()
	el.Period = 0
	o := NewOrbit(el)
	for _, s := range []float64{-86400, -100, 0, 100, 86400 * 365} {
		dt := testEpoch.Add(time.Duration(s) * time.Second)
		E := EccentricAnomaly(el.Eccentricity, MeanAnomalyAtTime(el.MeanAnomaly, el.MeanMotion, s))
		exp := TrueAnomalyFromEccentricAnomaly(el.Eccentricity, E.Anomaly)
		if ν := o.TrueAnomaly(dt); ν != exp {
			t.Fatalf("t=%fs: ν=%f expected %f", s, ν, exp)
		}
	}
}

func TestOrbitSubSecondTruncation(t *testing.T) {
	el := leoElements()
	el.MeanAnomaly = 2
	o := NewOrbit(el)
	ν0 := o.TrueAnomaly(testEpoch.Add(10 * time.Second))
	for _, ms := range []time.Duration{1, 250, 999} {
		if ν := o.TrueAnomaly(testEpoch.Add(10*time.Second + ms*time.Millisecond)); ν != ν0 {
			t.Fatalf("+%dms: ν=%f != %f", ms, ν, ν0)
		}
	}
	if o.TrueAnomaly(testEpoch.Add(11*time.Second)) == ν0 {
		t.Fatal("whole seconds must move the body")
	}
}

func TestOrbitHyperbolic(t *testing.T) {
	el := Elements{
		Epoch:         testEpoch,
		Eccentricity:  2,
		MeanMotion:    1e-3,
		SemiMajorAxis: 7e6,
		Inclination:   Deg2rad(30),
	}
	o := NewOrbit(el)
	if o.Regime() != Hyperbolic {
		t.Fatal("e=2 is hyperbolic")
	}
	if R := o.Position(testEpoch); !R.EqualApprox(NewVector3(7e6, 0, 0), 1e-9) {
		t.Fatalf("R=%s at periapsis", R)
	}
	if !math.IsInf(o.Apoapsis(), 1) {
		t.Fatal("hyperbolic apoapsis should be infinite")
	}
	νInf := math.Acos(-1 / el.Eccentricity)
	prevν := 0.0
	for s := 60; s < 4800; s += 60 {
		δ := time.Duration(s) * time.Second
		after := o.Anomaly(testEpoch.Add(δ))
		before := o.Anomaly(testEpoch.Add(-δ))
		if !after.Solution.Converged || !before.Solution.Converged {
			t.Fatalf("t=±%ds did not converge", s)
		}
		if after.TrueAnomaly <= prevν || after.TrueAnomaly >= νInf {
			t.Fatalf("t=%ds: ν=%f (prev %f, asymptote %f)", s, after.TrueAnomaly, prevν, νInf)
		}
		if !scalar.EqualWithinAbs(before.TrueAnomaly, -after.TrueAnomaly, 1e-9) {
			t.Fatalf("t=±%ds: ν=%f and %f are not symmetric", s, before.TrueAnomaly, after.TrueAnomaly)
		}
		rA := o.Position(testEpoch.Add(δ)).Norm()
		rB := o.Position(testEpoch.Add(-δ)).Norm()
		if !scalar.EqualWithinRel(rA, rB, 1e-9) || rA <= o.Periapsis() {
			t.Fatalf("t=±%ds: r=%f and %f (rP=%f)", s, rA, rB, o.Periapsis())
		}
		prevν = after.TrueAnomaly
	}
	// The semi major axis is a magnitude.
	el.SemiMajorAxis = -el.SemiMajorAxis
	neg := NewOrbit(el)
	dt := testEpoch.Add(42 * time.Minute)
	if !neg.Position(dt).EqualApprox(o.Position(dt), 1e-12) {
		t.Fatal("negative semi major axis changed the position")
	}
}

func TestOrbitPerifocal(t *testing.T) {
	el := leoElements()
	el.Eccentricity = 0.4
	el.RAAN = 1.1
	el.ArgPeriapsis = 2.2
	el.Inclination = 0.3
	o := NewOrbit(el)
	for offset := time.Duration(0); offset < el.Period; offset += 5 * time.Minute {
		dt := testEpoch.Add(offset)
		P := o.Perifocal(dt)
		if P.Z != 0 {
			t.Fatalf("perifocal position out of plane: %s", P)
		}
		if R := PQW2Ref(el.Inclination, el.ArgPeriapsis, el.RAAN, P); !R.EqualApprox(o.Position(dt), 1e-6) {
			t.Fatalf("offset=%s: PQW2Ref=%s Position=%s", offset, R, o.Position(dt))
		}
	}
}

func TestOrbitOrientation(t *testing.T) {
	el := leoElements()
	el.Eccentricity = 0
	// Polar orbit with the node on the Y axis: a quarter of an orbit after the
	// node, the body is above the north pole.
	el.RAAN = math.Pi / 2
	el.Inclination = math.Pi / 2
	o := NewOrbit(el)
	if R := o.PositionAt(0); !R.EqualApprox(NewVector3(0, 7e6, 0), 1e-9) {
		t.Fatalf("R=%s at the node", R)
	}
	if R := o.PositionAt(math.Pi / 2); !R.EqualApprox(NewVector3(0, 0, 7e6), 1e-9) {
		t.Fatalf("R=%s at the pole", R)
	}
}

func TestOrbitConcurrentQueries(t *testing.T) {
	el := leoElements()
	el.MeanAnomaly = 0.5
	o := NewOrbit(el)
	exp := make([]Vector3, 64)
	for i := range exp {
		exp[i] = o.Position(testEpoch.Add(time.Duration(i) * time.Minute))
	}
	var wg sync.WaitGroup
	errs := make(chan int, len(exp))
	for i := range exp {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if o.Position(testEpoch.Add(time.Duration(i)*time.Minute)) != exp[i] {
				errs <- i
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for i := range errs {
		t.Fatalf("query %d differs when run concurrently", i)
	}
	if o.Elements() != el {
		t.Fatal("queries mutated the elements")
	}
}

func TestFoldPeriod(t *testing.T) {
	T := 90 * time.Minute
	for _, tc := range []struct {
		Δt, period, exp time.Duration
	}{
		{0, T, 0},
		{T - 1, T, T - 1},
		{T, T, 0},
		{T + time.Second, T, time.Second},
		{1000*T + 5*time.Second, T, 5 * time.Second},
		{-time.Second, T, T - time.Second},
		{-T, T, 0},
		{-1000*T - 5*time.Second, T, T - 5*time.Second},
		{-T - 5*time.Second, -T, T - 5*time.Second},
		{12345 * time.Hour, 0, 12345 * time.Hour},
		{-12345 * time.Hour, 0, -12345 * time.Hour},
	} {
		if got := foldPeriod(tc.Δt, tc.period); got != tc.exp {
			t.Fatalf("foldPeriod(%s, %s)=%s expected %s", tc.Δt, tc.period, got, tc.exp)
		}
	}
}
