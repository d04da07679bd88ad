package orbit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestInterpolatedStatesRoundTrip(t *testing.T) {
	c := newEarthOrbiter(t, Cartesian{vec(-4.5e6, 4.5e6, 0), vec(0, 4000, 0)})
	epoch := time.Date(2017, 10, 29, 0, 0, 0, 0, time.UTC)
	states, err := Ephemerides(c, epoch, 0, 3600, 60)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 61 {
		t.Fatalf("expected 61 states, got %d", len(states))
	}
	if !states[0].DT().Equal(epoch) && states[0].DT().Sub(epoch).Abs() > time.Millisecond {
		t.Fatalf("first state at %s instead of %s", states[0].DT(), epoch)
	}
	if !scalar.EqualWithinAbs(states[60].JD-states[0].JD, 1/24., 1e-9) {
		t.Fatal("last state should be one hour after the first")
	}
	var buf bytes.Buffer
	if err := WriteInterpolatedStates(&buf, states, epoch); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "# Creation date (UTC)") || !strings.Contains(buf.String(), "# Simulation time end (UTC)") {
		t.Fatalf("invalid header or footer:\n%s", buf.String())
	}
	parsed, err := ParseInterpolatedStates(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != len(states) {
		t.Fatalf("parsed %d states instead of %d", len(parsed), len(states))
	}
	for i, state := range parsed {
		if !scalar.EqualWithinAbs(state.JD, states[i].JD, 1e-6) {
			t.Fatalf("#%d: JD %f != %f", i, state.JD, states[i].JD)
		}
		// Six decimals of km and km/s.
		if !vectorsEqual(state.State.Position, states[i].State.Position, 1e-3) || !vectorsEqual(state.State.Velocity, states[i].State.Velocity, 1e-3) {
			t.Fatalf("#%d: %s != %s", i, state.State, states[i].State)
		}
	}
	if _, err := ParseInterpolatedStates(strings.NewReader("2458055.5 1 2 3 4 5 x")); err == nil {
		t.Fatal("invalid float should fail")
	}
	if _, err := Ephemerides(c, epoch, 10, 0, 60); err == nil {
		t.Fatal("end before start should fail")
	}
}

func TestEphemeridesBounds(t *testing.T) {
	c := newEarthOrbiter(t, Cartesian{vec(-4.5e6, 4.5e6, 0), vec(0, 4000, 0)})
	epoch := time.Date(2017, 10, 29, 0, 0, 0, 0, time.UTC)
	for _, sampling := range [][3]float64{
		{0, 1e12, 1e-9},
		{0, math.Inf(1), 60},
		{0, 3600, math.NaN()},
		{0, 3600, 1e-6},
	} {
		states, err := Ephemerides(c, epoch, sampling[0], sampling[1], sampling[2])
		if err == nil {
			t.Fatalf("%v: sampling should fail", sampling)
		}
		if states != nil {
			t.Fatalf("%v: no state should be returned", sampling)
		}
		if sampling[2] != 60 && !math.IsNaN(sampling[2]) && !errors.Is(err, ErrTooManyEphemerides) {
			t.Fatalf("%v: expected ErrTooManyEphemerides, got %v", sampling, err)
		}
	}
	// One state
	states, err := Ephemerides(c, epoch, 120, 120, 60)
	if err != nil || len(states) != 1 {
		t.Fatalf("expected a single state, got %d (%v)", len(states), err)
	}
}

func TestWriteCSV(t *testing.T) {
	states := []Ephemeris{
		{2458055.5, Cartesian{vec(-4.5e6, 4.5e6, 0), vec(0, 4000, 0)}},
		{2458055.6, Cartesian{vec(7e6, 0, 0), vec(1000, 0, 0)}},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, states, earthμ); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 || records[0][0] != "jd" {
		t.Fatalf("invalid CSV %v", records)
	}
	for _, tc := range []struct {
		col int
		exp float64
	}{{7, 0.8815756813943086}, {9, 180}, {10, 0}} {
		val, err := strconv.ParseFloat(records[1][tc.col], 64)
		if err != nil {
			t.Fatal(err)
		}
		if !scalar.EqualWithinAbs(val, tc.exp, 1e-9) {
			t.Fatalf("column %s: %f != %f", records[0][tc.col], val, tc.exp)
		}
	}
	if records[2][7] != "" {
		t.Fatal("radial orbits have no elements")
	}
}

func TestCatalog(t *testing.T) {
	states := []Ephemeris{{2458055.5, ZeroCartesian()}, {2458058.0, ZeroCartesian()}}
	cat, err := NewCatalog("probe", "Earth", "prop-probe.xyzv", states)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCatalog(&buf, cat); err != nil {
		t.Fatal(err)
	}
	var back Catalog
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Name != "probe" || back.Version != "1.0" || len(back.Items) != 1 || back.Items[0].Center != "Earth" {
		t.Fatalf("invalid catalog %s", buf.String())
	}
	if back.Items[0].Plot.Duration != "3 d" {
		t.Fatalf("invalid duration %s", back.Items[0].Plot.Duration)
	}
	if _, err := NewCatalog("probe", "Earth", "prop-probe.csv", states); err == nil {
		t.Fatal("only xyzv sources are supported")
	}
	if _, err := NewCatalog("probe", "Earth", "prop-probe.xyzv", nil); err == nil {
		t.Fatal("empty catalog should fail")
	}
}
