package orbit

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"gonum.org/v1/gonum/spatial/r3"
)

// Ephemeris is a state at a given TDB Julian date.
type Ephemeris struct {
	JD    float64
	State Cartesian
}

// DT returns the date of this ephemeris.
func (e Ephemeris) DT() time.Time {
	return julian.JDToTime(e.JD)
}

// maxEphemerides bounds the number of states Ephemerides returns.
const maxEphemerides = 1 << 24

// ErrTooManyEphemerides is returned when a sampling would exceed maxEphemerides states.
var ErrTooManyEphemerides = errors.New("too many ephemerides")

// Ephemerides samples the trajectory of c every step seconds from start to end
// (inclusive), both relative to the time origin of c which corresponds to epoch.
func Ephemerides(c *CenterOfMass, epoch time.Time, start, end, step float64) ([]Ephemeris, error) {
	if step <= 0 || end < start {
		return nil, fmt.Errorf("invalid sampling from %f to %f every %f", start, end, step)
	}
	count := math.Floor((end-start)/step) + 1
	if math.IsNaN(count) || math.IsInf(count, 0) || count > maxEphemerides {
		return nil, fmt.Errorf("%w: %g states from %f to %f every %f", ErrTooManyEphemerides, count, start, end, step)
	}
	jd0 := julian.TimeToJD(epoch)
	n := int(count)
	states := make([]Ephemeris, 0, n)
	for i := 0; i < n; i++ {
		t := start + float64(i)*step
		state, err := c.CoordinatesAt(t)
		if err != nil {
			return states, fmt.Errorf("t=%f: %w", t, err)
		}
		states = append(states, Ephemeris{JD: jd0 + t/86400, State: state})
	}
	return states, nil
}

// ToText converts to text for written output, in km and km/s.
func (e Ephemeris) ToText() string {
	r := r3.Scale(1e-3, e.State.Position)
	v := r3.Scale(1e-3, e.State.Velocity)
	return fmt.Sprintf("%f %f %f %f %f %f %f", e.JD, r.X, r.Y, r.Z, v.X, v.Y, v.Z)
}

// FromText reads one xyzv record of seven fields, in km and km/s.
func (e *Ephemeris) FromText(record []string) error {
	if len(record) != 7 {
		return fmt.Errorf("expected 7 fields, got %d", len(record))
	}
	var vals [7]float64
	for i, field := range record {
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return err
		}
		vals[i] = val
	}
	e.JD = vals[0]
	e.State.Position = r3.Scale(1e3, r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]})
	e.State.Velocity = r3.Scale(1e3, r3.Vec{X: vals[4], Y: vals[5], Z: vals[6]})
	return nil
}

// WriteInterpolatedStates writes the states in the Cosmographia xyzv format.
func WriteInterpolatedStates(w io.Writer, states []Ephemeris, start time.Time) error {
	if _, err := fmt.Fprintf(w, `# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a TDB Julian date
#   Position in km
#   Velocity in km/sec
#   Simulation time start (UTC): %s`, time.Now().UTC(), start.UTC()); err != nil {
		return err
	}
	for _, state := range states {
		if _, err := io.WriteString(w, "\n"+state.ToText()); err != nil {
			return err
		}
	}
	if len(states) > 0 {
		end := states[len(states)-1].DT()
		if _, err := fmt.Fprintf(w, "\n# Simulation time end (UTC): %s\n", end.UTC()); err != nil {
			return err
		}
	}
	return nil
}

// ParseInterpolatedStates reads states in the Cosmographia xyzv format.
func ParseInterpolatedStates(r io.Reader) ([]Ephemeris, error) {
	states := []Ephemeris{}
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.Comment = '#'
	for {
		record, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		state := Ephemeris{}
		if err := state.FromText(record); err != nil {
			return nil, fmt.Errorf("line %d: %w", len(states)+1, err)
		}
		states = append(states, state)
	}
	return states, nil
}

// WriteCSV writes the states along with their osculating elements around a
// body of gravitational parameter μ. Angles are in degrees.
func WriteCSV(w io.Writer, states []Ephemeris, μ float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"jd", "x", "y", "z", "vx", "vy", "vz", "e", "alpha", "i", "Omega", "omega"}); err != nil {
		return err
	}
	ff := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	for _, eph := range states {
		r, v := eph.State.Position, eph.State.Velocity
		record := []string{ff(eph.JD), ff(r.X), ff(r.Y), ff(r.Z), ff(v.X), ff(v.Y), ff(v.Z)}
		el, err := DeriveElements(μ, r, v)
		switch {
		case errors.Is(err, ErrLinearOrbit):
			record = append(record, "", "", "", "", "")
		case err != nil:
			return err
		default:
			record = append(record, ff(el.Eccentricity), ff(el.Alpha), ff(Rad2deg(el.Inclination)), ff(Rad2deg(el.Longitude)), ff(Rad2deg(el.Periapsis)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Catalog is a Cosmographia catalog which displays a trajectory read from an xyzv file.
type Catalog struct {
	Version string        `json:"version"`
	Name    string        `json:"name"`
	Items   []CatalogItem `json:"items"`
}

// CatalogItem is one displayed object of a Catalog.
type CatalogItem struct {
	Class      string            `json:"class"`
	Name       string            `json:"name"`
	Start      string            `json:"startTime"`
	End        string            `json:"endTime"`
	Center     string            `json:"center"`
	Frame      string            `json:"trajectoryFrame"`
	Trajectory CatalogTrajectory `json:"trajectory"`
	Label      CatalogStyle      `json:"label"`
	Plot       CatalogStyle      `json:"trajectoryPlot"`
}

// CatalogTrajectory points Cosmographia at the interpolated states file.
type CatalogTrajectory struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

// CatalogStyle holds the display options shared by labels and trajectory plots.
type CatalogStyle struct {
	Color       []float64 `json:"color,omitempty"`
	FadeSize    int       `json:"fadeSize,omitempty"`
	ShowText    bool      `json:"showText,omitempty"`
	LineWidth   int       `json:"lineWidth,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Lead        string    `json:"lead,omitempty"`
	SampleCount int       `json:"sampleCount,omitempty"`
}

// NewCatalog returns a catalog displaying the xyzv file source as the trajectory of
// name around center, between the first and last states.
func NewCatalog(name, center, source string, states []Ephemeris) (*Catalog, error) {
	if len(states) == 0 {
		return nil, errors.New("no states to display")
	}
	if !strings.HasSuffix(source, ".xyzv") {
		return nil, fmt.Errorf("catalog source %q is not an interpolated states file", source)
	}
	start, end := states[0].DT(), states[len(states)-1].DT()
	days := int(end.Sub(start).Hours()/24) + 1
	cyan := []float64{0.6, 1, 1}
	return &Catalog{Version: "1.0", Name: name, Items: []CatalogItem{{
		Class:      "spacecraft",
		Name:       name,
		Start:      start.UTC().Format(time.RFC3339),
		End:        end.UTC().Format(time.RFC3339),
		Center:     center,
		Frame:      "ICRF",
		Trajectory: CatalogTrajectory{Type: "InterpolatedStates", Source: source},
		Label:      CatalogStyle{Color: cyan, FadeSize: 1e6, ShowText: true},
		Plot:       CatalogStyle{Color: cyan, LineWidth: 1, Duration: fmt.Sprintf("%d d", days), Lead: "0 d", SampleCount: 10},
	}}}, nil
}

// WriteCatalog writes the catalog as indented JSON.
func WriteCatalog(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
