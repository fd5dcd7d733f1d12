package stylespace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/YeenieBeans/Tools-For-Artists/internal/colour"
)

var (
	// ErrNameRequired is returned when a point has no name.
	ErrNameRequired = errors.New("name is required")
	// ErrOutOfRange is returned when a coordinate lies outside [-Size, Size].
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidColour is returned when a point colour is not #rrggbb.
	ErrInvalidColour = errors.New("invalid point colour")
	// ErrNoSuchFriend is returned for an out of range friend index.
	ErrNoSuchFriend = errors.New("no such friend")
)

// Marker sizes.
const (
	UserMarkerSize   = 8
	FriendMarkerSize = 6
)

// Point is a named position in the style space.
type Point struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Colour string  `json:"color,omitempty"`
	Show   bool    `json:"show"`
}

// Validate checks the name, the coordinates and the colour.
func (p Point) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	for _, c := range []struct {
		axis  string
		value float64
	}{{"x", p.X}, {"y", p.Y}, {"z", p.Z}} {
		if c.value < -Size || c.value > Size {
			return fmt.Errorf("%w: %s=%g not in [%d, %d]", ErrOutOfRange, c.axis, c.value, -Size, Size)
		}
	}
	if p.Colour != "" {
		if _, err := colour.ParseHex(p.Colour); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidColour, err)
		}
	}
	return nil
}

// Roster is the caller owned set of points shown in a figure: at most one
// user and any number of friends.
type Roster struct {
	user    *Point
	friends []Point
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// SetUser sets or replaces the user point. An empty colour defaults to
// UserPoint.
func (r *Roster) SetUser(p Point) error {
	if p.Colour == "" {
		p.Colour = UserPoint
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	p.Show = true
	r.user = &p
	return nil
}

// User returns the user point, if set.
func (r *Roster) User() (Point, bool) {
	if r.user == nil {
		return Point{}, false
	}
	return *r.user, true
}

// AddFriend appends a visible friend. An empty colour defaults to
// FriendPoint.
func (r *Roster) AddFriend(p Point) error {
	if p.Colour == "" {
		p.Colour = FriendPoint
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid friend: %w", err)
	}
	p.Show = true
	r.friends = append(r.friends, p)
	return nil
}

// SetVisible shows or hides the friend at index i.
func (r *Roster) SetVisible(i int, show bool) error {
	if i < 0 || i >= len(r.friends) {
		return fmt.Errorf("%w: index %d", ErrNoSuchFriend, i)
	}
	r.friends[i].Show = show
	return nil
}

// Friends returns a copy of the friends in insertion order.
func (r *Roster) Friends() []Point {
	return append([]Point(nil), r.friends...)
}

// Place appends the user marker and then one marker per visible friend to f.
func Place(f *Figure, r *Roster) {
	if r == nil {
		return
	}
	if u, ok := r.User(); ok {
		f.AddTrace(pointTrace(u, UserMarkerSize))
	}
	for _, p := range r.friends {
		if p.Show {
			f.AddTrace(pointTrace(p, FriendMarkerSize))
		}
	}
}

// Plot returns the scene with the roster placed on it.
func Plot(r *Roster) *Figure {
	f := NewScene()
	Place(f, r)
	return f
}

func pointTrace(p Point, size int) *Scatter3D {
	return &Scatter3D{
		Type:         TraceScatter3D,
		Mode:         ModeMarkersText,
		Name:         p.Name,
		X:            []float64{p.X},
		Y:            []float64{p.Y},
		Z:            []float64{p.Z},
		Marker:       &Marker{Size: size, Color: p.Colour},
		Text:         []string{p.Name},
		TextPosition: "top center",
		HoverInfo:    "none",
	}
}

type friendJSON struct {
	Point
	Show *bool `json:"show"`
}

type rosterJSON struct {
	User    *Point       `json:"user,omitempty"`
	Friends []friendJSON `json:"friends"`
}

// LoadRoster decodes a roster document of the form
//
//	{"user": {"name": "...", "x": 0, "y": 0, "z": 0, "color": "#3d2fd0"},
//	 "friends": [{"name": "...", "x": 1, "y": 2, "z": 3, "show": false}]}
//
// Friends without a show field are visible.
func LoadRoster(r io.Reader) (*Roster, error) {
	var doc rosterJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}

	roster := NewRoster()
	if doc.User != nil {
		if err := roster.SetUser(*doc.User); err != nil {
			return nil, err
		}
	}
	for i, f := range doc.Friends {
		if err := roster.AddFriend(f.Point); err != nil {
			return nil, fmt.Errorf("friend %d: %w", i, err)
		}
		if f.Show != nil {
			if err := roster.SetVisible(i, *f.Show); err != nil {
				return nil, err
			}
		}
	}
	return roster, nil
}

// MarshalJSON encodes the roster in the LoadRoster format.
func (r *Roster) MarshalJSON() ([]byte, error) {
	doc := rosterJSON{User: r.user, Friends: make([]friendJSON, len(r.friends))}
	for i, f := range r.friends {
		show := f.Show
		doc.Friends[i] = friendJSON{Point: f, Show: &show}
	}
	return json.Marshal(doc)
}
