package colour

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// ErrInvalidSensitivity reports a sensitivity outside the five-point scale.
var ErrInvalidSensitivity = errors.New("invalid sensitivity")

// Sensitivity selects how aggressively similar cluster colours are merged.
// It implements pflag.Value so it can be bound directly as a flag.
type Sensitivity int

const (
	VeryLow Sensitivity = iota
	Low
	Medium
	High
	VeryHigh
)

var _ pflag.Value = (*Sensitivity)(nil)

// thresholds maps each sensitivity to its per-channel merge distance.
var thresholds = [...]int{10, 20, 30, 40, 50}

var sensitivityNames = [...]string{"very-low", "low", "medium", "high", "very-high"}

// Sensitivities returns the scale in ascending order.
func Sensitivities() []Sensitivity {
	return []Sensitivity{VeryLow, Low, Medium, High, VeryHigh}
}

// Valid reports whether s is on the scale.
func (s Sensitivity) Valid() bool {
	return s >= VeryLow && s <= VeryHigh
}

// Threshold returns the per-channel distance under which two colours merge.
func (s Sensitivity) Threshold() int {
	if !s.Valid() {
		panic(fmt.Sprintf("colour: threshold of invalid sensitivity %d", int(s)))
	}
	return thresholds[s]
}

func (s Sensitivity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sensitivity(%d)", int(s))
	}
	return sensitivityNames[s]
}

// Set parses a sensitivity name or ordinal.
func (s *Sensitivity) Set(value string) error {
	parsed, err := ParseSensitivity(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type names the flag value type in help output.
func (s *Sensitivity) Type() string {
	return "sensitivity"
}

// MarshalText encodes the sensitivity by name.
func (s Sensitivity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSensitivity, int(s))
	}
	return []byte(s.String()), nil
}

// ParseSensitivity accepts "very-low", "Very Low", "very_low" or an ordinal
// "0".."4".
func ParseSensitivity(value string) (Sensitivity, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)

	for i, name := range sensitivityNames {
		if key == name {
			return Sensitivity(i), nil
		}
	}
	if n, err := strconv.Atoi(key); err == nil && Sensitivity(n).Valid() {
		return Sensitivity(n), nil
	}
	return VeryLow, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSensitivity, value, strings.Join(sensitivityNames[:], ", "))
}
