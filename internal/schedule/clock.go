package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day expressed as minutes since midnight. Using plain
// minutes keeps the allocator's arithmetic exact and makes schedules
// trivially comparable across runs.
type Clock int

// ParseClock parses a strict "HH:MM" string. A malformed time fails fast
// because a bad value would corrupt every court clock downstream.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return Clock(hours*60 + minutes), nil
}

// MustParseClock is a test and seeder helper; it panics on malformed input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Minutes is an elapsed duration in minutes, formatted as "H:MM" for
// organizer-facing output (e.g. a 75 minute day reads "1:15").
type Minutes int

func (m Minutes) String() string {
	return fmt.Sprintf("%d:%02d", int(m)/60, int(m)%60)
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return fmt.Errorf("invalid duration %q: expected H:MM", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*m = Minutes(hours*60 + mins)
	return nil
}
