package cmdshared

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/horizr/horizr/core"
	"github.com/spf13/pflag"
)

// TruncateWithEllipsis shortens s to at most maxLength runes, ending it with "…" if anything was cut
func TruncateWithEllipsis(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 1 {
		return string(runes[:maxLength])
	}
	return strings.TrimRightFunc(string(runes[:maxLength-1]), unicode.IsSpace) + "…"
}

// SideValue is a flag accepting a pack side. It is empty until set.
type SideValue struct {
	Side core.Side
}

var _ pflag.Value = (*SideValue)(nil)

func (s *SideValue) String() string {
	return string(s.Side)
}

func (s *SideValue) Set(value string) error {
	side, err := core.ParseSide(value)
	if err != nil {
		return err
	}
	s.Side = side
	return nil
}

func (s *SideValue) Type() string {
	return "side"
}

// IsSet reports whether the flag was given
func (s *SideValue) IsSet() bool {
	return s.Side != ""
}

// SideNames is the help text listing valid sides
var SideNames = fmt.Sprintf("one of %s", strings.Join(sideNames(), ", "))

func sideNames() []string {
	names := make([]string, len(core.Sides))
	for i, side := range core.Sides {
		names[i] = string(side)
	}
	return names
}
