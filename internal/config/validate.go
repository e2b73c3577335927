package config

import (
	"fmt"
	"github.com/alecthomas/units"
	"github.com/google/uuid"
	"strings"
	"time"
)

const MaxBuffer = 64 * units.MiB

func (s *Struct) Validate() error {
	if s.Codec.Wrap < 0 {
		return fmt.Errorf("config validation ['codec.wrap']: must be a non-negative number of bytes, got %d", s.Codec.Wrap)
	}
	if s.Stream.Buffer <= 0 || s.Stream.Buffer > MaxBuffer {
		return fmt.Errorf("config validation ['stream.buffer']: must be a positive size up to %s, got %s", MaxBuffer, s.Stream.Buffer)
	}

	return nil
}

// ProcessString expands $(time), $(random) and $(mode) placeholders.
func ProcessString(str string) string {
	if strings.Contains(str, "$(time)") {
		str = strings.ReplaceAll(str, "$(time)", time.Now().Format("2006-01-02-15-04-05"))
	}
	if strings.Contains(str, "$(random)") {
		str = strings.ReplaceAll(str, "$(random)", uuid.New().String())
	}
	if strings.Contains(str, "$(mode)") {
		str = strings.ReplaceAll(str, "$(mode)", string(Config.Codec.Mode))
	}
	return str
}
