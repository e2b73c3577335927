package config

import (
	"bytes"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/alecthomas/units"
	"github.com/mcuadros/go-defaults"
	"github.com/nimatrueway/hexpipe/internal/io/codec"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"os"
)

var Version string

var Config Struct

type Struct struct {
	Codec struct {
		Mode             Mode   `default:"encode" toml:"mode"`
		IgnoreWhitespace bool   `default:"false" toml:"ignore_whitespaces"`
		Wrap             int    `default:"0" toml:"wrap"`
		Prefix           string `default:"" toml:"prefix"`
	}
	Stream struct {
		Buffer units.Base2Bytes `default:"65536" toml:"buffer"`
	}
	Log struct {
		File  string       `default:"" toml:"file"`
		Level logrus.Level `default:"3" toml:"level"`
	}
}

// ---------------------------------------------------------------------------

type Mode string

const (
	Encode Mode = "encode"
	Decode Mode = "decode"
)

func (m *Mode) UnmarshalText(text []byte) error {
	validValues := []Mode{Encode, Decode}
	mode := Mode(text)
	if !lo.Contains(validValues, mode) {
		return fmt.Errorf("invalid codec mode: %s", text)
	}
	*m = mode
	return nil
}

// ---------------------------------------------------------------------------

// CodecOptions snapshots the codec section, the codec never sees later changes to Config.
func (s *Struct) CodecOptions() codec.Options {
	return codec.Options{
		IgnoreWhitespace: s.Codec.IgnoreWhitespace,
		Wrap:             s.Codec.Wrap,
		Prefix:           s.Codec.Prefix,
	}
}

func (s *Struct) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("error reading toml config file %s: %s", path, err.Error())
		return err
	}
	return s.LoadData(string(data))
}

func (s *Struct) LoadData(data string) error {
	_, err := toml.Decode(data, s)
	if err != nil {
		logrus.Errorf("error parsing toml config: %s", err.Error())
		return err
	}
	return s.Validate()
}

func (s *Struct) SaveData() string {
	buf := bytes.NewBuffer(make([]byte, 0, 1024))
	encoder := toml.NewEncoder(buf)
	err := encoder.Encode(s)
	if err != nil {
		logrus.Errorf("error saving toml config: %s", err.Error())
		panic(err)
	}
	return buf.String()
}

// Reset puts Config back to its defaults.
func Reset() {
	Config = Struct{}
	defaults.SetDefaults(&Config)
}

func init() {
	Reset()
}
