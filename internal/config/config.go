// Package config turns the daemon configuration sources (an optional YAML file and command line flags) into
// a list of directives which are applied to the engine before the first poll.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/mo"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/KonishchevDmitry/diskstats-metrics/internal/util"
)

type Directive interface {
	directive()
}

// AddDisk adds a device to the monitored set.
type AddDisk struct {
	Name string
}

// SetDeltaPerSecond selects between per-second (raw counters) and per-interval (locally computed deltas) mode.
type SetDeltaPerSecond struct {
	Enabled bool
}

func (AddDisk) directive()           {}
func (SetDeltaPerSecond) directive() {}

func (d AddDisk) String() string {
	return fmt.Sprintf("Disk %s", d.Name)
}

func (d SetDeltaPerSecond) String() string {
	return fmt.Sprintf("DeltaPerSecond %s", formatSwitch(d.Enabled))
}

type file struct {
	Disks          []string     `yaml:"disks"`
	DeltaPerSecond *switchValue `yaml:"delta_per_second"`
}

func Load(path string) ([]Directive, error) {
	return util.ReadFileReturning(path, parse)
}

func parse(reader io.Reader) ([]Directive, error) {
	var config file

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var deltaPerSecond mo.Option[bool]
	if config.DeltaPerSecond != nil {
		deltaPerSecond = mo.Some(bool(*config.DeltaPerSecond))
	}

	return makeDirectives(config.Disks, deltaPerSecond)
}

func FromFlags(disks []string, deltaPerSecond mo.Option[bool]) ([]Directive, error) {
	return makeDirectives(disks, deltaPerSecond)
}

func makeDirectives(disks []string, deltaPerSecond mo.Option[bool]) ([]Directive, error) {
	directives := make([]Directive, 0, len(disks)+1)

	for _, name := range disks {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t") {
			return nil, xerrors.Errorf("Invalid disk name: %q", name)
		}
		directives = append(directives, AddDisk{Name: name})
	}

	if enabled, ok := deltaPerSecond.Get(); ok {
		directives = append(directives, SetDeltaPerSecond{Enabled: enabled})
	}

	return directives, nil
}

type switchValue bool

var _ yaml.Unmarshaler = (*switchValue)(nil)

func (v *switchValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		switch strings.ToLower(node.Value) {
		case "yes", "true", "on":
			*v = true
			return nil
		case "no", "false", "off":
			*v = false
			return nil
		}
	}
	return xerrors.Errorf("Invalid switch value at line %d: %q (expected yes or no)", node.Line, node.Value)
}

func formatSwitch(enabled bool) string {
	if enabled {
		return "yes"
	}
	return "no"
}
