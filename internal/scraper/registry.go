package scraper

import (
	"strings"

	"github.com/jimezsa/horizons/internal/browser"
	"github.com/jimezsa/horizons/internal/network"
)

const (
	SourceYellowhouse      = "yellowhouse"
	SourceANB              = "anb"
	SourceAustinHose       = "austinhose"
	SourceFMC              = "fmc"
	SourceWesternEquipment = "westernequipment"
	SourceSageOilVac       = "sageoilvac"
	SourceTalonLPE         = "talonlpe"
	SourceTTUHSC           = "ttuhsc"
	SourceWTAMU            = "wtamu"
	SourceDisco            = "disco"
)

// DefaultOrder is the fixed execution order of a full run. Order matters:
// it decides duplicate precedence in the merger, so it stays stable across
// releases.
var DefaultOrder = []string{
	SourceYellowhouse,
	SourceANB,
	SourceAustinHose,
	SourceFMC,
	SourceWesternEquipment,
	SourceSageOilVac,
	SourceTalonLPE,
	SourceTTUHSC,
	SourceWTAMU,
	SourceDisco,
}

// Registry builds every board adapter. Each source gets its own HTTP
// client (separate cookie jars keep ATS sessions from bleeding into each
// other); the headless-Chrome renderer is shared.
func Registry(rotator *network.Rotator, renderer *browser.Renderer) (map[string]Source, error) {
	makeClient := func() (*network.Client, error) {
		return network.NewClient(rotator)
	}

	sources := map[string]Source{}
	for _, build := range []struct {
		name string
		ctor func(*network.Client) Source
	}{
		{SourceYellowhouse, func(c *network.Client) Source { return NewYellowhouse(c) }},
		{SourceANB, func(c *network.Client) Source { return NewANB(c) }},
		{SourceAustinHose, func(c *network.Client) Source { return NewAustinHose(c, renderer) }},
		{SourceFMC, func(c *network.Client) Source { return NewFMC(c) }},
		{SourceWesternEquipment, func(c *network.Client) Source { return NewWesternEquipment(c, renderer) }},
		{SourceSageOilVac, func(c *network.Client) Source { return NewSageOilVac(c, renderer) }},
		{SourceTalonLPE, func(c *network.Client) Source { return NewTalonLPE(renderer) }},
		{SourceTTUHSC, func(c *network.Client) Source { return NewTTUHSC(renderer) }},
		{SourceWTAMU, func(c *network.Client) Source { return NewWTAMU(renderer) }},
		{SourceDisco, func(c *network.Client) Source { return NewDisco(c) }},
	} {
		client, err := makeClient()
		if err != nil {
			return nil, err
		}
		sources[build.name] = build.ctor(client)
	}

	return sources, nil
}

// NormalizeNames lowercases and trims requested source names.
func NormalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}
