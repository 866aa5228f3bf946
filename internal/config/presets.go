package config

import (
	"sort"

	"github.com/san-kum/slabwave/internal/guide"
)

func preset(spec guide.Spec, theory string) *Config {
	cfg := DefaultConfig()
	cfg.Waveguide = spec
	cfg.Theory = theory
	return cfg
}

var Presets = map[string]map[string]*Config{
	"symmetric": {
		"reference": preset(guide.Spec{Core: 1.5, Substrate: 1.0, Thickness: 1, Wavelength: 1, Polarization: guide.TE}, "ray"),
		"telecom":   preset(guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE}, "wave"),
		"thin":      preset(guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 0.1, Wavelength: 1.55, Polarization: guide.TE}, "wave"),
		"multimode": preset(guide.Spec{Core: 1.48, Substrate: 1.46, Thickness: 50, Wavelength: 0.85, Polarization: guide.TE}, "wave"),
	},
	"asymmetric": {
		"nitride": preset(guide.Spec{Core: 2.0, Substrate: 1.45, Cover: 1.0, Thickness: 0.4, Wavelength: 1.55, Polarization: guide.TE}, "wave"),
		"soi":     preset(guide.Spec{Core: 3.48, Substrate: 1.444, Cover: 1.0, Thickness: 0.22, Wavelength: 1.55, Polarization: guide.TE}, "wave"),
		"glass":   preset(guide.Spec{Core: 1.52, Substrate: 1.5, Cover: 1.0, Thickness: 3, Wavelength: 0.633, Polarization: guide.TM}, "ray"),
	},
}

func GetPreset(family, name string) *Config {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	cfg, ok := familyPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListFamilies() []string {
	families := make([]string, 0, len(Presets))
	for f := range Presets {
		families = append(families, f)
	}
	sort.Strings(families)
	return families
}
