package core

import (
	"strconv"
	"time"

	"toruslife/pkg/life"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeText denotes read-only descriptive values.
	ParamTypeText ParamType = "text"
)

// Parameter describes a single value exposed by a running automaton.
type Parameter struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Type        ParamType `json:"type"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string      `json:"name"`
	Params  []Parameter `json:"params"`
	Summary string      `json:"summary,omitempty"`
}

// ParameterSnapshot captures the current set of values shown on the HUD and
// served by the API.
type ParameterSnapshot struct {
	Groups []ParameterGroup `json:"groups"`
}

// Value looks up a parameter by key across all groups.
func (s ParameterSnapshot) Value(key string) (string, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p.Value, true
			}
		}
	}
	return "", false
}

// ParameterControl describes an adjustable parameter that should be exposed on
// the HUD. Steps and bounds are optional and interpreted based on the
// parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows HUD interactions to update integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// BoolParameterSetter allows HUD interactions to toggle boolean parameters.
type BoolParameterSetter interface {
	SetBoolParameter(key string, value bool) bool
}

// Parameter keys.
const (
	KeyLower      = "lower"
	KeyUpper      = "upper"
	KeyResurrect  = "resurrect"
	KeyDelayMS    = "delay_ms"
	KeyAutomatic  = "automatic"
	KeyState      = "state"
	KeyGeneration = "generation"
	KeyPopulation = "population"
	KeyRunning    = "running"
)

const maxDelayMS = 10000

// Params exposes an automaton and its controller as tunable parameters.
type Params struct {
	a *life.Automaton
}

// NewParams wraps a.
func NewParams(a *life.Automaton) *Params { return &Params{a: a} }

// Snapshot reports the rules, progression settings and live statistics.
func (p *Params) Snapshot() ParameterSnapshot {
	rules := p.a.Rules()
	delay := p.a.Config().Delay
	automatic := false
	state := life.StateIdle
	if c := p.a.Controller(); c != nil {
		delay = c.Delay()
		automatic = c.Automatic()
		state = c.State()
	}

	return ParameterSnapshot{Groups: []ParameterGroup{
		{
			Name:    "Rules",
			Summary: "neighbor thresholds",
			Params: []Parameter{
				intParam(KeyLower, "Lower bound", rules.LowerBound, "fewer alive neighbors kill the cell"),
				intParam(KeyUpper, "Upper bound", rules.UpperBound, "more alive neighbors kill the cell"),
				intParam(KeyResurrect, "Resurrect", rules.ResurrectExact, "exact count that brings a cell alive"),
			},
		},
		{
			Name: "Progression",
			Params: []Parameter{
				intParam(KeyDelayMS, "Delay (ms)", int(delay/time.Millisecond), "pause between automatic rounds"),
				boolParam(KeyAutomatic, "Automatic", automatic),
				{Key: KeyState, Label: "State", Type: ParamTypeText, Value: state.String()},
			},
		},
		{
			Name: "Statistics",
			Params: []Parameter{
				intParam(KeyGeneration, "Generation", p.a.Generation(), ""),
				intParam(KeyPopulation, "Population", p.a.Population(), ""),
				boolParam(KeyRunning, "Running", p.a.Running()),
			},
		},
	}}
}

// ParameterControls lists the values the HUD may adjust.
func (p *Params) ParameterControls() []ParameterControl {
	return []ParameterControl{
		{Key: KeyDelayMS, Label: "Delay (ms)", Type: ParamTypeInt, Step: 50, Min: 0, Max: maxDelayMS, HasMin: true, HasMax: true},
		{Key: KeyAutomatic, Label: "Automatic", Type: ParamTypeBool},
	}
}

// SetIntParameter updates delay_ms. It fails before the controller starts.
func (p *Params) SetIntParameter(key string, value int) bool {
	c := p.a.Controller()
	if c == nil || key != KeyDelayMS {
		return false
	}
	if value < 0 {
		value = 0
	}
	if value > maxDelayMS {
		value = maxDelayMS
	}
	c.SetDelay(time.Duration(value) * time.Millisecond)
	return true
}

// SetBoolParameter toggles automatic mode. It fails before the controller
// starts.
func (p *Params) SetBoolParameter(key string, value bool) bool {
	c := p.a.Controller()
	if c == nil || key != KeyAutomatic {
		return false
	}
	c.SetAutomatic(value)
	return true
}

func intParam(key, label string, v int, desc string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(v), Description: desc}
}

func boolParam(key, label string, v bool) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeBool, Value: strconv.FormatBool(v)}
}
