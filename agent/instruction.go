package agent

import (
	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/internal/util"
)

// Provider supplies dynamic instruction text at runtime.
// Implementations can derive instructions from the task, environment, etc.
type Provider interface {
	Instruction(core.Task) (string, error)
}

// Func is a functional adapter to allow ordinary functions to be used as Providers.
type Func func(core.Task) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(t core.Task) (string, error) { return f(t) }

// Instruction represents either a static instruction string or a dynamic provider.
// This mirrors a union of string | provider in a Go-idiomatic way.
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText creates an Instruction from a static string.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p Provider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(core.Task) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// NewInstructionFromTemplate creates an Instruction rendered per task from a
// text/template, with the task's values as template data. Example:
//
//	NewInstructionFromTemplate("You write for {{ .audience }}.")
func NewInstructionFromTemplate(tmpl string) Instruction {
	return Instruction{provider: Func(func(t core.Task) (string, error) {
		return util.RenderTemplate(tmpl, t.Values())
	})}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// Resolve returns the instruction text, invoking the provider if needed.
func (i Instruction) Resolve(t core.Task) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(t)
	}
	return i.text, nil
}
