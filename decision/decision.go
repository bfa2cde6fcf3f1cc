// Package decision defines the structured approval contract between the
// Critic agent and the orchestrator's hierarchical workflow. Critic output
// must contain a JSON object {"version":1,"approved":bool,"feedback":string},
// optionally inside a fenced code block; Parse extracts and validates it
// deterministically and never falls back to substring heuristics. Free text
// that cannot be classified yields a *ParseError.
package decision

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Version is the current contract version emitted by Format and accepted by
// Parse. Parse also accepts objects without a version field for leniency
// toward backends that drop it.
const Version = 1

// Decision is the Critic's structured verdict on a draft.
type Decision struct {
	Version  int    `json:"version"`
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback"`
}

// ParseError reports that critic output could not be classified as an
// approval decision.
type ParseError struct {
	Output string // Raw critic output (possibly truncated by the caller)
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse critic decision: %s", e.Reason)
}

// Contract is the instruction block the orchestrator appends to review tasks
// so the Critic answers within the parseable schema.
const Contract = `Respond with a JSON object of this exact shape:
{"version":1,"approved":true|false,"feedback":"specific improvements or approval rationale"}
Set "approved" to true only if the draft needs no further changes.`

// Format renders a conforming decision payload. Used by tests, mocks and
// example personas; real backends produce the same shape by following
// Contract.
func Format(approved bool, feedback string) string {
	out, _ := sjson.Set("", "version", Version)
	out, _ = sjson.Set(out, "approved", approved)
	out, _ = sjson.Set(out, "feedback", feedback)
	return out
}

// Parse extracts the decision object from raw critic output. It tolerates
// surrounding prose and fenced code blocks but requires a well-formed object
// with a boolean "approved" field and, when present, an integer "version"
// equal to Version.
func Parse(raw string) (Decision, error) {
	candidate := extractObject(raw)
	if candidate == "" {
		return Decision{}, &ParseError{Output: raw, Reason: "no JSON object found"}
	}

	parsed := gjson.Parse(candidate)
	approved := parsed.Get("approved")
	if !approved.Exists() || !approved.IsBool() {
		return Decision{}, &ParseError{Output: raw, Reason: `missing boolean "approved" field`}
	}

	if v := parsed.Get("version"); v.Exists() && v.Int() != Version {
		return Decision{}, &ParseError{Output: raw, Reason: fmt.Sprintf("unsupported contract version %d", v.Int())}
	}

	return Decision{
		Version:  Version,
		Approved: approved.Bool(),
		Feedback: parsed.Get("feedback").String(),
	}, nil
}

// extractObject returns the first balanced top-level JSON object in raw that
// gjson considers valid, or "" when none exists.
func extractObject(raw string) string {
	for start := strings.IndexByte(raw, '{'); start >= 0; start = nextBrace(raw, start) {
		depth, inString, escaped := 0, false, false
		for i := start; i < len(raw); i++ {
			c := raw[i]
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				if inString {
					escaped = true
				}
			case '"':
				inString = !inString
			case '{':
				if !inString {
					depth++
				}
			case '}':
				if !inString {
					depth--
					if depth == 0 {
						if candidate := raw[start : i+1]; gjson.Valid(candidate) {
							return candidate
						}
						i = len(raw) // malformed; resume outer scan at the next brace
					}
				}
			}
		}
	}
	return ""
}

// nextBrace returns the index of the next '{' strictly after pos, or -1.
func nextBrace(raw string, pos int) int {
	off := strings.IndexByte(raw[pos+1:], '{')
	if off < 0 {
		return -1
	}
	return pos + 1 + off
}
