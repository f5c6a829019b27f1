// Package abi reads an ABI payload written as WIT-style function signatures.
//
// The linker stores payloads verbatim and never calls this package; it exists
// so inspection tools can show a payload as a function list when it happens
// to use this form:
//
//	add: func(a: s32, b: s32) -> s32;
//	export greet: func(name: string) -> string;
//	reset: func();
package abi

import (
	"regexp"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/abilink/errors"
)

// Param is one named function parameter.
type Param struct {
	Type     wit.Type
	Name     string
	TypeName string
}

// Result is one function result.
type Result struct {
	Type     wit.Type
	TypeName string
}

// Signature is one function entry of an ABI payload.
type Signature struct {
	Name    string
	Params  []Param
	Results []Result
}

// String renders the signature in the form ParseSignatures accepts.
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(": func(")
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.TypeName)
	}
	b.WriteByte(')')
	switch len(s.Results) {
	case 0:
	case 1:
		b.WriteString(" -> ")
		b.WriteString(s.Results[0].TypeName)
	default:
		b.WriteString(" -> (")
		for i, r := range s.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.TypeName)
		}
		b.WriteByte(')')
	}
	return b.String()
}

var funcPattern = regexp.MustCompile(`(?:export\s+)?([a-zA-Z_][a-zA-Z0-9_-]*)\s*:\s*func\s*\(([^)]*)\)(?:\s*->\s*([^;\n]+))?`)

// ParseSignatures extracts every function signature from text in source order.
// Types are resolved with wit.ParseType; an unknown type or a text with no
// signature at all is an error.
func ParseSignatures(text string) ([]Signature, error) {
	matches := funcPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, errors.InvalidInput(errors.PhaseABI, "no function signatures found")
	}

	sigs := make([]Signature, 0, len(matches))
	for _, match := range matches {
		sig := Signature{Name: match[1]}

		if paramsStr := strings.TrimSpace(match[2]); paramsStr != "" {
			for _, p := range splitParams(paramsStr) {
				name, typStr, ok := strings.Cut(p, ":")
				if !ok {
					return nil, errors.InvalidData(errors.PhaseABI, "parameter without type in "+sig.Name+": "+p)
				}
				typStr = strings.TrimSpace(typStr)
				t, err := parseWitType(typStr)
				if err != nil {
					return nil, errors.Wrap(errors.PhaseABI, errors.KindInvalidData, err, "parse param type "+typStr)
				}
				sig.Params = append(sig.Params, Param{Name: strings.TrimSpace(name), TypeName: typStr, Type: t})
			}
		}

		resultStr := strings.TrimSpace(match[3])
		if resultStr != "" && resultStr != "()" {
			parts := []string{resultStr}
			if strings.HasPrefix(resultStr, "(") && strings.HasSuffix(resultStr, ")") {
				parts = splitParams(resultStr[1 : len(resultStr)-1])
			}
			for _, part := range parts {
				t, err := parseWitType(part)
				if err != nil {
					return nil, errors.Wrap(errors.PhaseABI, errors.KindInvalidData, err, "parse result type "+part)
				}
				sig.Results = append(sig.Results, Result{TypeName: strings.TrimSpace(part), Type: t})
			}
		}

		sigs = append(sigs, sig)
	}

	return sigs, nil
}

// splitParams splits parameter list, handling nested parens.
func splitParams(s string) []string {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range s {
		switch ch {
		case '(', '<':
			depth++
			current.WriteRune(ch)
		case ')', '>':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				if str := strings.TrimSpace(current.String()); str != "" {
					result = append(result, str)
				}
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}

	if str := strings.TrimSpace(current.String()); str != "" {
		result = append(result, str)
	}

	return result
}

func parseWitType(s string) (wit.Type, error) {
	s = strings.TrimSpace(s)
	return wit.ParseType(s)
}
