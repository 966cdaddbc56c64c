package parsing

import (
	"fmt"
	"strings"
)

// Diagnostic records one coercion the normalizer applied to the raw input
type Diagnostic struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Diagnostics is the ordered list of coercions applied during one normalization
type Diagnostics []Diagnostic

func (d Diagnostics) String() string {
	if len(d) == 0 {
		return "no issues"
	}
	var sb strings.Builder
	for i, diag := range d {
		sb.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, diag.Path, diag.Message))
	}
	return sb.String()
}

// AtPath returns the diagnostics recorded for exactly the given path
func (d Diagnostics) AtPath(path string) Diagnostics {
	out := Diagnostics{}
	for _, diag := range d {
		if diag.Path == path {
			out = append(out, diag)
		}
	}
	return out
}
