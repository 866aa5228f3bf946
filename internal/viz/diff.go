package viz

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/san-kum/slabwave/internal/guide"
)

// parameters present in both theories
var diffParams = []string{guide.ParamEffectiveIndex, guide.ParamIncidenceAngle, guide.ParamPropagationConstant}

func modeLines(modes []guide.Mode, digits int) string {
	var b strings.Builder
	for _, m := range modes {
		if m.Err != nil {
			fmt.Fprintf(&b, "m=%d invalid\n", m.Index)
			continue
		}
		fmt.Fprintf(&b, "m=%d", m.Index)
		for _, name := range diffParams {
			v, _ := m.Params.Value(name)
			fmt.Fprintf(&b, " %s=%.*f", name, digits, v)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DiffModes returns a unified diff of two mode tables rounded to digits
// decimals, or "" when they agree.
func DiffModes(aName string, a []guide.Mode, bName string, b []guide.Mode, digits int) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(modeLines(a, digits)),
		B:        difflib.SplitLines(modeLines(b, digits)),
		FromFile: aName,
		ToFile:   bName,
		Context:  1,
	}
	return difflib.GetUnifiedDiffString(diff)
}
