package models

import (
	"fmt"
	"strings"
)

func (a Annotation) String() string {
	if a.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", a.Kind, a.Line, a.Detail)
	}
	return fmt.Sprintf("%s: %s", a.Kind, a.Detail)
}

func (l LineCost) String() string {
	return fmt.Sprintf("line %d: %s  [%s]", l.Line, l.Code, l.Cost)
}

func (s MathStep) String() string {
	return fmt.Sprintf("%s: %s", s.Label, s.Value)
}

func (s Solution) String() string {
	return fmt.Sprintf("%s via %s", s.MainResult, s.MethodUsed)
}

func (r *RecurrenceRelation) String() string {
	if r == nil {
		return "no recurrence"
	}
	var b strings.Builder
	b.WriteString(r.Equation)
	if r.BaseCase != "" {
		fmt.Fprintf(&b, ", %s", r.BaseCase)
	}
	return b.String()
}

func (t *RecursionTree) String() string {
	if t == nil || len(t.Levels) == 0 {
		return "no tree"
	}
	var b strings.Builder
	for _, lvl := range t.Levels {
		fmt.Fprintf(&b, "level %d: %d node(s) of size %s, cost %s\n",
			lvl.Depth, lvl.Nodes, lvl.SizeLabel, lvl.CostLabel)
	}
	if t.Total != "" {
		fmt.Fprintf(&b, "total: %s\n", t.Total)
	}
	return strings.TrimRight(b.String(), "\n")
}
