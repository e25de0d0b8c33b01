// File: validate.go
// Role: structural checks shared by the HCL and YAML front ends.
package scenario

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/arcsim/core"
)

// Validate checks every step for a known Op, the attributes it requires and
// a parsable edge kind. It does not resolve symbols; Run does.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("scenario: name: %w", ErrMissingAttribute)
	}
	var errs []error
	validateSteps(sc.Steps, &errs)

	return errors.Join(errs...)
}

func validateSteps(steps []Step, errs *[]error) {
	for _, st := range steps {
		if err := st.validate(); err != nil {
			*errs = append(*errs, err)
		}
		if st.Op == OpScope {
			validateSteps(st.Steps, errs)
		}
	}
}

func (s Step) validate() error {
	var need []string
	switch s.Op {
	case OpNode, OpRetain, OpDrop, OpInvoke, OpScope:
		need = s.missing("name", s.Name)
	case OpEdge:
		need = s.missing("owner", s.Owner, "field", s.Field, "kind", s.Kind, "target", s.Target)
	case OpUnset, OpRead:
		need = s.missing("owner", s.Owner, "field", s.Field)
	case OpClosure:
		need = s.missing("name", s.Name, "kind", s.Kind, "target", s.Target)
		if s.Field != "" && s.Owner == "" {
			need = append(need, "owner")
		}
	default:
		return fmt.Errorf("%s: %w", s.where(), ErrUnknownOp)
	}
	if len(need) > 0 {
		return fmt.Errorf("%s: %v: %w", s.where(), need, ErrMissingAttribute)
	}
	if s.Kind != "" {
		if _, err := core.ParseEdgeKind(s.Kind); err != nil {
			return fmt.Errorf("%s: %w", s.where(), err)
		}
	}

	return nil
}

// missing returns the names among (name, value) pairs whose value is empty.
func (s Step) missing(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			out = append(out, pairs[i])
		}
	}

	return out
}
