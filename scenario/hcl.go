// File: hcl.go
// Role: HCL front end. Steps are read with hcl.Body.Content so that block
// order in the file is the execution order; per-step attributes are decoded
// with gohcl and list expectations through cty conversion.
package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

const blockScenario = "scenario"
const blockExpect = "expect"

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: blockScenario, LabelNames: []string{"name"}}},
}

var stepBlocks = []hcl.BlockHeaderSchema{
	{Type: string(OpNode), LabelNames: []string{"name"}},
	{Type: string(OpRetain), LabelNames: []string{"name"}},
	{Type: string(OpDrop), LabelNames: []string{"name"}},
	{Type: string(OpEdge)},
	{Type: string(OpUnset)},
	{Type: string(OpRead)},
	{Type: string(OpClosure), LabelNames: []string{"name"}},
	{Type: string(OpInvoke), LabelNames: []string{"name"}},
	{Type: string(OpScope), LabelNames: []string{"name"}},
}

var scopeSchema = &hcl.BodySchema{Blocks: stepBlocks}

var scenarioSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "strict_scopes"},
	},
	Blocks: append(append([]hcl.BlockHeaderSchema(nil), stepBlocks...), hcl.BlockHeaderSchema{Type: blockExpect}),
}

var expectSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "events"},
		{Name: "deallocated"},
		{Name: "leaked"},
		{Name: "live"},
	},
}

type nodeBody struct {
	Label string `hcl:"label,optional"`
}

type holdBody struct{}

type edgeBody struct {
	Owner  string `hcl:"owner"`
	Field  string `hcl:"field"`
	Kind   string `hcl:"kind"`
	Target string `hcl:"target"`
}

type unsetBody struct {
	Owner string `hcl:"owner"`
	Field string `hcl:"field"`
}

type readBody struct {
	Owner  string `hcl:"owner"`
	Field  string `hcl:"field"`
	Expect string `hcl:"expect,optional"`
}

type closureBody struct {
	Capture  string `hcl:"capture"`
	Kind     string `hcl:"kind"`
	Label    string `hcl:"label,optional"`
	Format   string `hcl:"format,optional"`
	Fallback string `hcl:"fallback,optional"`
	Memoize  bool   `hcl:"memoize,optional"`
	Owner    string `hcl:"owner,optional"`
	Field    string `hcl:"field,optional"`
}

type invokeBody struct {
	Expect string `hcl:"expect,optional"`
}

// Parse decodes a scenario from HCL source. filename is used in
// diagnostics only.
func Parse(filename string, src []byte) (*Scenario, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scenario: parse %s: %w", filename, diags)
	}
	content, diags := f.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scenario: decode %s: %w", filename, diags)
	}
	if n := len(content.Blocks); n != 1 {
		return nil, fmt.Errorf("scenario: decode %s: found %d scenario blocks, want 1: %w",
			filename, n, ErrMissingAttribute)
	}

	blk := content.Blocks[0]
	sc, diags := decodeScenario(blk)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scenario: decode %s: %w", filename, diags)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return sc, nil
}

func decodeScenario(blk *hcl.Block) (*Scenario, hcl.Diagnostics) {
	sc := &Scenario{Name: blk.Labels[0]}
	content, diags := blk.Body.Content(scenarioSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	if attr, ok := content.Attributes["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &sc.Description)...)
	}
	if attr, ok := content.Attributes["strict_scopes"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &sc.StrictScopes)...)
	}

	var steps hcl.Blocks
	for _, b := range content.Blocks {
		if b.Type != blockExpect {
			steps = append(steps, b)
			continue
		}
		if sc.Expect != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  `Duplicate "expect" block`,
				Detail:   `Only one "expect" block is allowed.`,
				Subject:  &b.DefRange,
			})
			continue
		}
		exp, d := decodeExpect(b)
		diags = append(diags, d...)
		sc.Expect = exp
	}

	var d hcl.Diagnostics
	sc.Steps, d = decodeSteps(steps)
	diags = append(diags, d...)

	return sc, diags
}

// decodeSteps converts blocks to steps, preserving their order.
func decodeSteps(blocks hcl.Blocks) ([]Step, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	out := make([]Step, 0, len(blocks))
	for _, b := range blocks {
		st, d := decodeStep(b)
		diags = append(diags, d...)
		out = append(out, st)
	}

	return out, diags
}

func decodeStep(b *hcl.Block) (Step, hcl.Diagnostics) {
	st := Step{
		Op:  Op(b.Type),
		Pos: fmt.Sprintf("%s:%d,%d", b.DefRange.Filename, b.DefRange.Start.Line, b.DefRange.Start.Column),
	}
	if len(b.Labels) > 0 {
		st.Name = b.Labels[0]
	}

	var diags hcl.Diagnostics
	switch st.Op {
	case OpNode:
		var body nodeBody
		diags = gohcl.DecodeBody(b.Body, nil, &body)
		st.Label = body.Label
	case OpRetain, OpDrop:
		diags = gohcl.DecodeBody(b.Body, nil, &holdBody{})
	case OpEdge:
		var body edgeBody
		diags = gohcl.DecodeBody(b.Body, nil, &body)
		st.Owner, st.Field, st.Kind, st.Target = body.Owner, body.Field, body.Kind, body.Target
	case OpUnset:
		var body unsetBody
		diags = gohcl.DecodeBody(b.Body, nil, &body)
		st.Owner, st.Field = body.Owner, body.Field
	case OpRead:
		var body readBody
		diags = gohcl.DecodeBody(b.Body, nil, &body)
		st.Owner, st.Field, st.Expect = body.Owner, body.Field, body.Expect
	case OpClosure:
		var body closureBody
		diags = gohcl.DecodeBody(b.Body, nil, &body)
		st.Target, st.Kind, st.Label = body.Capture, body.Kind, body.Label
		st.Format, st.Fallback, st.Memoize = body.Format, body.Fallback, body.Memoize
		st.Owner, st.Field = body.Owner, body.Field
	case OpInvoke:
		var body invokeBody
		diags = gohcl.DecodeBody(b.Body, nil, &body)
		st.Expect = body.Expect
	case OpScope:
		content, d := b.Body.Content(scopeSchema)
		diags = d
		if !d.HasErrors() {
			st.Steps, d = decodeSteps(content.Blocks)
			diags = append(diags, d...)
		}
	}

	return st, diags
}

func decodeExpect(b *hcl.Block) (*Expect, hcl.Diagnostics) {
	content, diags := b.Body.Content(expectSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	exp := &Expect{}
	targets := map[string]*[]string{
		"events":      &exp.Events,
		"deallocated": &exp.Deallocated,
		"leaked":      &exp.Leaked,
		"live":        &exp.Live,
	}
	for name, attr := range content.Attributes {
		list, d := decodeStrings(attr)
		diags = append(diags, d...)
		*targets[name] = list
	}

	return exp, diags
}

// decodeStrings evaluates attr as a list of strings. The result is never
// nil on success, so an empty list in the file stays distinguishable from
// an absent attribute.
func decodeStrings(attr *hcl.Attribute) ([]string, hcl.Diagnostics) {
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	bad := func(detail string) hcl.Diagnostics {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid string list",
			Detail:   fmt.Sprintf("%q: %s", attr.Name, detail),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	if v.IsNull() || !v.IsWhollyKnown() {
		return nil, bad("value must be a known list")
	}
	lv, err := convert.Convert(v, cty.List(cty.String))
	if err != nil {
		return nil, bad(err.Error())
	}

	out := []string{}
	if lv.LengthInt() == 0 {
		return out, nil
	}
	if err = gocty.FromCtyValue(lv, &out); err != nil {
		return nil, bad(err.Error())
	}

	return out, nil
}
