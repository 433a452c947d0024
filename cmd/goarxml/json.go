package main

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/goarxml/goarxml"
	"github.com/goarxml/goarxml/constant"
)

// DumpOutput is the top-level output for the dump command.
type DumpOutput struct {
	Constants   []ConstantJSON   `json:"constants" yaml:"constants"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ConstantJSON holds the serializable form of a constant.
type ConstantJSON struct {
	Ref       string        `json:"ref" yaml:"ref"`
	Name      string        `json:"name" yaml:"name"`
	File      string        `json:"file,omitempty" yaml:"file,omitempty"`
	TypeRef   string        `json:"typeRef,omitempty" yaml:"typeRef,omitempty"`
	LongName  *LangTextJSON `json:"longName,omitempty" yaml:"longName,omitempty"`
	Desc      *LangTextJSON `json:"desc,omitempty" yaml:"desc,omitempty"`
	AdminData []SDGJSON     `json:"adminData,omitempty" yaml:"adminData,omitempty"`
	Value     *ValueJSON    `json:"value" yaml:"value"`
}

// LangTextJSON holds a language-tagged text.
type LangTextJSON struct {
	Text string `json:"text" yaml:"text"`
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`
}

// SDGJSON holds a special data group.
type SDGJSON struct {
	GID  string   `json:"gid" yaml:"gid"`
	Data []SDJSON `json:"data,omitempty" yaml:"data,omitempty"`
}

// SDJSON holds a special data entry.
type SDJSON struct {
	GID  string `json:"gid,omitempty" yaml:"gid,omitempty"`
	Text string `json:"text" yaml:"text"`
}

// ValueJSON holds one node of a value tree.
type ValueJSON struct {
	Kind      string        `json:"kind" yaml:"kind"`
	Label     string        `json:"label,omitempty" yaml:"label,omitempty"`
	TypeRef   string        `json:"typeRef,omitempty" yaml:"typeRef,omitempty"`
	Value     any           `json:"value,omitempty" yaml:"value,omitempty"`
	Ref       string        `json:"ref,omitempty" yaml:"ref,omitempty"`
	Desc      *LangTextJSON `json:"desc,omitempty" yaml:"desc,omitempty"`
	Category  string        `json:"category,omitempty" yaml:"category,omitempty"`
	Unit      string        `json:"unit,omitempty" yaml:"unit,omitempty"`
	ArraySize []any         `json:"arraySize,omitempty" yaml:"arraySize,omitempty"`
	Values    []any         `json:"values,omitempty" yaml:"values,omitempty"`
	Axis      *AxisJSON     `json:"axis,omitempty" yaml:"axis,omitempty"`
	Elements  []*ValueJSON  `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// AxisJSON holds the first axis of an application value.
type AxisJSON struct {
	Unit   string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Values []any  `json:"values,omitempty" yaml:"values,omitempty"`
}

// DiagnosticJSON holds a load diagnostic.
type DiagnosticJSON struct {
	Severity string `json:"severity" yaml:"severity"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty"`
	Message  string `json:"message" yaml:"message"`
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
}

func buildConstantJSON(c *constant.Constant, file string) ConstantJSON {
	out := ConstantJSON{
		Ref:      goarxml.RefPath(c),
		Name:     c.Name,
		File:     file,
		TypeRef:  c.TypeRef,
		LongName: langText(c.LongName),
		Desc:     langText(c.Desc),
		Value:    buildValueJSON(c.Value),
	}
	if c.AdminData != nil {
		for _, sdg := range c.AdminData.SpecialDataGroups {
			g := SDGJSON{GID: sdg.GID}
			for _, sd := range sdg.SpecialData {
				g.Data = append(g.Data, SDJSON{GID: sd.GID, Text: sd.Text})
			}
			out.AdminData = append(out.AdminData, g)
		}
	}
	return out
}

func buildValueJSON(v constant.Value) *ValueJSON {
	if v == nil {
		return nil
	}
	out := &ValueJSON{Kind: v.Kind().String(), Label: v.Label()}
	switch v := v.(type) {
	case *constant.IntegerValue:
		out.TypeRef, out.Value = v.TypeRef, integerJSON(v)
	case *constant.StringValue:
		out.TypeRef, out.Value = v.TypeRef, v.Value
	case *constant.BooleanValue:
		out.TypeRef, out.Value = v.TypeRef, v.Text
		if v.Valid {
			out.Value = v.Value
		}
	case *constant.TextValue:
		out.Value = v.Value
	case *constant.NumericalValue:
		out.Value = v.Value.Any()
	case *constant.RecordValue:
		out.TypeRef = v.TypeRef
		out.Elements = buildElements(v.Elements)
	case *constant.ArrayValue:
		out.TypeRef = v.TypeRef
		out.Elements = buildElements(v.Elements)
	case *constant.ConstantReference:
		out.Ref = v.Ref
		out.Desc = langText(v.Desc)
	case *constant.ApplicationValue:
		out.Category = v.Category
		if vc := v.SwValueCont; vc != nil {
			out.Unit = vc.UnitRef
			out.ArraySize = samples(vc.ArraySize)
			out.Values = samples(vc.Values)
		}
		if ac := v.SwAxisCont; ac != nil {
			out.Axis = &AxisJSON{Unit: ac.UnitRef, Values: samples(ac.Values)}
		}
	}
	return out
}

// integerJSON renders an integer as a number when it fits in 64 bits
// and as its literal text otherwise.
func integerJSON(v *constant.IntegerValue) any {
	if i, ok := v.Int64(); ok {
		return i
	}
	if u, ok := v.Uint64(); ok {
		return u
	}
	return v.Text
}

func buildElements(vs []constant.Value) []*ValueJSON {
	out := make([]*ValueJSON, 0, len(vs))
	for _, v := range vs {
		out = append(out, buildValueJSON(v))
	}
	return out
}

func buildDiagnosticJSON(d goarxml.Diagnostic) DiagnosticJSON {
	return DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code,
		Message:  d.Message,
		File:     d.File,
		Path:     d.Path,
		Line:     d.Line,
	}
}

func langText(t *constant.LangText) *LangTextJSON {
	if t == nil {
		return nil
	}
	return &LangTextJSON{Text: t.Text, Lang: t.Lang}
}

func samples(ss []constant.Sample) []any {
	if len(ss) == 0 {
		return nil
	}
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s.Any()
	}
	return out
}

func marshalJSON(v any, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
