package hcl

import (
	"fmt"

	"github.com/specialistvlad/simarray/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translate converts the HCL-specific file schema into the agnostic model.
func (l *Loader) translate(root *fileRoot) (*config.Model, error) {
	m := &config.Model{
		Files:           root.Files,
		Folder:          root.Folder,
		Separator:       root.Separator,
		Target:          root.Target,
		By:              root.By,
		BatchPrefix:     root.BatchPrefix,
		SimPrefix:       root.SimPrefix,
		Replicates:      root.Replicates,
		ReplicatePrefix: root.ReplicatePrefix,
		Template:        root.Template,
		OutputParamFile: root.OutputParamFile,
		ParamSeparator:  root.ParamSeparator,
		Dispatch:        root.Dispatch,
		Compress:        root.Compress,
		TarballName:     root.TarballName,
		Verbose:         root.Verbose,
	}

	for _, def := range root.Parameters {
		// Values are literals; no variables or functions are in scope.
		val, diags := def.Values.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parameter %q: %w", def.Name, diags)
		}
		values, err := valueStrings(val)
		if err != nil {
			return nil, fmt.Errorf("parameter %q at %s: %w", def.Name, def.Values.Range(), err)
		}
		m.Parameters = append(m.Parameters, &config.Parameter{Name: def.Name, Values: values})
	}
	return m, nil
}

// valueStrings flattens a list or tuple of primitive values into strings.
// Numbers keep their shortest exact decimal form, so 0.5 becomes "0.5".
func valueStrings(val cty.Value) ([]string, error) {
	if val.IsNull() || !val.IsKnown() {
		return nil, fmt.Errorf("values must be a known, non-null list")
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, fmt.Errorf("values must be a list, got %s", ty.FriendlyName())
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || !elem.IsKnown() {
			return nil, fmt.Errorf("value %d is null or unknown", len(out)+1)
		}
		if !elem.Type().IsPrimitiveType() {
			return nil, fmt.Errorf("value %d must be a string, number or bool, got %s", len(out)+1, elem.Type().FriendlyName())
		}
		str, err := convert.Convert(elem, cty.String)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", len(out)+1, err)
		}
		out = append(out, str.AsString())
	}
	return out, nil
}
