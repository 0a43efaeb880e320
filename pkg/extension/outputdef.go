package extension

import (
	"fmt"
	"strings"

	"github.com/sonovice/tusk-go/errors"
	"github.com/sonovice/tusk-go/pkg/ly"
)

// pathDelimiter joins property path segments in extension form.
const pathDelimiter = "."

// Op tags one context block modification item.
type Op string

// The context block operations.
const (
	OpReference Op = "reference"
	OpConsists  Op = "consists"
	OpRemove    Op = "remove"
	OpSet       Op = "set"
	OpOverride  Op = "override"
	OpUnset     Op = "unset"
	OpRevert    Op = "revert"
	OpAssign    Op = "assign"
)

// ContextItem is one context block item in extension form. Name
// carries the context, component, or assignment name; Path carries
// the delimiter-joined property path for the property operations;
// Value carries the payload for set, override, and assign.
type ContextItem struct {
	Op    Op
	Name  string
	Path  string
	Value Value
}

// ContextBlock is an ordered list of context items.
type ContextBlock struct {
	Items []ContextItem
}

// Assignment is one name to value binding in extension form.
type Assignment struct {
	Name  string
	Value Value
}

// OutputDef is an output definition block in extension form. Kind is
// one of "header", "paper", "layout", "midi". This shape is the
// stable boundary contract: other modules persist and transmit it, so
// it must not track internal AST changes.
type OutputDef struct {
	Kind        string
	Assignments []Assignment
	Contexts    []ContextBlock
}

// NewPropertyPath joins segments into a delimiter-separated path,
// rejecting empty segments and segments containing the delimiter.
func NewPropertyPath(segments ...string) (string, error) {
	if len(segments) == 0 {
		return "", errors.DiagnosticList{
			errors.New(errors.ErrPropertyPathInvalid, "property path has no segments", ""),
		}
	}
	for _, seg := range segments {
		if seg == "" {
			return "", errors.DiagnosticList{
				errors.New(errors.ErrPropertyPathInvalid, "property path segment is empty", ""),
			}
		}
		if strings.Contains(seg, pathDelimiter) {
			return "", errors.DiagnosticList{
				errors.Newf(errors.ErrPropertyPathInvalid, "",
					"property path segment %q contains %q", seg, pathDelimiter),
			}
		}
	}
	return strings.Join(segments, pathDelimiter), nil
}

func splitPath(path string) ly.PropertyPath {
	return ly.PropertyPath(strings.Split(path, pathDelimiter))
}

// FromOutputDef converts an output definition to extension form. The
// conversion is total and item-for-item.
func FromOutputDef(def *ly.OutputDef) *OutputDef {
	if def == nil {
		return nil
	}
	out := &OutputDef{Kind: string(def.Kind)}
	for _, a := range def.Assignments {
		out.Assignments = append(out.Assignments, Assignment{Name: a.Name, Value: FromValue(a.Value)})
	}
	for _, block := range def.Contexts {
		out.Contexts = append(out.Contexts, fromContextBlock(block))
	}
	return out
}

func fromContextBlock(block ly.ContextBlock) ContextBlock {
	var out ContextBlock
	for _, item := range block.Items {
		out.Items = append(out.Items, fromContextItem(item))
	}
	return out
}

func fromContextItem(item ly.ContextItem) ContextItem {
	switch item := item.(type) {
	case ly.ContextRef:
		return ContextItem{Op: OpReference, Name: item.Name}
	case ly.Consists:
		return ContextItem{Op: OpConsists, Name: item.Name}
	case ly.Remove:
		return ContextItem{Op: OpRemove, Name: item.Name}
	case ly.Set:
		return ContextItem{Op: OpSet, Path: ly.FormatPath(item.Path), Value: FromValue(item.Value)}
	case ly.Override:
		return ContextItem{Op: OpOverride, Path: ly.FormatPath(item.Path), Value: FromValue(item.Value)}
	case ly.Unset:
		return ContextItem{Op: OpUnset, Path: ly.FormatPath(item.Path)}
	case ly.Revert:
		return ContextItem{Op: OpRevert, Path: ly.FormatPath(item.Path)}
	case ly.Assignment:
		return ContextItem{Op: OpAssign, Name: item.Name, Value: FromValue(item.Value)}
	default:
		return ContextItem{Op: OpAssign, Name: fmt.Sprintf("%T", item)}
	}
}

// ToOutputDef converts an extension output definition back to the
// LilyPond form. Fragment values that do not reparse degrade in place
// and are reported in the returned diagnostics; an unknown block kind
// or a context block on a kind that forbids them is a contract
// violation and returns an error.
func ToOutputDef(def *OutputDef) (*ly.OutputDef, []errors.Diagnostic, error) {
	if def == nil {
		return nil, nil, errors.DiagnosticList{
			errors.New(errors.ErrAttributeValueInvalid, "nil output definition", ""),
		}
	}
	kind := ly.OutputKind(def.Kind)
	switch kind {
	case ly.KindHeader, ly.KindPaper, ly.KindLayout, ly.KindMidi:
	default:
		return nil, nil, errors.DiagnosticList{
			errors.Newf(errors.ErrAttributeValueInvalid, "", "unknown output definition kind %q", def.Kind),
		}
	}
	if len(def.Contexts) > 0 && !kind.AllowsContexts() {
		return nil, nil, errors.DiagnosticList{
			errors.Newf(errors.ErrAttributeValueInvalid, "",
				"\\%s blocks do not permit context blocks", def.Kind),
		}
	}

	out := &ly.OutputDef{Kind: kind}
	var diags []errors.Diagnostic
	for _, a := range def.Assignments {
		v, d := ToValue(a.Value)
		diags = append(diags, d...)
		out.Assignments = append(out.Assignments, ly.Assignment{Name: a.Name, Value: v})
	}
	for _, block := range def.Contexts {
		converted, d := toContextBlock(block)
		diags = append(diags, d...)
		out.Contexts = append(out.Contexts, converted)
	}
	return out, diags, nil
}

func toContextBlock(block ContextBlock) (ly.ContextBlock, []errors.Diagnostic) {
	var out ly.ContextBlock
	var diags []errors.Diagnostic
	for _, item := range block.Items {
		converted, d := toContextItem(item)
		diags = append(diags, d...)
		if converted != nil {
			out.Items = append(out.Items, converted)
		}
	}
	return out, diags
}

func toContextItem(item ContextItem) (ly.ContextItem, []errors.Diagnostic) {
	switch item.Op {
	case OpReference:
		return ly.ContextRef{Name: item.Name}, nil
	case OpConsists:
		return ly.Consists{Name: item.Name}, nil
	case OpRemove:
		return ly.Remove{Name: item.Name}, nil
	case OpSet:
		v, diags := ToValue(item.Value)
		return ly.Set{Path: splitPath(item.Path), Value: v}, diags
	case OpOverride:
		v, diags := ToValue(item.Value)
		return ly.Override{Path: splitPath(item.Path), Value: v}, diags
	case OpUnset:
		return ly.Unset{Path: splitPath(item.Path)}, nil
	case OpRevert:
		return ly.Revert{Path: splitPath(item.Path)}, nil
	case OpAssign:
		v, diags := ToValue(item.Value)
		return ly.Assignment{Name: item.Name, Value: v}, diags
	default:
		return nil, []errors.Diagnostic{
			errors.Newf(errors.ErrDegradedValue, "", "unknown context operation %q dropped", item.Op),
		}
	}
}
