package mei

import (
	"strconv"
	"strings"

	"github.com/sonovice/tusk-go/errors"
)

// validatorFunc checks one element's own attributes and content.
// Descent into children is handled by the walker, never by the
// validator itself.
type validatorFunc func(*Context, *Element)

var validators = map[Tag]validatorFunc{
	"note":     validateNote,
	"rest":     validateDurated,
	"chord":    validateDurated,
	"ref":      validateRef,
	"measure":  validateMeasure,
	"staffDef": validateStaffDef,
	"date":     validateDate,
	"dynam":    validateHasContent,
	"tempo":    validateHasContent,
}

var pitchNames = map[string]struct{}{
	"a": {}, "b": {}, "c": {}, "d": {}, "e": {}, "f": {}, "g": {},
}

var durations = map[string]struct{}{
	"long": {}, "breve": {}, "1": {}, "2": {}, "4": {}, "8": {},
	"16": {}, "32": {}, "64": {}, "128": {},
}

// Validate walks the tree depth-first and returns every finding. No
// finding aborts the traversal; a diagnostic in one subtree never
// suppresses diagnostics in its siblings.
func Validate(root *Element) errors.DiagnosticList {
	ctx := NewContext()
	ValidateInto(ctx, root)
	return ctx.Diagnostics()
}

// NewContext returns an empty validation context.
func NewContext() *Context {
	return &Context{}
}

// ValidateInto walks root, collecting diagnostics into ctx. The
// context's path stack is balanced again once the walk returns.
func ValidateInto(ctx *Context, root *Element) {
	if ctx == nil || root == nil {
		return
	}
	walkChild(ctx, root, 1)
}

func walkChild(ctx *Context, el *Element, index int) {
	mark := ctx.Enter(el.Tag, index)
	defer mark.Exit()

	if validate, ok := validators[el.Tag]; ok {
		validate(ctx, el)
	}
	validateLanguage(ctx, el)

	index = 0
	for _, child := range el.Children {
		ce, ok := child.(*Element)
		if !ok {
			continue
		}
		index++
		walkChild(ctx, ce, index)
	}
}

func validateNote(ctx *Context, el *Element) {
	if pname, ok := el.Attr("pname"); ok {
		if _, legal := pitchNames[pname]; !legal {
			ctx.Report(errors.ErrAttributeValueInvalid, el, "pname %q is not a pitch name", pname)
		}
	}
	if oct, ok := el.Attr("oct"); ok {
		if n, err := strconv.Atoi(oct); err != nil || n < 0 || n > 9 {
			ctx.Report(errors.ErrAttributeValueInvalid, el, "oct %q is not an octave number", oct)
		}
	}
	validateDurated(ctx, el)
}

func validateDurated(ctx *Context, el *Element) {
	if dur, ok := el.Attr("dur"); ok {
		if _, legal := durations[dur]; !legal {
			ctx.Report(errors.ErrAttributeValueInvalid, el, "dur %q is not a duration", dur)
		}
	}
	if dots, ok := el.Attr("dots"); ok {
		if n, err := strconv.Atoi(dots); err != nil || n < 0 {
			ctx.Report(errors.ErrAttributeValueInvalid, el, "dots %q is not a count", dots)
		}
	}
}

func validateRef(ctx *Context, el *Element) {
	if target, ok := el.Attr("target"); !ok || target == "" {
		ctx.Report(errors.ErrRequiredAttributeMissing, el, "ref requires a target")
	}
}

func validateMeasure(ctx *Context, el *Element) {
	if _, ok := el.Attr("n"); !ok {
		ctx.Report(errors.ErrRequiredAttributeMissing, el, "measure requires a number")
	}
}

func validateStaffDef(ctx *Context, el *Element) {
	if lines, ok := el.Attr("lines"); ok {
		if n, err := strconv.Atoi(lines); err != nil || n <= 0 {
			ctx.Report(errors.ErrAttributeValueInvalid, el, "lines %q is not a staff line count", lines)
		}
	}
}

func validateDate(ctx *Context, el *Element) {
	iso, ok := el.Attr("isodate")
	if !ok {
		return
	}
	if !isISODate(iso) {
		ctx.Report(errors.ErrAttributeValueInvalid, el, "isodate %q is not an ISO date", iso)
	}
}

func validateHasContent(ctx *Context, el *Element) {
	if strings.TrimSpace(el.Text()) == "" && len(el.Elements()) == 0 {
		ctx.Report(errors.ErrEmptyElement, el, "%s has no content", el.Tag)
	}
}

func validateLanguage(ctx *Context, el *Element) {
	raw, ok := el.Attr("xml:lang")
	if !ok {
		return
	}
	if _, ok := ParseLanguage(raw); !ok {
		ctx.Report(errors.ErrLanguageInvalid, el, "xml:lang %q is not a language tag", raw)
	}
}

// isISODate accepts YYYY, YYYY-MM, and YYYY-MM-DD forms.
func isISODate(s string) bool {
	switch len(s) {
	case 4:
		return allDigits(s)
	case 7:
		return allDigits(s[:4]) && s[4] == '-' && allDigits(s[5:])
	case 10:
		return allDigits(s[:4]) && s[4] == '-' && allDigits(s[5:7]) && s[7] == '-' && allDigits(s[8:])
	default:
		return false
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
