package ly

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders a value as canonical LilyPond source. The
// output always reparses to an equal value; fragment text crossing
// module boundaries is produced here and nowhere else.
func FormatValue(v Value) string {
	var sb strings.Builder
	formatValue(&sb, v)
	return sb.String()
}

func formatValue(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case String:
		sb.WriteString(quote(string(v)))
	case Number:
		sb.WriteString(formatNumber(float64(v)))
	case Bool:
		if v {
			sb.WriteString("##t")
		} else {
			sb.WriteString("##f")
		}
	case Identifier:
		sb.WriteByte('\\')
		sb.WriteString(string(v))
	case Unit:
		sb.WriteString(formatNumber(v.Amount))
		sb.WriteByte('\\')
		sb.WriteString(v.Name)
	case Scheme:
		sb.WriteByte('#')
		formatSchemeExpr(sb, v.Expr)
	case Markup:
		sb.WriteString("\\markup ")
		formatMarkupNode(sb, v.Body)
	case MarkupList:
		sb.WriteString("\\markuplist {")
		for _, item := range v.Items {
			sb.WriteByte(' ')
			formatMarkupNode(sb, item)
		}
		sb.WriteString(" }")
	case Music:
		formatMusicSeq(sb, v.Body)
	default:
		// Unreachable for values built through this package.
		fmt.Fprintf(sb, "%%{ unprintable %T %%}", v)
	}
}

// formatNumber renders without exponent notation; the number grammar
// has no exponent form, so 1e+06 would not reparse as one number.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func formatSchemeExpr(sb *strings.Builder, expr SchemeExpr) {
	switch expr := expr.(type) {
	case SchemeSymbol:
		sb.WriteString(string(expr))
	case SchemeNumber:
		sb.WriteString(formatNumber(float64(expr)))
	case SchemeString:
		sb.WriteString(quote(string(expr)))
	case SchemeBool:
		if expr {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case SchemeQuote:
		sb.WriteByte('\'')
		formatSchemeExpr(sb, expr.Expr)
	case SchemeList:
		sb.WriteByte('(')
		for i, item := range expr {
			if i > 0 {
				sb.WriteByte(' ')
			}
			formatSchemeExpr(sb, item)
		}
		sb.WriteByte(')')
	}
}

func formatMarkupNode(sb *strings.Builder, node MarkupNode) {
	switch node := node.(type) {
	case MarkupText:
		text := string(node)
		if markupWordNeedsQuoting(text) {
			sb.WriteString(quote(text))
		} else {
			sb.WriteString(text)
		}
	case MarkupCommand:
		sb.WriteByte('\\')
		sb.WriteString(node.Name)
		for _, arg := range node.Args {
			sb.WriteByte(' ')
			formatMarkupNode(sb, arg)
		}
	case MarkupLine:
		sb.WriteByte('{')
		for _, item := range node {
			sb.WriteByte(' ')
			formatMarkupNode(sb, item)
		}
		sb.WriteString(" }")
	}
}

func markupWordNeedsQuoting(text string) bool {
	if text == "" {
		return true
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\r', '\n', '{', '}', '"', '\\', '%':
			return true
		}
	}
	return false
}

func formatMusicSeq(sb *strings.Builder, seq *MusicSeq) {
	sb.WriteByte('{')
	if seq != nil {
		for _, event := range seq.Events {
			sb.WriteByte(' ')
			formatMusicNode(sb, event)
		}
	}
	sb.WriteString(" }")
}

func formatMusicNode(sb *strings.Builder, node MusicNode) {
	switch node := node.(type) {
	case Note:
		sb.WriteString(node.Pitch)
		writeOctaveMarks(sb, node.Octave)
		sb.WriteString(node.Duration)
		for i := 0; i < node.Dots; i++ {
			sb.WriteByte('.')
		}
	case Rest:
		sb.WriteByte('r')
		sb.WriteString(node.Duration)
		for i := 0; i < node.Dots; i++ {
			sb.WriteByte('.')
		}
	case MusicCommand:
		sb.WriteByte('\\')
		sb.WriteString(node.Name)
	case *MusicSeq:
		formatMusicSeq(sb, node)
	}
}

func writeOctaveMarks(sb *strings.Builder, octave int) {
	for i := 0; i < octave; i++ {
		sb.WriteByte('\'')
	}
	for i := 0; i > octave; i-- {
		sb.WriteByte(',')
	}
}

// FormatPath renders a property path in dotted form.
func FormatPath(path PropertyPath) string {
	return strings.Join([]string(path), ".")
}

// String renders the output definition as a canonical block.
func (d *OutputDef) String() string {
	var sb strings.Builder
	d.format(&sb, "")
	return sb.String()
}

func (d *OutputDef) format(sb *strings.Builder, indent string) {
	if d == nil {
		return
	}
	fmt.Fprintf(sb, "%s\\%s {\n", indent, d.Kind)
	inner := indent + "  "
	for _, a := range d.Assignments {
		fmt.Fprintf(sb, "%s%s = %s\n", inner, a.Name, FormatValue(a.Value))
	}
	for _, block := range d.Contexts {
		block.format(sb, inner)
	}
	fmt.Fprintf(sb, "%s}\n", indent)
}

func (b ContextBlock) format(sb *strings.Builder, indent string) {
	fmt.Fprintf(sb, "%s\\context {\n", indent)
	inner := indent + "  "
	for _, item := range b.Items {
		sb.WriteString(inner)
		formatContextItem(sb, item)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(sb, "%s}\n", indent)
}

func formatContextItem(sb *strings.Builder, item ContextItem) {
	switch item := item.(type) {
	case ContextRef:
		sb.WriteByte('\\')
		sb.WriteString(item.Name)
	case Consists:
		fmt.Fprintf(sb, "\\consists %s", quote(item.Name))
	case Remove:
		fmt.Fprintf(sb, "\\remove %s", quote(item.Name))
	case Set:
		fmt.Fprintf(sb, "\\set %s = %s", FormatPath(item.Path), FormatValue(item.Value))
	case Override:
		fmt.Fprintf(sb, "\\override %s = %s", FormatPath(item.Path), FormatValue(item.Value))
	case Unset:
		fmt.Fprintf(sb, "\\unset %s", FormatPath(item.Path))
	case Revert:
		fmt.Fprintf(sb, "\\revert %s", FormatPath(item.Path))
	case Assignment:
		fmt.Fprintf(sb, "%s = %s", item.Name, FormatValue(item.Value))
	}
}

// String renders the whole file: assignments first, then output
// definitions, in document order within each group.
func (f *File) String() string {
	var sb strings.Builder
	for _, a := range f.Assignments {
		fmt.Fprintf(&sb, "%s = %s\n", a.Name, FormatValue(a.Value))
	}
	for _, def := range f.OutputDefs {
		def.format(&sb, "")
	}
	return sb.String()
}
