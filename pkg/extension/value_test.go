package extension

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sonovice/tusk-go/errors"
	"github.com/sonovice/tusk-go/pkg/ly"
)

func TestScalarRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value ly.Value
		kind  Kind
	}{
		{"string", ly.String("Adagio"), KindString},
		{"number", ly.Number(2.5), KindNumber},
		{"bool true", ly.Bool(true), KindBool},
		{"bool false", ly.Bool(false), KindBool},
		{"identifier", ly.Identifier("oddHeaderMarkup"), KindIdentifier},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ext := FromValue(tc.value)
			if ext.Kind != tc.kind {
				t.Fatalf("kind = %q, want %q", ext.Kind, tc.kind)
			}
			back, diags := ToValue(ext)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if diff := cmp.Diff(tc.value, back); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value ly.Value
		kind  Kind
		text  string
	}{
		{
			"scheme",
			ly.Scheme{Expr: ly.SchemeQuote{Expr: ly.SchemeList{ly.SchemeNumber(1), ly.SchemeSymbol("a")}}},
			KindScheme,
			`#'(1 a)`,
		},
		{
			"scheme with large number",
			ly.Scheme{Expr: ly.SchemeList{ly.SchemeSymbol("x"), ly.SchemeNumber(1000000)}},
			KindScheme,
			`#(x 1000000)`,
		},
		{
			"markup",
			ly.Markup{Body: ly.MarkupCommand{
				Name: "bold",
				Args: []ly.MarkupNode{ly.MarkupLine{ly.MarkupText("molto"), ly.MarkupText("vivace")}},
			}},
			KindMarkup,
			`\markup \bold { molto vivace }`,
		},
		{
			"markup list",
			ly.MarkupList{Items: []ly.MarkupNode{ly.MarkupText("first"), ly.MarkupText("second")}},
			KindMarkupList,
			`\markuplist { first second }`,
		},
		{
			"music",
			ly.Music{Body: &ly.MusicSeq{Events: []ly.MusicNode{
				ly.Note{Pitch: "c", Octave: 1, Duration: "4", Dots: 1},
				ly.Rest{Duration: "8"},
			}}},
			KindMusic,
			`{ c'4. r8 }`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ext := FromValue(tc.value)
			if ext.Kind != tc.kind {
				t.Fatalf("kind = %q, want %q", ext.Kind, tc.kind)
			}
			if ext.Text != tc.text {
				t.Fatalf("fragment text = %q, want %q", ext.Text, tc.text)
			}
			back, diags := ToValue(ext)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if diff := cmp.Diff(tc.value, back); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
			if printed := ly.FormatValue(back); printed != tc.text {
				t.Fatalf("reprinted fragment = %q, want %q", printed, tc.text)
			}
		})
	}
}

func TestUnitDegradesToString(t *testing.T) {
	ext := FromValue(ly.Unit{Amount: 2, Name: "cm"})
	want := Value{Kind: KindString, Text: `2\cm`}
	if diff := cmp.Diff(want, ext); diff != "" {
		t.Fatalf("degraded value mismatch (-want +got):\n%s", diff)
	}

	back, diags := ToValue(ext)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if diff := cmp.Diff(ly.String(`2\cm`), back); diff != "" {
		t.Fatalf("reverse mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidFragmentFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"unterminated scheme", SchemeFragment("#(unbalanced")},
		{"bad music event", MusicFragment("{ q4 }")},
		{"trailing content", SchemeFragment("#1 x = 2")},
		{"empty fragment", MarkupFragment("")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			back, diags := ToValue(tc.value)
			if diff := cmp.Diff(ly.String(tc.value.Text), back); diff != "" {
				t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
			}
			if len(diags) != 1 {
				t.Fatalf("expected one diagnostic, got %d", len(diags))
			}
			if diags[0].Code != string(errors.ErrDegradedValue) {
				t.Fatalf("diagnostic code = %q, want %q", diags[0].Code, errors.ErrDegradedValue)
			}
		})
	}
}

func TestToValueUnknownKind(t *testing.T) {
	back, diags := ToValue(Value{Kind: "blob", Text: "x"})
	if diff := cmp.Diff(ly.String("x"), back); diff != "" {
		t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
	}
	if len(diags) != 1 || diags[0].Code != string(errors.ErrDegradedValue) {
		t.Fatalf("expected one degradation diagnostic, got %v", diags)
	}
}
