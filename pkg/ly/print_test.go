package ly

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatValueRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"string", String("Adagio"), `"Adagio"`},
		{"string with quote", String(`say "hi"`), `"say \"hi\""`},
		{"integer", Number(42), "42"},
		{"decimal", Number(2.5), "2.5"},
		{"negative", Number(-3), "-3"},
		{"large number", Number(1000000), "1000000"},
		{"tiny number", Number(0.0000001), "0.0000001"},
		{"bool true", Bool(true), "##t"},
		{"bool false", Bool(false), "##f"},
		{"identifier", Identifier("oddHeaderMarkup"), `\oddHeaderMarkup`},
		{"unit", Unit{Amount: 2, Name: "cm"}, `2\cm`},
		{"scheme symbol", Scheme{Expr: SchemeSymbol("red")}, "#red"},
		{
			"scheme list with large number",
			Scheme{Expr: SchemeList{SchemeSymbol("x"), SchemeNumber(1000000)}},
			"#(x 1000000)",
		},
		{
			"scheme list with tiny number",
			Scheme{Expr: SchemeList{SchemeSymbol("x"), SchemeNumber(0.0000001)}},
			"#(x 0.0000001)",
		},
		{
			"scheme quoted list",
			Scheme{Expr: SchemeQuote{Expr: SchemeList{SchemeNumber(1), SchemeString("a")}}},
			`#'(1 "a")`,
		},
		{"markup word", Markup{Body: MarkupText("Adagio")}, `\markup Adagio`},
		{"markup spaced text", Markup{Body: MarkupText("molto vivace")}, `\markup "molto vivace"`},
		{"markup empty text", Markup{Body: MarkupText("")}, `\markup ""`},
		{
			"markup command",
			Markup{Body: MarkupCommand{
				Name: "bold",
				Args: []MarkupNode{MarkupLine{MarkupText("molto"), MarkupText("vivace")}},
			}},
			`\markup \bold { molto vivace }`,
		},
		{
			"markuplist",
			MarkupList{Items: []MarkupNode{MarkupText("first"), MarkupText("second")}},
			`\markuplist { first second }`,
		},
		{
			"music",
			Music{Body: &MusicSeq{Events: []MusicNode{
				Note{Pitch: "c", Octave: 1, Duration: "4", Dots: 1},
				Rest{Duration: "8"},
				MusicCommand{Name: "break"},
				&MusicSeq{Events: []MusicNode{
					Note{Pitch: "d", Octave: -1, Duration: "2"},
				}},
			}}},
			`{ c'4. r8 \break { d,2 } }`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatValue(tc.value)
			if got != tc.want {
				t.Fatalf("FormatValue = %q, want %q", got, tc.want)
			}

			back := parseValue(t, got)
			if diff := cmp.Diff(tc.value, back); diff != "" {
				t.Fatalf("reparse mismatch (-want +got):\n%s", diff)
			}
			if again := FormatValue(back); again != got {
				t.Fatalf("unstable output: %q then %q", got, again)
			}
		})
	}
}

func TestFormatSchemeBoolCanonicalizes(t *testing.T) {
	got := FormatValue(Scheme{Expr: SchemeBool(true)})
	if got != "##t" {
		t.Fatalf("FormatValue = %q, want %q", got, "##t")
	}
	back := parseValue(t, got)
	if diff := cmp.Diff(Bool(true), back); diff != "" {
		t.Fatalf("expected native bool after reparse (-want +got):\n%s", diff)
	}
}

func TestFormatPath(t *testing.T) {
	got := FormatPath(PropertyPath{"SpacingSpanner", "strict-note-spacing"})
	if got != "SpacingSpanner.strict-note-spacing" {
		t.Fatalf("FormatPath = %q", got)
	}
}

func TestOutputDefStringRoundTrip(t *testing.T) {
	def := &OutputDef{
		Kind: KindLayout,
		Assignments: []Assignment{
			{Name: "indent", Value: Unit{Amount: 0, Name: "cm"}},
		},
		Contexts: []ContextBlock{
			{Items: []ContextItem{
				ContextRef{Name: "Score"},
				Remove{Name: "Bar_number_engraver"},
				Override{
					Path:  PropertyPath{"SpacingSpanner", "strict-note-spacing"},
					Value: Bool(true),
				},
				Revert{Path: PropertyPath{"NoteHead", "color"}},
			}},
		},
	}

	text := def.String()
	file, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", text, err)
	}
	if len(file.OutputDefs) != 1 {
		t.Fatalf("expected one output def, got %d", len(file.OutputDefs))
	}
	if diff := cmp.Diff(def, file.OutputDefs[0]); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if again := file.OutputDefs[0].String(); again != text {
		t.Fatalf("unstable output:\n%s\nthen:\n%s", text, again)
	}
}

func TestFileStringRoundTrip(t *testing.T) {
	file := &File{
		Assignments: []Assignment{
			{Name: "title", Value: String("Adagio")},
			{Name: "tune", Value: Music{Body: &MusicSeq{Events: []MusicNode{
				Note{Pitch: "c", Octave: 1, Duration: "4"},
				Note{Pitch: "e", Octave: 1, Duration: "4"},
			}}}},
		},
		OutputDefs: []*OutputDef{
			{
				Kind: KindHeader,
				Assignments: []Assignment{
					{Name: "tagline", Value: Bool(false)},
				},
			},
			{
				Kind: KindMidi,
				Contexts: []ContextBlock{
					{Items: []ContextItem{
						ContextRef{Name: "Staff"},
						Consists{Name: "Staff_performer"},
					}},
				},
			},
		},
	}

	text := file.String()
	back, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", text, err)
	}
	if diff := cmp.Diff(file, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if again := back.String(); again != text {
		t.Fatalf("unstable output:\n%s\nthen:\n%s", text, again)
	}
}

func TestOutputDefStringNil(t *testing.T) {
	var def *OutputDef
	if got := def.String(); got != "" {
		t.Fatalf("expected empty string for nil def, got %q", got)
	}
}
