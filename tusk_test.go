package tusk_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"

	tusk "github.com/sonovice/tusk-go"
	"github.com/sonovice/tusk-go/errors"
	"github.com/sonovice/tusk-go/pkg/ly"
)

const songXML = `<?xml version="1.0"?>
<mei meiversion="5.0">
  <meiHead>
    <fileDesc>
      <titleStmt>
        <title>Dichterliebe</title>
        <composer><persName>Robert Schumann</persName></composer>
        <lyricist><persName>Heinrich Heine</persName></lyricist>
      </titleStmt>
      <pubStmt>
        <date isodate="1840">1840</date>
      </pubStmt>
    </fileDesc>
  </meiHead>
  <music>
    <body>
      <mdiv>
        <score>
          <scoreDef>
            <staffGrp>
              <staffDef n="1" lines="5"/>
            </staffGrp>
          </scoreDef>
          <section>
            <measure n="1">
              <staff n="1">
                <layer n="1">
                  <note pname="c" oct="4" dur="4"/>
                  <rest dur="4"/>
                </layer>
              </staff>
            </measure>
          </section>
        </score>
      </mdiv>
    </body>
  </music>
</mei>`

func TestParseAndValidate(t *testing.T) {
	doc, err := tusk.Parse(strings.NewReader(songXML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Root() == nil || doc.Root().Tag != "mei" {
		t.Fatalf("unexpected root: %+v", doc.Root())
	}
	if err := doc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateReportsFindings(t *testing.T) {
	doc, err := tusk.Parse(strings.NewReader(
		`<measure><staff n="1"><layer n="1"><note pname="c" oct="4" dur="4"/></layer></staff></measure>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = doc.Validate()
	if err == nil {
		t.Fatal("expected diagnostics")
	}
	diags, ok := errors.AsDiagnostics(err)
	if !ok {
		t.Fatalf("expected diagnostics, got %T", err)
	}
	found := false
	for _, d := range diags {
		if d.Code == string(errors.ErrRequiredAttributeMissing) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing-attribute diagnostic, got %v", diags)
	}
}

func TestHeader(t *testing.T) {
	doc, err := tusk.Parse(strings.NewReader(songXML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def := doc.Header()
	if def == nil {
		t.Fatal("expected header block")
	}
	if def.Kind != ly.KindHeader {
		t.Fatalf("kind = %q", def.Kind)
	}

	got := map[string]ly.Value{}
	for _, a := range def.Assignments {
		got[a.Name] = a.Value
	}
	if got["title"] != ly.String("Dichterliebe") {
		t.Fatalf("title = %v", got["title"])
	}
	if got["composer"] != ly.String("Robert Schumann") {
		t.Fatalf("composer = %v", got["composer"])
	}
	if got["poet"] != ly.String("Heinrich Heine") {
		t.Fatalf("poet = %v", got["poet"])
	}
	if got["copyright"] != ly.String("1840") {
		t.Fatalf("copyright = %v", got["copyright"])
	}
	if got["tagline"] != ly.Bool(false) {
		t.Fatalf("tagline = %v", got["tagline"])
	}

	// The derived block is valid LilyPond.
	if _, err := ly.ParseString(def.String()); err != nil {
		t.Fatalf("header does not reparse: %v", err)
	}
}

func TestHeaderNoMetadata(t *testing.T) {
	doc, err := tusk.Parse(strings.NewReader(`<measure n="1"/>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def := doc.Header(); def != nil {
		t.Fatalf("expected nil header, got %+v", def)
	}
}

func TestEnsureIDsAndWriteXML(t *testing.T) {
	doc, err := tusk.Parse(strings.NewReader(`<measure n="1"><staff n="1"><layer n="1"/></staff></measure>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n := doc.EnsureIDs(); n != 3 {
		t.Fatalf("EnsureIDs = %d, want 3", n)
	}

	var buf bytes.Buffer
	if err := doc.WriteXML(&buf); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	if !strings.Contains(buf.String(), `xml:id=`) {
		t.Fatalf("serialized output missing ids:\n%s", buf.String())
	}
}

func TestParseFilePlainAndGzip(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "song.mei")
	if err := os.WriteFile(plain, []byte(songXML), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(songXML)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	compressed := filepath.Join(dir, "song.mei.gz")
	if err := os.WriteFile(compressed, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	for _, path := range []string{plain, compressed} {
		doc, err := tusk.ParseFile(path)
		if err != nil {
			t.Fatalf("ParseFile(%s): %v", path, err)
		}
		if doc.Root().Tag != "mei" {
			t.Fatalf("ParseFile(%s): root = %q", path, doc.Root().Tag)
		}
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := tusk.ParseFile(filepath.Join(t.TempDir(), "absent.mei")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := tusk.NewOptions().Validate(); err != nil {
		t.Fatalf("default options: %v", err)
	}
	if err := tusk.NewOptions().WithMaxDepth(-1).Validate(); err == nil {
		t.Fatal("expected error for negative depth")
	}
}

func TestParseWithDepthLimit(t *testing.T) {
	opts := tusk.NewOptions().WithMaxDepth(2)
	_, err := tusk.ParseWithOptions(strings.NewReader(songXML), opts)
	if err == nil {
		t.Fatal("expected depth limit error")
	}
}

func TestParseNilReader(t *testing.T) {
	if _, err := tusk.Parse(nil); err == nil {
		t.Fatal("expected error for nil reader")
	}
}

func TestParseConcurrent(t *testing.T) {
	const goroutines = 8
	const iterations = 25

	errCh := make(chan error, goroutines*iterations)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				doc, err := tusk.Parse(strings.NewReader(songXML))
				if err != nil {
					errCh <- err
					return
				}
				if err := doc.Validate(); err != nil {
					errCh <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Fatalf("concurrent parse error: %v", err)
	}
}
