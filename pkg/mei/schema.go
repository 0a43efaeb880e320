package mei

// elementSpec declares one element kind: whether it carries mixed
// content, which attributes it recognizes beyond the global set, and
// which child tags are legal inside it. The full MEI schema has
// around 150 element kinds; this table carries the subset the
// conversion core touches and is extended by adding rows, not code.
type elementSpec struct {
	mixed    bool
	attrs    []string
	children []Tag
}

// Attributes recognized on every element.
var globalAttrs = []string{"xml:id", "xml:lang", "label", "type"}

var vocabulary = map[Tag]elementSpec{
	"mei": {
		attrs:    []string{"meiversion"},
		children: []Tag{"meiHead", "music"},
	},
	"meiHead": {
		children: []Tag{"fileDesc"},
	},
	"fileDesc": {
		children: []Tag{"titleStmt", "pubStmt"},
	},
	"titleStmt": {
		children: []Tag{"title", "respStmt", "composer", "lyricist", "arranger"},
	},
	"title": {
		mixed:    true,
		children: []Tag{"rend", "ref"},
	},
	"respStmt": {
		children: []Tag{"persName"},
	},
	"persName": {
		mixed: true,
		attrs: []string{"role"},
	},
	"composer": {
		mixed:    true,
		children: []Tag{"persName"},
	},
	"lyricist": {
		mixed:    true,
		children: []Tag{"persName"},
	},
	"arranger": {
		mixed:    true,
		children: []Tag{"persName"},
	},
	"pubStmt": {
		children: []Tag{"publisher", "date", "availability"},
	},
	"publisher": {
		mixed: true,
	},
	"date": {
		mixed: true,
		attrs: []string{"isodate"},
	},
	"availability": {
		mixed:    true,
		children: []Tag{"p"},
	},
	"music": {
		children: []Tag{"body"},
	},
	"body": {
		children: []Tag{"mdiv"},
	},
	"mdiv": {
		attrs:    []string{"n"},
		children: []Tag{"score"},
	},
	"score": {
		children: []Tag{"scoreDef", "section"},
	},
	"scoreDef": {
		attrs:    []string{"keysig", "meter.count", "meter.unit"},
		children: []Tag{"staffGrp"},
	},
	"staffGrp": {
		attrs:    []string{"symbol"},
		children: []Tag{"staffDef"},
	},
	"staffDef": {
		attrs: []string{"n", "lines", "clef.shape", "clef.line"},
	},
	"section": {
		attrs:    []string{"n"},
		children: []Tag{"measure"},
	},
	"measure": {
		attrs:    []string{"n", "right"},
		children: []Tag{"staff", "dynam", "tempo"},
	},
	"staff": {
		attrs:    []string{"n"},
		children: []Tag{"layer"},
	},
	"layer": {
		attrs:    []string{"n"},
		children: []Tag{"note", "rest", "chord", "beam"},
	},
	"note": {
		attrs:    []string{"pname", "oct", "dur", "dots", "accid"},
		children: []Tag{"accid", "verse"},
	},
	"rest": {
		attrs: []string{"dur", "dots"},
	},
	"chord": {
		attrs:    []string{"dur", "dots"},
		children: []Tag{"note"},
	},
	"beam": {
		children: []Tag{"note", "rest", "chord"},
	},
	"accid": {
		attrs: []string{"accid"},
	},
	"verse": {
		attrs:    []string{"n"},
		children: []Tag{"syl"},
	},
	"syl": {
		mixed: true,
	},
	"dynam": {
		mixed: true,
		attrs: []string{"staff", "tstamp"},
	},
	"tempo": {
		mixed: true,
		attrs: []string{"staff", "tstamp", "mm", "mm.unit"},
	},
	"annot": {
		mixed:    true,
		children: []Tag{"p", "ref"},
	},
	"p": {
		mixed:    true,
		children: []Tag{"ref", "rend", "lb"},
	},
	"ref": {
		mixed: true,
		attrs: []string{"target"},
	},
	"rend": {
		mixed: true,
		attrs: []string{"fontstyle", "fontweight"},
	},
	"lb": {},
}

// compiledSpec is the lookup form of elementSpec with set semantics.
type compiledSpec struct {
	mixed    bool
	attrSet  map[string]struct{}
	childSet map[Tag]struct{}
}

var compiled = func() map[Tag]*compiledSpec {
	out := make(map[Tag]*compiledSpec, len(vocabulary))
	for tag, spec := range vocabulary {
		c := &compiledSpec{
			mixed:    spec.mixed,
			attrSet:  make(map[string]struct{}, len(spec.attrs)+len(globalAttrs)),
			childSet: make(map[Tag]struct{}, len(spec.children)),
		}
		for _, a := range globalAttrs {
			c.attrSet[a] = struct{}{}
		}
		for _, a := range spec.attrs {
			c.attrSet[a] = struct{}{}
		}
		for _, child := range spec.children {
			c.childSet[child] = struct{}{}
		}
		out[tag] = c
	}
	return out
}()

// Known reports whether the tag is part of the vocabulary.
func Known(tag Tag) bool {
	_, ok := compiled[tag]
	return ok
}

func lookupSpec(tag Tag) (*compiledSpec, bool) {
	spec, ok := compiled[tag]
	return spec, ok
}

func (s *compiledSpec) allowsText() bool {
	return s != nil && s.mixed
}

func (s *compiledSpec) allowsChild(tag Tag) bool {
	if s == nil {
		return false
	}
	_, ok := s.childSet[tag]
	return ok
}

func (s *compiledSpec) recognizesAttr(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.attrSet[name]
	return ok
}
