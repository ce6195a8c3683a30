package parser

import (
	stderrors "errors"
	"os"
	"strings"
	"testing"

	"github.com/mcncl/jsondom/internal/errors"
	"github.com/mcncl/jsondom/internal/value"
)

func TestParseString_SimpleObject(t *testing.T) {
	tree, err := ParseString(`{"a":1,"b":[1,2,3]}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	a, err := tree.Key("a")
	if err != nil {
		t.Fatalf("Key(a) error = %v", err)
	}
	if f, _ := a.AsNumber(); f != 1 {
		t.Errorf("a = %v, want 1", f)
	}

	b, err := tree.Key("b")
	if err != nil {
		t.Fatalf("Key(b) error = %v", err)
	}
	if size, _ := b.Size(); size != 3 {
		t.Errorf("b has %d elements, want 3", size)
	}
	for i, want := range []float64{1, 2, 3} {
		elem, err := b.Index(i)
		if err != nil {
			t.Fatalf("Index(%d) error = %v", i, err)
		}
		if f, _ := elem.AsNumber(); f != want {
			t.Errorf("b[%d] = %v, want %v", i, f, want)
		}
	}
}

func TestParseString_NestedDocument(t *testing.T) {
	tree, err := ParseString(`{"test": { "number": 45.54545, "string": "hi there!" }, "boolean": true }`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	test, err := tree.Key("test")
	if err != nil {
		t.Fatalf("Key(test) error = %v", err)
	}
	num, err := test.Key("number")
	if err != nil {
		t.Fatalf("Key(number) error = %v", err)
	}
	if f, _ := num.AsNumber(); f != 45.54545 {
		t.Errorf("number = %v, want 45.54545", f)
	}
	str, err := test.Key("string")
	if err != nil {
		t.Fatalf("Key(string) error = %v", err)
	}
	if s, _ := str.AsString(); s != "hi there!" {
		t.Errorf("string = %q, want %q", s, "hi there!")
	}
	boolean, err := tree.Key("boolean")
	if err != nil {
		t.Fatalf("Key(boolean) error = %v", err)
	}
	if b, _ := boolean.AsBool(); !b {
		t.Errorf("boolean = false, want true")
	}
}

func TestParseString_Array(t *testing.T) {
	tree, err := ParseString(`[1, "test", true, null, 3.14, -2.5]`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}
	if tree.Kind() != value.KindArray {
		t.Fatalf("root kind = %v, want array", tree.Kind())
	}
	if size, _ := tree.Size(); size != 6 {
		t.Fatalf("root has %d elements, want 6", size)
	}

	kinds := []value.Kind{
		value.KindNumber, value.KindString, value.KindBool,
		value.KindNull, value.KindNumber, value.KindNumber,
	}
	for i, want := range kinds {
		elem, err := tree.Index(i)
		if err != nil {
			t.Fatalf("Index(%d) error = %v", i, err)
		}
		if elem.Kind() != want {
			t.Errorf("element %d kind = %v, want %v", i, elem.Kind(), want)
		}
	}

	last, _ := tree.Index(5)
	if f, _ := last.AsNumber(); f != -2.5 {
		t.Errorf("last element = %v, want -2.5", f)
	}
}

func TestParseString_EmptyObject(t *testing.T) {
	tree, err := ParseString(`{}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}
	if size, _ := tree.Size(); size != 0 {
		t.Errorf("size = %d, want 0", size)
	}
}

// The array production dispatches on the first element before it ever
// looks for ']', so an empty array does not parse.
func TestParseString_EmptyArrayFails(t *testing.T) {
	_, err := ParseString(`[]`)
	if err == nil {
		t.Fatal("ParseString(\"[]\") error = nil, want parsing error")
	}
	var pe *errors.ParseError
	if !stderrors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Char != ']' {
		t.Errorf("offending char = %q, want ']'", pe.Char)
	}
}

func TestParseString_UnterminatedString(t *testing.T) {
	_, err := ParseString(`{"a": "hello`)
	if err == nil {
		t.Fatal("ParseString() error = nil, want parsing error")
	}
	var pe *errors.ParseError
	if !stderrors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Char != 0 {
		t.Errorf("offending char = %q, want end-of-input marker", pe.Char)
	}
	if pe.Offset != len(`{"a": "hello`) {
		t.Errorf("offset = %d, want %d", pe.Offset, len(`{"a": "hello`))
	}
}

// No escape handling: the quote after the backslash ends the string. The
// rest of the entry terminates the object structurally, so the parse
// still succeeds, with the truncated payload.
func TestParseString_EscapedQuoteTerminatesEarly(t *testing.T) {
	tree, err := ParseString(`{"a": "he said \"hi\", then left"}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}
	a, err := tree.Key("a")
	if err != nil {
		t.Fatalf("Key(a) error = %v", err)
	}
	if s, _ := a.AsString(); s != `he said \` {
		t.Errorf("string = %q, want %q", s, `he said \`)
	}
}

func TestParseString_TopLevelScalarRejected(t *testing.T) {
	for _, input := range []string{`"hello"`, `true`, `12345`, `null`} {
		_, err := ParseString(input)
		if !stderrors.Is(err, errors.ErrInvalidDocument) {
			t.Errorf("ParseString(%q) error = %v, want ErrInvalidDocument", input, err)
		}
	}
}

func TestParseString_ShortInput(t *testing.T) {
	_, err := ParseString(`{`)
	if !stderrors.Is(err, errors.ErrInvalidDocument) {
		t.Errorf("ParseString(\"{\") error = %v, want ErrInvalidDocument", err)
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := ParseString(input)
		if !stderrors.Is(err, errors.ErrEmptyInput) {
			t.Errorf("ParseString(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestParseString_BadLiteral(t *testing.T) {
	for _, input := range []string{`{"a": tru}`, `{"a": nul}`, `{"a": flase}`} {
		_, err := ParseString(input)
		var pe *errors.ParseError
		if !stderrors.As(err, &pe) {
			t.Errorf("ParseString(%q) error = %v, want *ParseError", input, err)
		}
	}
}

func TestParseString_InvalidLeadingCharacter(t *testing.T) {
	_, err := ParseString(`{"a": @}`)
	var pe *errors.ParseError
	if !stderrors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Char != '@' {
		t.Errorf("offending char = %q, want '@'", pe.Char)
	}
	if pe.Offset != strings.IndexByte(`{"a": @}`, '@') {
		t.Errorf("offset = %d, want %d", pe.Offset, strings.IndexByte(`{"a": @}`, '@'))
	}
}

func TestParseString_Whitespace(t *testing.T) {
	tree, err := ParseString("  \n\t { \"a\" :\n 1 ,\t\"b\" : false } ")
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}
	if size, _ := tree.Size(); size != 2 {
		t.Errorf("size = %d, want 2", size)
	}
	b, err := tree.Key("b")
	if err != nil {
		t.Fatalf("Key(b) error = %v", err)
	}
	if x, _ := b.AsBool(); x {
		t.Errorf("b = true, want false")
	}
}

// Closing brackets are not independently validated: containers terminate
// structurally on the first non-comma.
func TestParseString_UnterminatedContainers(t *testing.T) {
	tree, err := ParseString(`[1,2`)
	if err != nil {
		t.Fatalf("ParseString(\"[1,2\") error = %v, wantErr nil", err)
	}
	if size, _ := tree.Size(); size != 2 {
		t.Errorf("size = %d, want 2", size)
	}

	tree, err = ParseString(`{"a":1`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}
	if size, _ := tree.Size(); size != 1 {
		t.Errorf("size = %d, want 1", size)
	}
}

func TestParseString_TrailingBytesIgnored(t *testing.T) {
	tree, err := ParseString(`{"a":1} trailing garbage`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}
	if size, _ := tree.Size(); size != 1 {
		t.Errorf("size = %d, want 1", size)
	}
}

func TestParseString_Numbers(t *testing.T) {
	tree, err := ParseString(`{"zero":0,"neg":-12.5,"exp":1.5e3}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}
	cases := map[string]float64{"zero": 0, "neg": -12.5, "exp": 1500}
	for key, want := range cases {
		entry, err := tree.Key(key)
		if err != nil {
			t.Fatalf("Key(%s) error = %v", key, err)
		}
		if f, _ := entry.AsNumber(); f != want {
			t.Errorf("%s = %v, want %v", key, f, want)
		}
	}
}

func TestParse_Reader(t *testing.T) {
	tree, err := Parse(strings.NewReader(`{"x": true}`))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}
	x, err := tree.Key("x")
	if err != nil {
		t.Fatalf("Key(x) error = %v", err)
	}
	if b, _ := x.AsBool(); !b {
		t.Errorf("x = false, want true")
	}
}

func TestParseFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "jsondom_test_*.json")
	if err != nil {
		t.Fatalf("CreateTemp() error = %v", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := tmpFile.WriteString(`{"a": [1, 2]}`); err != nil {
		t.Fatalf("WriteString() error = %v", err)
	}
	_ = tmpFile.Close()

	tree, err := ParseFile(tmpFile.Name())
	if err != nil {
		t.Fatalf("ParseFile() error = %v, wantErr nil", err)
	}
	a, err := tree.Key("a")
	if err != nil {
		t.Fatalf("Key(a) error = %v", err)
	}
	if size, _ := a.Size(); size != 2 {
		t.Errorf("a has %d elements, want 2", size)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("/nonexistent/path/file.json")
	if !stderrors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("ParseFile() error = %v, want ErrFileNotFound", err)
	}
}

func TestParseFile_Empty(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "jsondom_empty_*.json")
	if err != nil {
		t.Fatalf("CreateTemp() error = %v", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_ = tmpFile.Close()

	_, err = ParseFile(tmpFile.Name())
	if !stderrors.Is(err, errors.ErrFileEmpty) {
		t.Errorf("ParseFile() error = %v, want ErrFileEmpty", err)
	}
}
