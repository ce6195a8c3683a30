// Package parser converts JSON text into a document tree in a single
// forward scan with no backtracking.
//
// The grammar it accepts is deliberately the permissive dialect of the
// rest of this module: escape sequences are never interpreted (a \" inside
// a string or key terminates it early), closing brackets are not
// independently validated beyond structural termination, an empty array
// does not parse, and bytes after the root value are ignored. The top
// level must be an object or an array.
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/valyala/fastjson/fastfloat"

	"github.com/mcncl/jsondom/internal/errors"
	"github.com/mcncl/jsondom/internal/value"
)

// Parse reads all of r and parses it as a single document
func Parse(reader io.Reader) (value.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return value.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data))
}

// ParseString parses a document from a string
func ParseString(text string) (value.Value, error) {
	if strings.TrimSpace(text) == "" {
		return value.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	if len(text) < 2 {
		return value.Value{}, errors.NewDocumentError("input too short to be a document")
	}

	s := &scanner{src: text}
	s.skipSpace()

	// Anything after the root value is ignored.
	switch s.peek() {
	case '{':
		return s.parseObject()
	case '[':
		return s.parseArray()
	default:
		return value.Value{}, errors.NewDocumentError("top-level value must be an object or an array")
	}
}

// ParseFile parses a document from a file path
func ParseFile(filePath string) (value.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return value.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return value.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return value.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return value.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return value.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}

// scanner is the whole parser state: the input and the current index.
// Every production advances the index and returns a completed node or an
// error; a failed parse aborts outright, there is no partial result.
type scanner struct {
	src string
	i   int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func (s *scanner) skipSpace() {
	for s.i < len(s.src) && isSpace(s.src[s.i]) {
		s.i++
	}
}

// peek returns the current byte, or 0 at end of input.
func (s *scanner) peek() byte {
	if s.i < len(s.src) {
		return s.src[s.i]
	}
	return 0
}

// errHere builds a parsing error for the current position.
func (s *scanner) errHere() error {
	if s.i < len(s.src) {
		return errors.NewParsingError(s.src[s.i], s.i)
	}
	return errors.NewParsingError(0, s.i)
}

// parseValue dispatches on the current byte to the matching production.
func (s *scanner) parseValue() (value.Value, error) {
	switch c := s.peek(); {
	case c == '{':
		return s.parseObject()
	case c == '[':
		return s.parseArray()
	case c == '"':
		return s.parseString()
	case c == 't' || c == 'f':
		return s.parseBoolean()
	case c == 'n':
		return s.parseNull()
	case c == '-' || (c >= '0' && c <= '9'):
		return s.parseNumber()
	default:
		return value.Value{}, s.errHere()
	}
}

func (s *scanner) parseNull() (value.Value, error) {
	if strings.HasPrefix(s.src[s.i:], "null") {
		s.i += len("null")
		return value.Null(), nil
	}
	return value.Value{}, s.errHere()
}

func (s *scanner) parseBoolean() (value.Value, error) {
	if strings.HasPrefix(s.src[s.i:], "true") {
		s.i += len("true")
		return value.Bool(true), nil
	}
	if strings.HasPrefix(s.src[s.i:], "false") {
		s.i += len("false")
		return value.Bool(false), nil
	}
	return value.Value{}, s.errHere()
}

// parseNumber scans the maximal numeric-looking prefix and converts it in
// one go; fastfloat is locale-independent, unlike a C strtod.
func (s *scanner) parseNumber() (value.Value, error) {
	start := s.i
	j := s.i
	for j < len(s.src) && isNumberChar(s.src[j]) {
		j++
	}
	f, err := fastfloat.Parse(s.src[start:j])
	if err != nil {
		return value.Value{}, errors.NewParsingError(s.src[start], start)
	}
	s.i = j
	return value.Number(f), nil
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

// parseString scans raw bytes up to the next quote. No escape sequence is
// interpreted, so an embedded \" ends the string at the backslash's quote.
func (s *scanner) parseString() (value.Value, error) {
	start := s.i + 1
	for j := start; j < len(s.src); j++ {
		if s.src[j] == '"' {
			s.i = j + 1
			return value.String(s.src[start:j]), nil
		}
	}
	return value.Value{}, errors.NewParsingError(0, len(s.src))
}

// scanKey reads a quoted object key verbatim, with the same no-escape
// rule as parseString.
func (s *scanner) scanKey() (string, error) {
	start := s.i + 1
	for j := start; j < len(s.src); j++ {
		if s.src[j] == '"' {
			s.i = j + 1
			return s.src[start:j], nil
		}
	}
	return "", errors.NewParsingError(0, len(s.src))
}

// parseArray parses '[' value (',' value)* ']'. The first element is
// dispatched before ']' is ever considered, so "[]" fails to parse; a
// missing closing bracket terminates the array without complaint.
func (s *scanner) parseArray() (value.Value, error) {
	s.i++ // consume '['
	arr := value.Array()
	for {
		s.skipSpace()
		elem, err := s.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		_ = arr.Append(elem)
		s.skipSpace()
		if s.peek() != ',' {
			break
		}
		s.i++
	}
	if s.peek() == ']' {
		s.i++
	}
	return arr, nil
}

// parseObject parses '{' ("key" ':' value)* '}'. The ':' separator is
// skipped without validation; a missing closing brace terminates the
// object without complaint.
func (s *scanner) parseObject() (value.Value, error) {
	s.i++ // consume '{'
	obj := value.Object()
	for {
		s.skipSpace()
		if s.peek() == '}' {
			s.i++
			return obj, nil
		}
		if s.peek() != '"' {
			return value.Value{}, s.errHere()
		}
		key, err := s.scanKey()
		if err != nil {
			return value.Value{}, err
		}
		s.skipSpace()
		if s.peek() == ':' {
			s.i++
		}
		s.skipSpace()
		child, err := s.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		_ = obj.SetKey(key, child)
		s.skipSpace()
		if s.peek() != ',' {
			break
		}
		s.i++
	}
	if s.peek() == '}' {
		s.i++
	}
	return obj, nil
}
