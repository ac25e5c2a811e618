// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind selects how value words are converted for a parameter.
type Kind int

const (
	// KindValue parameters convert exactly one word.
	KindValue Kind = iota
	// KindBool parameters are true when given without a value.
	KindBool
	// KindString parameters take every following word, joined by spaces.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	}
	return "value"
}

// Char is a single character value. Use Param[Char] rather than
// Param[rune], which is parsed as an integer.
type Char rune

func (c Char) String() string { return string(c) }

// Parameter is a declared command-line parameter. Its identity within a
// Parser is its position in the list passed to New.
type Parameter interface {
	ShortKeys() []rune
	LongKeys() []string
	Brief() string
	Required() bool
	Kind() Kind

	ContainsShort(r rune) bool
	ContainsLong(name string) bool

	// HasDefault reports whether a default value is attached.
	HasDefault() bool
	// HasValue reports whether a current or default value is available.
	HasValue() bool
	// Value returns the current value, else the default, else the zero
	// value of the parameter's type.
	Value() any
	// Zero returns the zero value of the parameter's type.
	Zero() any
	// RemoveValue clears the current value. The default is kept.
	RemoveValue()

	// Assign converts words into the current value. It returns the text it
	// did not consume.
	Assign(words []string) (rest []string, err error)
	// AssignBool sets a boolean parameter. It fails for other kinds.
	AssignBool(v bool) error
}

// definer is implemented by parameters that can report a declaration
// problem, such as a value type with no known conversion.
type definer interface {
	definitionErr() error
}

// ErrNoValue is returned by Assign when a parameter that needs a value word
// received none.
var ErrNoValue = errors.New("no value given")

// converter turns one word into a value, returning any text it left unread.
type converter[T any] func(word string) (v T, rest string, err error)

// Param is a typed parameter. Create one with Optional or Required.
//
// Character, integer, unsigned and float parameters read the longest prefix
// of their value word that forms a value of their type, as in "5" from
// "5x". Text left after that prefix, like any further value word, is
// unparsed_argument; a word with no such prefix is incompatible_argument.
// Other types, and converters installed with WithConverter, read the whole
// word.
type Param[T any] struct {
	shorts   []rune
	longs    []string
	brief    string
	required bool
	kind     Kind
	conv     converter[T]
	defErr   error

	def    T
	hasDef bool
	val    T
	hasVal bool
}

// Optional declares a parameter that may be omitted from the command line.
func Optional[T any](shorts []rune, longs []string, brief string) *Param[T] {
	return newParam[T](shorts, longs, brief, false)
}

// Required declares a parameter that must be given on the command line
// unless it has a default.
func Required[T any](shorts []rune, longs []string, brief string) *Param[T] {
	return newParam[T](shorts, longs, brief, true)
}

func newParam[T any](shorts []rune, longs []string, brief string, required bool) *Param[T] {
	p := &Param[T]{
		shorts:   slices.Clone(shorts),
		longs:    slices.Clone(longs),
		brief:    brief,
		required: required,
	}
	p.kind, p.conv, p.defErr = defaultConverter[T]()
	return p
}

// Default attaches a default value and returns p.
func (p *Param[T]) Default(v T) *Param[T] {
	p.def = v
	p.hasDef = true
	return p
}

// WithConverter replaces the conversion used for value words and returns p.
// For string parameters fn receives the joined words.
func (p *Param[T]) WithConverter(fn func(word string) (T, error)) *Param[T] {
	p.conv = func(word string) (T, string, error) {
		v, err := fn(word)
		return v, "", err
	}
	p.defErr = nil
	return p
}

// Convert converts one word the way Assign would, without storing it.
func (p *Param[T]) Convert(word string) (T, error) {
	if p.defErr != nil {
		var zero T
		return zero, p.defErr
	}
	v, rest, err := p.conv(word)
	if err == nil && rest != "" {
		err = fmt.Errorf("unparsed text %q", rest)
	}
	return v, err
}

func (p *Param[T]) ShortKeys() []rune  { return p.shorts }
func (p *Param[T]) LongKeys() []string { return p.longs }
func (p *Param[T]) Brief() string      { return p.brief }
func (p *Param[T]) Required() bool     { return p.required }
func (p *Param[T]) Kind() Kind         { return p.kind }
func (p *Param[T]) HasDefault() bool   { return p.hasDef }
func (p *Param[T]) HasValue() bool     { return p.hasVal || p.hasDef }

func (p *Param[T]) Zero() any {
	var zero T
	return zero
}

func (p *Param[T]) RemoveValue() {
	var zero T
	p.val, p.hasVal = zero, false
}

// RemoveDefault detaches the default value.
func (p *Param[T]) RemoveDefault() {
	var zero T
	p.def, p.hasDef = zero, false
}

func (p *Param[T]) ContainsShort(r rune) bool {
	return slices.Contains(p.shorts, r)
}

func (p *Param[T]) ContainsLong(name string) bool {
	return slices.Contains(p.longs, name)
}

// DefaultValue returns the default value, if one is attached.
func (p *Param[T]) DefaultValue() (T, bool) {
	return p.def, p.hasDef
}

// SetValue sets the current value.
func (p *Param[T]) SetValue(v T) {
	p.val = v
	p.hasVal = true
}

// Get returns the current value, else the default. The boolean is false
// when neither is available.
func (p *Param[T]) Get() (T, bool) {
	if p.hasVal {
		return p.val, true
	}
	return p.def, p.hasDef
}

func (p *Param[T]) Value() any {
	v, _ := p.Get()
	return v
}

func (p *Param[T]) definitionErr() error {
	return p.defErr
}

func (p *Param[T]) Assign(words []string) ([]string, error) {
	if p.defErr != nil {
		return words, p.defErr
	}
	switch p.kind {
	case KindString:
		v, _, err := p.conv(strings.Join(words, " "))
		if err != nil {
			return words, err
		}
		p.SetValue(v)
		return nil, nil
	case KindBool:
		if len(words) == 0 {
			return nil, p.AssignBool(true)
		}
	}
	if len(words) == 0 {
		return nil, ErrNoValue
	}
	v, rest, err := p.conv(words[0])
	if err != nil {
		return words, err
	}
	p.SetValue(v)
	var left []string
	if rest != "" {
		left = append(left, rest)
	}
	return append(left, words[1:]...), nil
}

func (p *Param[T]) AssignBool(b bool) error {
	if p.kind != KindBool {
		return fmt.Errorf("%s parameter cannot take a boolean", p.kind)
	}
	var v T
	reflect.ValueOf(&v).Elem().SetBool(b)
	p.SetValue(v)
	return nil
}

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationType        = reflect.TypeFor[time.Duration]()
	charType            = reflect.TypeFor[Char]()
)

// defaultConverter picks the conversion for T from its type.
func defaultConverter[T any]() (Kind, converter[T], error) {
	typ := reflect.TypeFor[T]()
	switch typ.Kind() {
	case reflect.Bool:
		return KindBool, reflectConverter[T](typ, func(word string, v reflect.Value) error {
			b, err := ParseBool(word)
			v.SetBool(b)
			return err
		}), nil
	case reflect.String:
		return KindString, reflectConverter[T](typ, func(word string, v reflect.Value) error {
			v.SetString(word)
			return nil
		}), nil
	}

	switch {
	case typ == charType:
		return KindValue, func(word string) (T, string, error) {
			var v T
			r, size := utf8.DecodeRuneInString(word)
			if r == utf8.RuneError && size <= 1 {
				return v, "", fmt.Errorf("%q is not a character", word)
			}
			reflect.ValueOf(&v).Elem().SetInt(int64(r))
			return v, word[size:], nil
		}, nil
	case typ == durationType:
		return KindValue, reflectConverter[T](typ, func(word string, v reflect.Value) error {
			d, err := time.ParseDuration(word)
			v.SetInt(int64(d))
			return err
		}), nil
	case reflect.PointerTo(typ).Implements(textUnmarshalerType):
		return KindValue, func(word string) (T, string, error) {
			var v T
			err := any(&v).(encoding.TextUnmarshaler).UnmarshalText([]byte(word))
			return v, "", err
		}, nil
	case typ.Kind() == reflect.Pointer && typ.Implements(textUnmarshalerType):
		return KindValue, func(word string) (T, string, error) {
			pv := reflect.New(typ.Elem())
			if err := pv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(word)); err != nil {
				var zero T
				return zero, "", err
			}
			return pv.Interface().(T), "", nil
		}, nil
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindValue, prefixConverter[T](typ, signedPrefix, func(word string, v reflect.Value) error {
			n, err := strconv.ParseInt(word, 10, typ.Bits())
			if err != nil {
				return numError(err)
			}
			v.SetInt(n)
			return nil
		}), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindValue, prefixConverter[T](typ, unsignedPrefix, func(word string, v reflect.Value) error {
			n, err := strconv.ParseUint(word, 10, typ.Bits())
			if err != nil {
				return numError(err)
			}
			v.SetUint(n)
			return nil
		}), nil
	case reflect.Float32, reflect.Float64:
		return KindValue, prefixConverter[T](typ, floatPrefix, func(word string, v reflect.Value) error {
			f, err := strconv.ParseFloat(word, typ.Bits())
			if err != nil {
				return numError(err)
			}
			v.SetFloat(f)
			return nil
		}), nil
	}

	err := fmt.Errorf("no conversion for type %v", typ)
	return KindValue, func(string) (T, string, error) {
		var zero T
		return zero, "", err
	}, err
}

func reflectConverter[T any](typ reflect.Type, set func(word string, v reflect.Value) error) converter[T] {
	return func(word string) (T, string, error) {
		v := reflect.New(typ).Elem()
		if err := set(word, v); err != nil {
			var zero T
			return zero, "", err
		}
		return v.Interface().(T), "", nil
	}
}

// prefixConverter converts the part of a word that scan accepts and returns
// the text after it.
func prefixConverter[T any](typ reflect.Type, scan func(word string) int, set func(word string, v reflect.Value) error) converter[T] {
	conv := reflectConverter[T](typ, set)
	return func(word string) (T, string, error) {
		n := scan(word)
		if n == 0 {
			var zero T
			return zero, "", fmt.Errorf("%q is not a %v", word, typ)
		}
		v, _, err := conv(word[:n])
		return v, word[n:], err
	}
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// digits returns the index of the first non-digit at or after i.
func digits(word string, i int) int {
	for i < len(word) && isDigit(word[i]) {
		i++
	}
	return i
}

// signedPrefix returns the length of the optionally signed decimal integer
// at the start of word, or 0.
func signedPrefix(word string) int {
	i := 0
	if i < len(word) && (word[i] == '+' || word[i] == '-') {
		i++
	}
	if end := digits(word, i); end > i {
		return end
	}
	return 0
}

// unsignedPrefix is like signedPrefix but rejects a minus sign.
func unsignedPrefix(word string) int {
	if strings.HasPrefix(word, "-") {
		return 0
	}
	return signedPrefix(word)
}

// floatPrefix returns the length of the decimal float at the start of word:
// sign, digits with an optional fraction, and an optional exponent.
func floatPrefix(word string) int {
	i := 0
	if i < len(word) && (word[i] == '+' || word[i] == '-') {
		i++
	}
	start := i
	i = digits(word, i)
	n := i - start
	if i < len(word) && word[i] == '.' {
		end := digits(word, i+1)
		n += end - i - 1
		i = end
	}
	if n == 0 {
		return 0
	}
	if i < len(word) && (word[i] == 'e' || word[i] == 'E') {
		j := i + 1
		if j < len(word) && (word[j] == '+' || word[j] == '-') {
			j++
		}
		if end := digits(word, j); end > j {
			i = end
		}
	}
	return i
}

// numError strips the strconv function name from a conversion error.
func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return fmt.Errorf("%q: %w", ne.Num, ne.Err)
	}
	return err
}

// ParseBool reads "true" or "false", falling back to an integer where any
// nonzero value is true.
func ParseBool(word string) (bool, error) {
	switch word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	n, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		return false, fmt.Errorf("%q is neither a boolean nor an integer", word)
	}
	return n != 0, nil
}
