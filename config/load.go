package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/layoutkit/model"
	"github.com/tsawler/layoutkit/tables"
)

var (
	// ErrUnknownOption reports an option name that is not recognized.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidOption reports a value that cannot be used for its option.
	ErrInvalidOption = errors.New("invalid option value")
)

// fieldIndex maps option names to Options field indices.
var fieldIndex = func() map[string]int {
	idx := make(map[string]int)
	t := reflect.TypeOf(Options{})
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("yaml"), ",")[0]
		if name != "" && name != "-" {
			idx[name] = i
		}
	}
	return idx
}()

// Names returns every recognized option name, sorted.
func Names() []string {
	names := make([]string, 0, len(fieldIndex))
	for n := range fieldIndex {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load reads a YAML or JSON options file over the defaults. Unknown names
// and unusable values are returned as warnings and leave the default in
// place; only an unreadable or unparsable file is an error.
func Load(path string) (*Options, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read options %s: %w", path, err)
	}
	opts, warnings, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse options %s: %w", path, err)
	}
	return opts, warnings, nil
}

// Decode parses options from YAML (JSON is accepted as YAML) over the
// defaults.
func Decode(data []byte) (*Options, []error, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}

	opts := Default()
	names := make([]string, 0, len(raw))
	for n := range raw {
		names = append(names, n)
	}
	sort.Strings(names)

	var warnings []error
	v := reflect.ValueOf(opts).Elem()
	for _, name := range names {
		i, ok := fieldIndex[name]
		if !ok {
			warnings = append(warnings, fmt.Errorf("%w: %s", ErrUnknownOption, name))
			continue
		}
		field := v.Field(i)
		tmp := reflect.New(field.Type())
		node := raw[name]
		if err := node.Decode(tmp.Interface()); err != nil {
			warnings = append(warnings, fmt.Errorf("%w: %s: %v", ErrInvalidOption, name, err))
			continue
		}
		field.Set(tmp.Elem())
	}
	return opts, append(warnings, opts.check()...), nil
}

// FromMap applies name=value overrides, as given on a command line. Every
// override that cannot be applied yields a warning.
func (o *Options) FromMap(values map[string]string) []error {
	names := make([]string, 0, len(values))
	for n := range values {
		names = append(names, n)
	}
	sort.Strings(names)

	var warnings []error
	for _, n := range names {
		if err := o.Set(n, values[n]); err != nil {
			warnings = append(warnings, err)
		}
	}
	return append(warnings, o.check()...)
}

// Set parses value for the named option. Booleans accept the forms of
// strconv.ParseBool.
func (o *Options) Set(name, value string) error {
	i, ok := fieldIndex[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	field := reflect.ValueOf(o).Elem().Field(i)
	value = strings.TrimSpace(value)

	invalid := func(err error) error {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidOption, name, value, err)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return invalid(err)
		}
		field.SetFloat(f)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(err)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid(err)
		}
		field.SetBool(b)
	case reflect.Ptr:
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(err)
		}
		field.Set(reflect.ValueOf(&n))
	default:
		return invalid(fmt.Errorf("unsupported kind %s", field.Kind()))
	}
	return nil
}

// check resets values that parse but mean nothing.
func (o *Options) check() []error {
	var warnings []error
	if mode := model.ParseDataMode(o.TableDataMode); string(mode) != o.TableDataMode {
		warnings = append(warnings, fmt.Errorf("%w: table_data_mode=%q, using %s", ErrInvalidOption, o.TableDataMode, mode))
		o.TableDataMode = string(mode)
	}
	def := tables.DefaultConfig()
	if o.LineMinCols < 1 {
		warnings = append(warnings, fmt.Errorf("%w: line_minCols=%d, using %d", ErrInvalidOption, o.LineMinCols, def.MinCols))
		o.LineMinCols = def.MinCols
	}
	if o.LineMinRows < 1 {
		warnings = append(warnings, fmt.Errorf("%w: line_minRows=%d, using %d", ErrInvalidOption, o.LineMinRows, def.MinRows))
		o.LineMinRows = def.MinRows
	}
	return warnings
}
