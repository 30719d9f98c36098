package params

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind is the value type of a pipeline parameter.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindFile
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "string"
	}
}

// Param describes one entry of the parameter surface.
type Param struct {
	Name     string
	Kind     Kind
	Required bool

	index int
}

// table holds one Param per Config field, in declaration order.
var table = mustBuildTable(reflect.TypeOf(Config{}))

// Table returns the parameter descriptors in emission order.
func Table() []Param {
	out := make([]Param, len(table))
	copy(out, table)
	return out
}

// Lookup returns the descriptor for a parameter name.
func Lookup(name string) (Param, bool) {
	for _, p := range table {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func mustBuildTable(t reflect.Type) []Param {
	params, err := buildTable(t)
	if err != nil {
		panic(err)
	}
	return params
}

// buildTable reads the param tags of t. Every exported field must carry a
// tag, names must be unique and the Go type must agree with the tagged kind.
func buildTable(t reflect.Type) ([]Param, error) {
	seen := make(map[string]bool, t.NumField())
	params := make([]Param, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, ok := f.Tag.Lookup("param")
		if !ok {
			return nil, fmt.Errorf("field %s has no param tag", f.Name)
		}
		parts := strings.Split(tag, ",")
		p := Param{Name: parts[0], index: i}
		if p.Name == "" {
			return nil, fmt.Errorf("field %s has an empty param name", f.Name)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate param name %q", p.Name)
		}
		seen[p.Name] = true

		explicit := ""
		for _, opt := range parts[1:] {
			switch opt {
			case "required":
				p.Required = true
			case "file", "dir":
				explicit = opt
			default:
				return nil, fmt.Errorf("field %s: unknown param option %q", f.Name, opt)
			}
		}

		kind, err := kindOf(f.Type, explicit)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		p.Kind = kind
		params = append(params, p)
	}
	return params, nil
}

func kindOf(t reflect.Type, explicit string) (Kind, error) {
	if explicit != "" {
		if t.Kind() != reflect.String {
			return 0, fmt.Errorf("%s parameter must be a string, got %s", explicit, t)
		}
		if explicit == "file" {
			return KindFile, nil
		}
		return KindDir, nil
	}
	if t.Kind() != reflect.Pointer {
		return 0, fmt.Errorf("optional parameter must be a pointer, got %s", t)
	}
	switch t.Elem().Kind() {
	case reflect.String:
		return KindString, nil
	case reflect.Bool:
		return KindBool, nil
	case reflect.Int:
		return KindInt, nil
	case reflect.Float64:
		return KindFloat, nil
	}
	return 0, fmt.Errorf("unsupported parameter type %s", t)
}

// Value renders the parameter's value in cfg as it appears on the command
// line. The second result is false when the parameter is absent. Floats
// given through Set or a params file keep their original text.
func (p Param) Value(cfg *Config) (string, bool) {
	f := reflect.ValueOf(cfg).Elem().Field(p.index)
	switch p.Kind {
	case KindFile, KindDir:
		s := f.String()
		return s, s != ""
	}
	if f.IsNil() {
		return "", false
	}
	e := f.Elem()
	switch p.Kind {
	case KindBool:
		if e.Bool() {
			return "true", true
		}
		return "false", true
	case KindInt:
		return fmt.Sprintf("%d", e.Int()), true
	case KindFloat:
		if text, ok := cfg.floatText[p.Name]; ok {
			if v, err := strconv.ParseFloat(text, 64); err == nil && v == e.Float() {
				return text, true
			}
		}
		return formatFloat(e.Float()), true
	default:
		return e.String(), true
	}
}
