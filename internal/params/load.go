package params

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/me/funcscan/pkg/model"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML or JSON params file over the pipeline defaults.
// Unknown keys are rejected. An explicit null clears a default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.ConfigurationError{Field: "params", Err: err}
	}
	return Parse(data)
}

// Parse decodes params document bytes over the pipeline defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &model.ConfigurationError{Field: "params", Err: err}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &model.ConfigurationError{Field: "params", Err: err}
	}
	recordFloatText(cfg, &doc)
	return cfg, nil
}

// recordFloatText remembers the literal text of float scalars in doc.
func recordFloatText(cfg *Config, doc *yaml.Node) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		p, ok := Lookup(m.Content[i].Value)
		if !ok || p.Kind != KindFloat {
			continue
		}
		v := m.Content[i+1]
		if v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
			continue
		}
		setFloatText(cfg, p.Name, v.Value)
	}
}

func setFloatText(cfg *Config, name, text string) {
	text = strings.TrimSpace(text)
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return
	}
	if cfg.floatText == nil {
		cfg.floatText = make(map[string]string)
	}
	cfg.floatText[name] = text
}

// Set assigns one parameter from its textual form, as given by a
// "--param name=value" override.
func Set(cfg *Config, name, raw string) error {
	p, ok := Lookup(name)
	if !ok {
		return &model.ConfigurationError{Field: name, Err: errors.New("unknown parameter")}
	}

	f := reflect.ValueOf(cfg).Elem().Field(p.index)
	switch p.Kind {
	case KindFile, KindDir:
		f.SetString(raw)
		return nil
	case KindString:
		f.Set(reflect.ValueOf(&raw))
		return nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &model.ConfigurationError{Field: name, Err: fmt.Errorf("expected bool: %w", err)}
		}
		f.Set(reflect.ValueOf(&b))
	case KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return &model.ConfigurationError{Field: name, Err: fmt.Errorf("expected int: %w", err)}
		}
		f.Set(reflect.ValueOf(&n))
	case KindFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return &model.ConfigurationError{Field: name, Err: fmt.Errorf("expected float: %w", err)}
		}
		f.Set(reflect.ValueOf(&v))
		setFloatText(cfg, name, raw)
	}
	return nil
}

// Unset clears an optional parameter so it produces no flag.
func Unset(cfg *Config, name string) error {
	p, ok := Lookup(name)
	if !ok {
		return &model.ConfigurationError{Field: name, Err: errors.New("unknown parameter")}
	}
	if p.Required {
		return &model.ConfigurationError{Field: name, Err: errors.New("cannot unset a required parameter")}
	}
	f := reflect.ValueOf(cfg).Elem().Field(p.index)
	f.Set(reflect.Zero(f.Type()))
	delete(cfg.floatText, name)
	return nil
}

// ParseAssignment splits a "name=value" override.
func ParseAssignment(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", &model.ConfigurationError{Field: "param", Err: fmt.Errorf("expected name=value, got %q", s)}
	}
	return name, value, nil
}

// Validate reports the first required parameter that has no value.
func Validate(cfg *Config) error {
	for _, p := range table {
		if !p.Required {
			continue
		}
		if v, _ := p.Value(cfg); strings.TrimSpace(v) == "" {
			return &model.ConfigurationError{Field: p.Name, Err: model.ErrRequiredParam}
		}
	}
	return nil
}
