package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/playalong-cli/playalong/color"
	"github.com/playalong-cli/playalong/constant"
	"github.com/playalong-cli/playalong/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var ErrInvalidValue = errors.New("invalid value")

// Field is a registered setting. Value is the default and fixes the type
// accepted by Parse. Check, when set, restricts the accepted values.
type Field struct {
	Key         string
	Value       any
	Description string
	Check       func(any) error
}

// Env is the environment variable overriding the field.
func (f Field) Env() string {
	return strings.ToUpper(constant.Playalong + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Parse converts command line text to the field type and checks it.
func (f Field) Parse(raw string) (any, error) {
	var (
		v   any
		err error
	)

	switch f.Value.(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", f.Key, f.Value)
	}

	if err != nil {
		return nil, fmt.Errorf("%w for %s: %q is not a %s", ErrInvalidValue, f.Key, raw, f.typeName())
	}

	if f.Check != nil {
		if err := f.Check(v); err != nil {
			return nil, fmt.Errorf("%w for %s: %w", ErrInvalidValue, f.Key, err)
		}
	}
	return v, nil
}

func (f Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	default:
		return "unknown"
	}
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Env:         f.Env(),
	})
}

// Pretty renders the field with its current value for config info.
func (f Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)("true")
		}
		return style.Fg(color.Red)("false")
	case string:
		return style.Fg(color.Yellow)(strconv.Quote(value))
	default:
		return style.Fg(color.Cyan)(fmt.Sprint(value))
	}
}

var prettyTemplate = template.Must(template.New("field").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"label":    style.Fg(color.Blue),
	"name":     style.Fg(color.Purple),
	"hl":       highlight,
	"current":  viper.Get,
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
}).Parse(`{{ faint .Description }}
{{ label "Key:" }}     {{ name .Key }}
{{ label "Env:" }}     {{ .Env }}
{{ label "Value:" }}   {{ hl (current .Key) }}
{{ label "Default:" }} {{ hl .Value }}
{{ label "Type:" }}    {{ typename .Value }}`))
