package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"candidc/internal/types"
)

// ExportFormat names an encoding for ExportEnv.
type ExportFormat string

const (
	ExportJSON    ExportFormat = "json"
	ExportYAML    ExportFormat = "yaml"
	ExportMsgpack ExportFormat = "msgpack"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(s)); f {
	case ExportJSON, ExportYAML, ExportMsgpack:
		return f, nil
	case "yml":
		return ExportYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (expected json|yaml|msgpack)", s)
}

// EnvExport is the document written by ExportEnv.
type EnvExport struct {
	Types   []types.NamedNode `json:"types" yaml:"types" msgpack:"types"`
	Service *types.Node       `json:"service,omitempty" yaml:"service,omitempty" msgpack:"service,omitempty"`
}

// NewEnvExport describes env in name order. actor may be nil.
func NewEnvExport(env *types.Env, actor types.Type) EnvExport {
	out := EnvExport{Types: types.DescribeEnv(env)}
	if actor != nil {
		n := types.Describe(actor)
		out.Service = &n
	}
	return out
}

// ExportEnv writes env and the entry file's service to w.
func ExportEnv(w io.Writer, env *types.Env, actor types.Type, format ExportFormat) error {
	doc := NewEnvExport(env, actor)
	switch format {
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case ExportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case ExportMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	return nil
}
