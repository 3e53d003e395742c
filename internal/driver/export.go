package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type ExportFormat uint8

const (
	ExportJSON ExportFormat = iota
	ExportYAML
	ExportMsgpack
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "json":
		return ExportJSON, nil
	case "yaml", "yml":
		return ExportYAML, nil
	case "msgpack", "mp":
		return ExportMsgpack, nil
	}
	return ExportJSON, fmt.Errorf("unknown export format %q (expected: json|yaml|msgpack)", s)
}

// Encode writes exp to w in the given format.
func (exp *RegistryExport) Encode(w io.Writer, format ExportFormat) error {
	switch format {
	case ExportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(exp); err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
		return enc.Close()
	case ExportMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		if err := enc.Encode(exp); err != nil {
			return fmt.Errorf("msgpack: %w", err)
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exp)
	}
}

// DecodeRegistryExport reads back what Encode wrote.
func DecodeRegistryExport(r io.Reader, format ExportFormat) (RegistryExport, error) {
	var exp RegistryExport
	var err error
	switch format {
	case ExportYAML:
		err = yaml.NewDecoder(r).Decode(&exp)
	case ExportMsgpack:
		err = msgpack.NewDecoder(r).Decode(&exp)
	default:
		err = json.NewDecoder(r).Decode(&exp)
	}
	return exp, err
}
