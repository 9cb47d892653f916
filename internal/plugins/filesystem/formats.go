package filesystem

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
	"github.com/pelletier/go-toml/v2"
)

// FormatOps handles structured file formats
type FormatOps struct {
	*Ops
}

// GetTools returns format tool definitions
func (f *FormatOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.json.read",
			Name:        "Read JSON",
			Description: "Read and parse a JSON file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.json.write",
			Name:        "Write JSON",
			Description: "Serialize a value to a JSON file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "any", Description: "Value to serialize", Required: true},
				{Name: "pretty", Type: "boolean", Description: "Indent output (default true)", Required: false},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.yaml.read",
			Name:        "Read YAML",
			Description: "Read and parse a YAML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.yaml.write",
			Name:        "Write YAML",
			Description: "Serialize a value to a YAML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "any", Description: "Value to serialize", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.toml.read",
			Name:        "Read TOML",
			Description: "Read and parse a TOML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.toml.write",
			Name:        "Write TOML",
			Description: "Serialize a value to a TOML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Value to serialize", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.csv.read",
			Name:        "Read CSV",
			Description: "Read a CSV file as rows",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "delimiter", Type: "string", Description: "Field delimiter (default comma)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.csv.write",
			Name:        "Write CSV",
			Description: "Write rows to a CSV file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "rows", Type: "array", Description: "Array of row arrays", Required: true},
				{Name: "delimiter", Type: "string", Description: "Field delimiter (default comma)", Required: false},
			},
			Returns: "boolean",
		},
	}
}

// JSONRead parses a JSON file
func (f *FormatOps) JSONRead(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	raw, err := f.readFormatFile(params)
	if err != nil {
		return Failure(err.Error())
	}

	var value interface{}
	if err := sonic.Unmarshal(raw, &value); err != nil {
		return Failure(fmt.Sprintf("invalid JSON: %v", err))
	}

	return Success(map[string]interface{}{"data": value})
}

// JSONWrite serializes a value to a JSON file
func (f *FormatOps) JSONWrite(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}
	data, ok := params["data"]
	if !ok {
		return Failure("data parameter required")
	}
	pretty := types.GetBool(params, "pretty", true)

	var raw []byte
	if pretty {
		raw, err = sonic.MarshalIndent(data, "", "  ")
	} else {
		raw, err = sonic.Marshal(data)
	}
	if err != nil {
		return Failure(fmt.Sprintf("JSON encoding failed: %v", err))
	}

	return f.writeFormatFile(path, raw)
}

// YAMLRead parses a YAML file
func (f *FormatOps) YAMLRead(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	raw, err := f.readFormatFile(params)
	if err != nil {
		return Failure(err.Error())
	}

	var value interface{}
	if err := yaml.Unmarshal(raw, &value); err != nil {
		return Failure(fmt.Sprintf("invalid YAML: %v", err))
	}

	return Success(map[string]interface{}{"data": value})
}

// YAMLWrite serializes a value to a YAML file
func (f *FormatOps) YAMLWrite(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}
	data, ok := params["data"]
	if !ok {
		return Failure("data parameter required")
	}

	raw, err := yaml.Marshal(data)
	if err != nil {
		return Failure(fmt.Sprintf("YAML encoding failed: %v", err))
	}

	return f.writeFormatFile(path, raw)
}

// TOMLRead parses a TOML file
func (f *FormatOps) TOMLRead(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	raw, err := f.readFormatFile(params)
	if err != nil {
		return Failure(err.Error())
	}

	value := map[string]interface{}{}
	if err := toml.Unmarshal(raw, &value); err != nil {
		return Failure(fmt.Sprintf("invalid TOML: %v", err))
	}

	return Success(map[string]interface{}{"data": value})
}

// TOMLWrite serializes a value to a TOML file
func (f *FormatOps) TOMLWrite(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}
	data := types.GetMap(params, "data")
	if data == nil {
		return Failure("data parameter required")
	}

	raw, err := toml.Marshal(data)
	if err != nil {
		return Failure(fmt.Sprintf("TOML encoding failed: %v", err))
	}

	return f.writeFormatFile(path, raw)
}

// CSVRead reads a CSV file as string rows
func (f *FormatOps) CSVRead(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := f.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	file, err := os.Open(full)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiterFrom(params)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Failure(fmt.Sprintf("invalid CSV: %v", err))
	}

	rows := make([]interface{}, 0, len(records))
	for _, record := range records {
		row := make([]interface{}, 0, len(record))
		for _, field := range record {
			row = append(row, field)
		}
		rows = append(rows, row)
	}

	return Success(map[string]interface{}{"rows": rows, "count": len(rows)})
}

// CSVWrite writes string rows to a CSV file
func (f *FormatOps) CSVWrite(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}
	rawRows := types.GetArray(params, "rows")
	if rawRows == nil {
		return Failure("rows parameter required")
	}

	records := make([][]string, 0, len(rawRows))
	for i, rawRow := range rawRows {
		cells, ok := rawRow.([]interface{})
		if !ok {
			return Failure(fmt.Sprintf("row %d is not an array", i))
		}
		record := make([]string, 0, len(cells))
		for _, cell := range cells {
			record = append(record, fmt.Sprintf("%v", cell))
		}
		records = append(records, record)
	}

	full, err := f.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	file, err := os.Create(full)
	if err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = delimiterFrom(params)
	if err := writer.WriteAll(records); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	return Success(map[string]interface{}{"written": true, "path": path, "rows": len(records)})
}

func (f *FormatOps) readFormatFile(params map[string]interface{}) ([]byte, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return nil, err
	}

	full, err := f.resolve(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read failed: %v", err)
	}

	return raw, nil
}

func (f *FormatOps) writeFormatFile(path string, raw []byte) (*types.Result, error) {
	full, err := f.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}
	if err := os.WriteFile(full, raw, 0o644); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	return Success(map[string]interface{}{"written": true, "path": path, "size": len(raw)})
}

func delimiterFrom(params map[string]interface{}) rune {
	if d, _ := types.GetString(params, "delimiter", false); d != "" {
		runes := []rune(strings.TrimSpace(d))
		if len(runes) > 0 {
			return runes[0]
		}
	}
	return ','
}
