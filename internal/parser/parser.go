package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/jsoncmp/internal/errors" // Custom errors package
	"github.com/mcncl/jsoncmp/internal/models"
)

// Format identifies the encoding of an input document
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// StdinPath is the file name that reads a document from standard input
const StdinPath = "-"

// ParseFormat validates a format name as given on the command line
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.NewInputError(fmt.Sprintf("unknown input format %q", name), errors.ErrUnsupportedFormat)
	}
}

// DetectFormat picks the format of a file from its extension. Anything that
// is not YAML or TOML is read as JSON.
func DetectFormat(path string) Format {
	if f, ok := ExtensionFormat(path); ok {
		return f
	}
	return FormatJSON
}

// ExtensionFormat returns the format named by the file extension; ok is false
// for unknown or missing extensions
func ExtensionFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Parse decodes a single JSON document from reader. Object key order and the
// literal text of numbers are preserved.
func Parse(reader io.Reader) (models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Keep number literals as written

	root, err := decodeValue(decoder, 0)
	if err != nil {
		if stderrors.Is(err, io.EOF) { // io.EOF at the root means nothing was decoded
			return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return models.Value{}, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return models.Value{}, errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return models.Value{}, errors.NewParsingError("failed to decode JSON", err)
	}

	// Only whitespace may follow the first value
	if _, err := decoder.Token(); err == nil {
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
	}

	return root, nil
}

// decodeValue reads one value from the token stream. depth is the number of
// enclosing containers; running out of input inside one is an unexpected EOF.
func decodeValue(decoder *json.Decoder, depth int) (models.Value, error) {
	tok, err := decoder.Token()
	if err != nil {
		if depth > 0 && stderrors.Is(err, io.EOF) {
			return models.Value{}, io.ErrUnexpectedEOF
		}
		return models.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(decoder, depth+1)
		case '[':
			return decodeArray(decoder, depth+1)
		default:
			return models.Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return models.String(t), nil
	case json.Number:
		return models.Number(t.String()), nil
	case bool:
		return models.Bool(t), nil
	case nil:
		return models.Null(), nil
	default:
		return models.Value{}, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeObject(decoder *json.Decoder, depth int) (models.Value, error) {
	var members []models.Member
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return models.Value{}, eofInside(err)
		}
		key, ok := tok.(string)
		if !ok {
			return models.Value{}, fmt.Errorf("object key is %T, not string", tok)
		}
		value, err := decodeValue(decoder, depth)
		if err != nil {
			return models.Value{}, err
		}
		members = append(members, models.Member{Key: key, Value: value})
	}
	// Consume the closing brace
	if _, err := decoder.Token(); err != nil {
		return models.Value{}, eofInside(err)
	}
	return models.Object(members...), nil
}

func decodeArray(decoder *json.Decoder, depth int) (models.Value, error) {
	var items []models.Value
	for decoder.More() {
		item, err := decodeValue(decoder, depth)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}
	// Consume the closing bracket
	if _, err := decoder.Token(); err != nil {
		return models.Value{}, eofInside(err)
	}
	return models.Array(items...), nil
}

func eofInside(err error) error {
	if stderrors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ParseString parses a JSON document from a string
func ParseString(jsonString string) (models.Value, error) {
	// A reader over only spaces might not report io.EOF, check up front
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseReader decodes a document of the given format from reader.
// FormatAuto is treated as JSON.
func ParseReader(reader io.Reader, format Format) (models.Value, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(reader)
	case FormatTOML:
		return ParseTOML(reader)
	case FormatJSON, FormatAuto, "":
		return Parse(reader)
	default:
		return models.Value{}, errors.NewInputError(fmt.Sprintf("unknown input format %q", format), errors.ErrUnsupportedFormat)
	}
}

// ParseFile parses the document at filePath, picking the format from the
// file extension. StdinPath reads standard input as JSON.
func ParseFile(filePath string) (models.Value, error) {
	return ParseFileAs(filePath, FormatAuto)
}

// ParseFileAs parses the document at filePath in the given format
func ParseFileAs(filePath string, format Format) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	if format == FormatAuto || format == "" {
		format = DetectFormat(filePath)
	}

	if filePath == StdinPath {
		return ParseReader(os.Stdin, format)
	}

	file, err := os.Open(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		_ = file.Close()
	}()

	// Check for empty file before parsing
	stat, err := file.Stat()
	if err != nil {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return ParseReader(file, format)
}
