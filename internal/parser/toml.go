package parser

import (
	"fmt"
	"io"
	"strings"

	stderrors "errors"

	"github.com/pelletier/go-toml/v2"

	"github.com/mcncl/jsoncmp/internal/errors"
	"github.com/mcncl/jsoncmp/internal/models"
)

// ParseTOML decodes a TOML document from reader. TOML tables carry no
// meaningful order once decoded, so keys come out sorted. Dates and times
// become strings in their TOML text form.
func ParseTOML(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read TOML input", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		var decodeErr *toml.DecodeError
		if stderrors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return models.Value{}, errors.NewParsingError(
				fmt.Sprintf("TOML syntax error at line %d, column %d", row, col),
				err,
			)
		}
		return models.Value{}, errors.NewParsingError("failed to decode TOML", err)
	}

	v, err := models.FromInterface(doc)
	if err != nil {
		return models.Value{}, errors.NewParsingError("unsupported TOML content", err)
	}
	return v, nil
}
