package parser

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mcncl/jsoncmp/internal/errors"
	"github.com/mcncl/jsoncmp/internal/models"
)

// Select narrows v down to the part matched by a gjson path query such as
// "spec.containers.0" or "items.#.name". An empty query returns v unchanged.
func Select(v models.Value, query string) (models.Value, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return v, nil
	}
	result := gjson.Get(v.Compact(), query)
	if !result.Exists() {
		return models.Value{}, errors.NewInputError(fmt.Sprintf("selection %q matched nothing", query), errors.ErrNoMatch)
	}

	selected, err := Parse(strings.NewReader(result.Raw))
	if err != nil {
		return models.Value{}, errors.NewInputError(fmt.Sprintf("selection %q produced invalid JSON", query), err)
	}
	return selected, nil
}
