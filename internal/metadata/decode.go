package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// Decode parses one metadata JSON document and normalizes it into a record.
// source names the document in error messages.
func Decode(content []byte, source string, opts DecodeOptions) (nftsql.MetadataRecord, error) {
	var doc document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nftsql.MetadataRecord{}, &RecordError{
			Source:  source,
			Message: err.Error(),
			Hint:    "Metadata documents must be JSON objects with id, name, description, image and attributes fields.",
			Err:     err,
		}
	}

	id, err := decodeID(doc.ID, opts)
	if err != nil {
		return nftsql.MetadataRecord{}, &RecordError{
			Source:  source,
			Field:   "id",
			Message: err.Error(),
			Hint:    "Use an integer id, or name the file after the token id (e.g. 12.json).",
			Err:     err,
		}
	}

	attrs := make([]nftsql.Attribute, 0, len(doc.Attributes))
	for i, a := range doc.Attributes {
		value, err := scalarText(a.Value)
		if err != nil {
			return nftsql.MetadataRecord{}, &RecordError{
				Source:  source,
				Field:   fmt.Sprintf("attributes[%d].value", i),
				Message: err.Error(),
				Err:     err,
			}
		}
		attrs = append(attrs, nftsql.Attribute{TraitType: a.TraitType, Value: value})
	}

	return nftsql.MetadataRecord{
		ID:          id,
		Name:        doc.Name,
		Description: doc.Description,
		Image:       NormalizeImage(doc.Image, opts.ImageCID, opts.NormalizeGatewayURLs),
		Attributes:  attrs,
	}, nil
}

func decodeID(raw json.RawMessage, opts DecodeOptions) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		if opts.HasFallbackID {
			return opts.FallbackID, nil
		}
		return 0, fmt.Errorf("id is missing")
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		text = strings.TrimSpace(text)
	}

	if id, err := strconv.ParseInt(text, 10, 64); err == nil {
		return id, nil
	}
	if id, ok := integralNumber(text); ok {
		return id, nil
	}
	return 0, fmt.Errorf("id %s is not an integer", string(raw))
}

// integralNumber parses a JSON number with a fraction or exponent, such as
// 1.0 or 1e0, when its value is a whole number that fits in an int64.
// The digits are handled as text, so 1.0000000000000000001 is not rounded to 1.
func integralNumber(text string) (int64, bool) {
	if text == "" || !json.Valid([]byte(text)) || (text[0] != '-' && (text[0] < '0' || text[0] > '9')) {
		return 0, false
	}

	sign := ""
	if text[0] == '-' {
		sign, text = "-", text[1:]
	}
	mantissa, exponent, hasExp := strings.Cut(strings.ToLower(text), "e")
	intPart, fracPart, _ := strings.Cut(mantissa, ".")

	digits := strings.TrimLeft(intPart+fracPart, "0")
	if digits == "" {
		return 0, true
	}

	exp := 0
	if hasExp {
		var err error
		if exp, err = strconv.Atoi(exponent); err != nil {
			return 0, false
		}
	}
	exp -= len(fracPart)

	trimmed := strings.TrimRight(digits, "0")
	exp += len(digits) - len(trimmed)
	if exp < 0 || len(trimmed)+exp > 19 {
		return 0, false
	}

	id, err := strconv.ParseInt(sign+trimmed+strings.Repeat("0", exp), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// scalarText returns the text form of a JSON attribute value.
// Strings are unquoted; numbers and booleans keep their literal spelling;
// null becomes the empty string; objects and arrays are compacted.
func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return string(raw), nil
	}
}
