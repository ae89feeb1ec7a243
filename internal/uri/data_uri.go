package uri

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/feral-file/band-ledger/internal/domain"
)

const (
	dataScheme      = "data:"
	defaultMimeType = "text/plain"
)

// DataURI is a parsed RFC 2397 data URI
type DataURI struct {
	MimeType    string
	Params      map[string]string
	Base64      bool
	DecodedData []byte
}

// ParseDataURI parses data:[<mediatype>][;base64],<data>
func ParseDataURI(raw string) (*DataURI, error) {
	if !strings.HasPrefix(strings.ToLower(raw), dataScheme) {
		return nil, fmt.Errorf("%w: not a data URI", domain.ErrInvalidInput)
	}

	header, payload, found := strings.Cut(raw[len(dataScheme):], ",")
	if !found {
		return nil, fmt.Errorf("%w: data URI has no payload separator", domain.ErrInvalidInput)
	}

	parsed := &DataURI{
		MimeType: defaultMimeType,
		Params:   make(map[string]string),
	}

	parts := strings.Split(header, ";")
	if mimeType := strings.TrimSpace(parts[0]); mimeType != "" {
		if !strings.Contains(mimeType, "/") {
			return nil, fmt.Errorf("%w: invalid media type %q", domain.ErrInvalidInput, mimeType)
		}
		parsed.MimeType = strings.ToLower(mimeType)
	}
	for i, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if strings.EqualFold(part, "base64") && i == len(parts)-2 {
			parsed.Base64 = true
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: invalid media type parameter %q", domain.ErrInvalidInput, part)
		}
		parsed.Params[strings.ToLower(key)] = value
	}

	var err error
	if parsed.Base64 {
		parsed.DecodedData, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var unescaped string
		unescaped, err = url.PathUnescape(payload)
		parsed.DecodedData = []byte(unescaped)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode data URI payload: %w", domain.ErrInvalidInput, err)
	}

	return parsed, nil
}
