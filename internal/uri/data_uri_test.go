package uri_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/minter"
	"github.com/feral-file/band-ledger/internal/uri"
)

const testSVG = `<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 350 350'><rect width='100%' height='100%' fill='white' /></svg>`

// 1x1 PNG
var pngData = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
	0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41,
	0x54, 0x08, 0xD7, 0x63, 0xF8, 0xCF, 0xC0, 0x00,
	0x00, 0x03, 0x01, 0x01, 0x00, 0x18, 0xDD, 0x8D,
	0xB4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E,
	0x44, 0xAE, 0x42, 0x60, 0x82,
}

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		mimeType string
		base64   bool
		data     string
		params   map[string]string
		wantErr  bool
	}{
		{
			name:     "base64 svg",
			input:    "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(testSVG)),
			mimeType: "image/svg+xml",
			base64:   true,
			data:     testSVG,
			params:   map[string]string{},
		},
		{
			name:     "percent encoded with charset",
			input:    "data:text/plain;charset=utf-8,Village%20Damsel",
			mimeType: "text/plain",
			data:     "Village Damsel",
			params:   map[string]string{"charset": "utf-8"},
		},
		{
			name:     "default media type",
			input:    "data:,hello",
			mimeType: "text/plain",
			data:     "hello",
			params:   map[string]string{},
		},
		{
			name:     "uppercase scheme and type",
			input:    "DATA:Application/JSON;base64,e30=",
			mimeType: "application/json",
			base64:   true,
			data:     "{}",
			params:   map[string]string{},
		},
		{name: "not a data uri", input: "https://example.com/a.png", wantErr: true},
		{name: "missing comma", input: "data:image/png;base64", wantErr: true},
		{name: "invalid media type", input: "data:png;base64,AA==", wantErr: true},
		{name: "invalid base64", input: "data:image/png;base64,@@@", wantErr: true},
		{name: "invalid parameter", input: "data:text/plain;charset,abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := uri.ParseDataURI(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.mimeType, parsed.MimeType)
			assert.Equal(t, tt.base64, parsed.Base64)
			assert.Equal(t, tt.data, string(parsed.DecodedData))
			assert.Equal(t, tt.params, parsed.Params)
		})
	}
}

func TestDataURIChecker_Check(t *testing.T) {
	checker := uri.NewDataURIChecker("image/", "application/json")

	tests := []struct {
		name     string
		input    string
		valid    bool
		detected string
	}{
		{
			name:     "svg artwork",
			input:    "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(testSVG)),
			valid:    true,
			detected: "image/svg+xml",
		},
		{
			name:     "png",
			input:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData),
			valid:    true,
			detected: "image/png",
		},
		{
			name:     "song metadata",
			input:    minter.NewMetadata("Village Damsel", adapter.NewBase64()).URI(adapter.NewBase64()),
			valid:    true,
			detected: "application/json",
		},
		{
			name:  "declared png carrying svg",
			input: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(testSVG)),
		},
		{
			name:  "disallowed type",
			input: "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte("<p>hi</p>")),
		},
		{
			name:  "empty payload",
			input: "data:image/png;base64,",
		},
		{
			name:  "malformed",
			input: "data:image/png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checker.Check(tt.input)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.valid {
				assert.Nil(t, result.Error)
				assert.Equal(t, tt.detected, result.MimeType)
				assert.NotEmpty(t, result.Data)
			} else {
				require.NotNil(t, result.Error)
				assert.Empty(t, result.Data)
			}
		})
	}
}
