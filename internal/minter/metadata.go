package minter

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/gowebpki/jcs"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/domain"
)

const (
	artworkPrefix = "<svg xmlns='http://www.w3.org/2000/svg' preserveAspectRatio='xMinYMin meet' viewBox='0 0 350 350'>" +
		"<style>.base { fill: black; font-family: Inter; font-size: 14px; }</style>" +
		"<rect width='100%' height='100%' fill='white' />" +
		"<text x='50%' y='50%' class='base' dominant-baseline='middle' text-anchor='middle'>"
	artworkSuffix = "</text></svg>"
)

// Metadata is the token metadata document of a song
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageData   string `json:"image_data"`
}

// Artwork renders the SVG artwork of a song: its name centred on a white square
func Artwork(name string) string {
	var text strings.Builder
	_ = xml.EscapeText(&text, []byte(name))
	return artworkPrefix + text.String() + artworkSuffix
}

// NewMetadata builds the metadata of a song token
func NewMetadata(name string, b64 adapter.Base64) Metadata {
	return Metadata{
		Name:        name,
		Description: domain.SONG_TOKEN_DESCRIPTION,
		ImageData:   domain.SVG_DATA_URI_PREFIX + b64.Encode([]byte(Artwork(name))),
	}
}

// Document returns the metadata JSON exactly as it is embedded in the token URI.
// The field layout is fixed so that the same name always yields the same bytes.
func (m Metadata) Document() []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	buf.WriteString(quote(m.Name))
	buf.WriteString(`, "description":`)
	buf.WriteString(quote(m.Description))
	buf.WriteString(`, "image_data": `)
	buf.WriteString(quote(m.ImageData))
	buf.WriteString(`}`)
	return buf.Bytes()
}

// URI returns the self-contained data URI of the metadata
func (m Metadata) URI(b64 adapter.Base64) string {
	return domain.JSON_DATA_URI_PREFIX + b64.Encode(m.Document())
}

// Hash returns the SHA-256 of the canonical (RFC 8785) form of the metadata
func (m Metadata) Hash() ([]byte, error) {
	canonical, err := jcs.Transform(m.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize metadata: %w", err)
	}
	hash := sha256.Sum256(canonical)
	return hash[:], nil
}

// ParseURI decodes a metadata data URI produced by URI
func ParseURI(uri string, b64 adapter.Base64) (*Metadata, error) {
	if !strings.HasPrefix(uri, domain.JSON_DATA_URI_PREFIX) {
		return nil, fmt.Errorf("%w: not a JSON data URI", domain.ErrInvalidInput)
	}

	document, err := b64.Decode(strings.TrimPrefix(uri, domain.JSON_DATA_URI_PREFIX))
	if err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(document, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return &metadata, nil
}

// quote encodes s as a JSON string without HTML escaping
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
