package adapter

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
)

// Base64 encodes the payload of data URIs
type Base64 interface {
	Encode(data []byte) string
	Decode(data string) ([]byte, error)
}

// JSON encodes journal events for storage and transport
type JSON interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type RealBase64 struct{}

func NewBase64() Base64 {
	return &RealBase64{}
}

func (b *RealBase64) Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode accepts padded and unpadded input
func (b *RealBase64) Decode(data string) ([]byte, error) {
	if len(data)%4 != 0 {
		return base64.RawStdEncoding.DecodeString(data)
	}
	return base64.StdEncoding.DecodeString(data)
}

// RealJSON leaves <, > and & unescaped so song names read the same on every consumer
type RealJSON struct{}

func NewJSON() JSON {
	return &RealJSON{}
}

func (j *RealJSON) Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (j *RealJSON) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
