//go:build !cgo

package adapter

import (
	"errors"
	"image"
)

// ErrResvgUnavailable is returned when the binary was built without cgo
var ErrResvgUnavailable = errors.New("svg rendering requires a cgo build")

type unavailableResvgClient struct{}

// NewResvgClient returns a client that always fails with ErrResvgUnavailable
func NewResvgClient() ResvgClient {
	return unavailableResvgClient{}
}

func (unavailableResvgClient) Render([]byte, int) (image.Image, error) {
	return nil, ErrResvgUnavailable
}
