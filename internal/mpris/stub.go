//go:build !linux

package mpris

import (
	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/playback"
	"github.com/llehouerou/presto/internal/remote"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ *remote.Controller, _ playback.Reader[playback.Snapshot], _ []library.Track) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
