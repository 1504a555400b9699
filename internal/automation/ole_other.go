// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package automation

import "fmt"

// OLEBridge drives the Office applications through COM, which only exists
// on Windows. Elsewhere Connect always reports the bridge as unavailable.
type OLEBridge struct{}

// NewOLEBridge returns the COM bridge.
func NewOLEBridge() *OLEBridge {
	return &OLEBridge{}
}

// Connect reports ErrBridgeUnavailable.
func (b *OLEBridge) Connect() (Session, error) {
	return nil, fmt.Errorf("%w: COM automation requires Windows", ErrBridgeUnavailable)
}
