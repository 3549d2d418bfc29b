package config

import "sync"

// StreamSettings holds chunk lifecycle configuration
type StreamSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
	verticalRange  int // chunk layers above y=0 that are ever spawned
}

var globalStreamSettings = &StreamSettings{
	renderDistance: 4,
	verticalRange:  2,
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks
func SetRenderDistance(distance int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()

	if distance < 1 {
		distance = 1
	}
	if distance > 32 {
		distance = 32
	}

	globalStreamSettings.renderDistance = distance
}

// GetVerticalRange returns how many chunk layers (starting at y=0) are streamed
func GetVerticalRange() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.verticalRange
}

// SetVerticalRange sets the number of streamed chunk layers
func SetVerticalRange(layers int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	if layers < 1 {
		layers = 1
	}
	globalStreamSettings.verticalRange = layers
}

// GetChunkLoadRadius returns radius for chunk loading
func GetChunkLoadRadius() int {
	return GetRenderDistance()
}
