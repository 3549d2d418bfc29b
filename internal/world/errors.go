package world

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChunkSize is returned when a chunk size has a zero or negative axis.
	ErrInvalidChunkSize = errors.New("world: invalid chunk size")
	// ErrInvalidVoxelData is returned by NewChunk when the voxel slice does not match the size.
	ErrInvalidVoxelData = errors.New("world: voxel data does not match chunk size")
	// ErrInvariantViolation marks an internal-logic fault that aborted a generation job.
	ErrInvariantViolation = errors.New("world: invariant violation")
	// ErrBiomeLookup is the panic value raised when no biome slot matches a sample.
	ErrBiomeLookup = errors.New("world: biome ring lookup found no slot")
)

// ConfigError describes a rejected generation request or generator setting.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v", e.Err, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func validateSize(size Vec3i) error {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return &ConfigError{Field: "size", Value: size, Err: ErrInvalidChunkSize}
	}
	return nil
}
