package geometry

import (
	"errors"
	"fmt"
)

// ErrResolutionMismatch is returned when a resolution's distance and type
// disagree about whether there is anything to resolve.
var ErrResolutionMismatch = errors.New("resolution distance and type mismatch")

// ResolutionType tells how a collision was resolved.
type ResolutionType int

const (
	ResolutionNone ResolutionType = iota
	ResolutionNormal
	ResolutionSlope
)

func (t ResolutionType) String() string {
	switch t {
	case ResolutionNone:
		return "none"
	case ResolutionNormal:
		return "normal"
	case ResolutionSlope:
		return "slope"
	default:
		return fmt.Sprintf("ResolutionType(%d)", int(t))
	}
}

// Resolution is the displacement that, added to the penetrating object's
// position, removes an overlap. Distance is zero exactly when Type is None.
type Resolution struct {
	Distance Vector2
	Type     ResolutionType
}

// ZeroResolution means there is nothing to resolve.
var ZeroResolution = Resolution{}

// NewResolution validates that distance and type agree.
func NewResolution(distance Vector2, typ ResolutionType) (Resolution, error) {
	if distance.IsZero() != (typ == ResolutionNone) {
		return Resolution{}, fmt.Errorf("%w: distance %v with type %s", ErrResolutionMismatch, distance, typ)
	}
	return Resolution{Distance: distance, Type: typ}, nil
}

// MustResolution is NewResolution for values computed internally; a mismatch
// there is a programming error.
func MustResolution(distance Vector2, typ ResolutionType) Resolution {
	r, err := NewResolution(distance, typ)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Resolution) IsZero() bool {
	return r.Type == ResolutionNone
}
