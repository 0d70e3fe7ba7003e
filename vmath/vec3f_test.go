package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV3FArithmetic(t *testing.T) {
	a := Vec3F{X: 1, Y: 2, Z: 3}
	b := Vec3F{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Vec3F{X: 5, Y: 7, Z: 9}, V3FAdd(a, b))
	assert.Equal(t, Vec3F{X: -3, Y: -3, Z: -3}, V3FSub(a, b))
	assert.Equal(t, Vec3F{X: 2, Y: 4, Z: 6}, V3FScale(a, 2))
	assert.Equal(t, 32.0, V3FDot(a, b))
}

func TestV3FMagnitude(t *testing.T) {
	v := Vec3F{X: 3, Y: 4}
	assert.Equal(t, 25.0, V3FMagSq(v))
	assert.Equal(t, 5.0, V3FMag(v))

	n := V3FNormalize(v)
	assert.InDelta(t, 1.0, V3FMag(n), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)

	assert.Equal(t, Vec3F{}, V3FNormalize(Vec3F{}), "zero vector normalizes to zero")
}

func TestV3FDistance(t *testing.T) {
	a := Vec3F{X: 1, Y: 1}
	b := Vec3F{X: 4, Y: 5}
	assert.Equal(t, 25.0, V3FDistSq(a, b))
	assert.Equal(t, 5.0, V3FDist(a, b))
}

func TestV3FLerp(t *testing.T) {
	a := Vec3F{X: 0, Y: 10}
	b := Vec3F{X: 10, Y: 20}
	assert.Equal(t, a, V3FLerp(a, b, 0))
	assert.Equal(t, b, V3FLerp(a, b, 1))
	assert.Equal(t, Vec3F{X: 5, Y: 15}, V3FLerp(a, b, 0.5))
}
