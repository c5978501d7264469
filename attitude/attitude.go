// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package attitude converts orientation quaternions into roll, pitch and yaw.
//
// Angles follow the robotics convention: right-handed axes with X forward,
// Y left and Z up, yaw about Z, then pitch about Y, then roll about X
// (intrinsic Z-Y-X). All angles are radians unless a name says otherwise.
package attitude

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Euler holds roll, pitch and yaw in radians.
type Euler struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// FromQuaternion converts the quaternion (x, y, z, w) to Euler angles.
//
// The quaternion is normalized first. A zero-length or non-finite
// quaternion is treated as the identity rotation.
func FromQuaternion(x, y, z, w float64) Euler {
	q := mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
	if l := q.Len(); !(l > 0) || math.IsInf(l, 0) {
		q = mgl64.QuatIdent()
	} else {
		q = q.Scale(1 / l)
	}
	return fromMatrix(q.Mat4())
}

// fromMatrix extracts Z-Y-X angles from a rotation matrix. At gimbal lock
// (pitch of ±90°) yaw is pinned to zero and the remaining rotation is
// reported as roll.
func fromMatrix(m mgl64.Mat4) Euler {
	m20 := m.At(2, 0)
	if math.Abs(m20) >= 1 {
		if m20 < 0 {
			return Euler{Roll: math.Atan2(m.At(0, 1), m.At(0, 2)), Pitch: math.Pi / 2}
		}
		return Euler{Roll: math.Atan2(-m.At(0, 1), -m.At(0, 2)), Pitch: -math.Pi / 2}
	}

	pitch := -math.Asin(m20)
	return Euler{
		Roll:  math.Atan2(m.At(2, 1), m.At(2, 2)),
		Pitch: pitch,
		Yaw:   math.Atan2(m.At(1, 0), m.At(0, 0)),
	}
}

// Quaternion returns the unit quaternion (x, y, z, w) for e.
func (e Euler) Quaternion() (x, y, z, w float64) {
	q := mgl64.AnglesToQuat(e.Yaw, e.Pitch, e.Roll, mgl64.ZYX)
	return q.V[0], q.V[1], q.V[2], q.W
}

// Degrees returns roll, pitch and yaw converted to degrees.
func (e Euler) Degrees() (roll, pitch, yaw float64) {
	return mgl64.RadToDeg(e.Roll), mgl64.RadToDeg(e.Pitch), mgl64.RadToDeg(e.Yaw)
}

// HeadingDegrees returns yaw in degrees, normalized to [0, 360).
func (e Euler) HeadingDegrees() float64 {
	return NormalizeDegrees(mgl64.RadToDeg(e.Yaw))
}

// NormalizeDegrees wraps deg into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
