package glprogram

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// AttribType is the GPU type tag of an active attribute. Values are the
// OpenGL type enums so an OpenGL driver can pass them through unchanged.
type AttribType uint32

const (
	AttribInt         AttribType = 0x1404
	AttribUnsignedInt AttribType = 0x1405
	AttribFloat       AttribType = 0x1406
	AttribFloatVec2   AttribType = 0x8B50
	AttribFloatVec3   AttribType = 0x8B51
	AttribFloatVec4   AttribType = 0x8B52
	AttribIntVec2     AttribType = 0x8B53
	AttribIntVec3     AttribType = 0x8B54
	AttribIntVec4     AttribType = 0x8B55
	AttribBool        AttribType = 0x8B56
	AttribBoolVec2    AttribType = 0x8B57
	AttribBoolVec3    AttribType = 0x8B58
	AttribBoolVec4    AttribType = 0x8B59
	AttribFloatMat2   AttribType = 0x8B5A
	AttribFloatMat3   AttribType = 0x8B5B
	AttribFloatMat4   AttribType = 0x8B5C
	AttribFloatMat2x3 AttribType = 0x8B65
	AttribFloatMat2x4 AttribType = 0x8B66
	AttribFloatMat3x2 AttribType = 0x8B67
	AttribFloatMat3x4 AttribType = 0x8B68
	AttribFloatMat4x2 AttribType = 0x8B69
	AttribFloatMat4x3 AttribType = 0x8B6A
	AttribUintVec2    AttribType = 0x8DC6
	AttribUintVec3    AttribType = 0x8DC7
	AttribUintVec4    AttribType = 0x8DC8
)

var attribTypeNames = map[AttribType]string{
	AttribInt:         "int",
	AttribUnsignedInt: "uint",
	AttribFloat:       "float",
	AttribFloatVec2:   "vec2",
	AttribFloatVec3:   "vec3",
	AttribFloatVec4:   "vec4",
	AttribIntVec2:     "ivec2",
	AttribIntVec3:     "ivec3",
	AttribIntVec4:     "ivec4",
	AttribBool:        "bool",
	AttribBoolVec2:    "bvec2",
	AttribBoolVec3:    "bvec3",
	AttribBoolVec4:    "bvec4",
	AttribFloatMat2:   "mat2",
	AttribFloatMat3:   "mat3",
	AttribFloatMat4:   "mat4",
	AttribFloatMat2x3: "mat2x3",
	AttribFloatMat2x4: "mat2x4",
	AttribFloatMat3x2: "mat3x2",
	AttribFloatMat3x4: "mat3x4",
	AttribFloatMat4x2: "mat4x2",
	AttribFloatMat4x3: "mat4x3",
	AttribUintVec2:    "uvec2",
	AttribUintVec3:    "uvec3",
	AttribUintVec4:    "uvec4",
}

// String returns the GLSL spelling of the type, or the raw tag in hex for
// tags this package does not know.
func (t AttribType) String() string {
	if name, ok := attribTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(0x%04X)", uint32(t))
}

// VertexFormat returns the 32-bit vertex buffer format that feeds a scalar
// or vector attribute. Boolean and matrix attributes have no single-slot
// format.
func (t AttribType) VertexFormat() (gputypes.VertexFormat, bool) {
	f, ok := vertexFormats[t]
	return f, ok
}

var vertexFormats = map[AttribType]gputypes.VertexFormat{
	AttribFloat:       gputypes.VertexFormatFloat32,
	AttribFloatVec2:   gputypes.VertexFormatFloat32x2,
	AttribFloatVec3:   gputypes.VertexFormatFloat32x3,
	AttribFloatVec4:   gputypes.VertexFormatFloat32x4,
	AttribInt:         gputypes.VertexFormatSint32,
	AttribIntVec2:     gputypes.VertexFormatSint32x2,
	AttribIntVec3:     gputypes.VertexFormatSint32x3,
	AttribIntVec4:     gputypes.VertexFormatSint32x4,
	AttribUnsignedInt: gputypes.VertexFormatUint32,
	AttribUintVec2:    gputypes.VertexFormatUint32x2,
	AttribUintVec3:    gputypes.VertexFormatUint32x3,
	AttribUintVec4:    gputypes.VertexFormatUint32x4,
}
