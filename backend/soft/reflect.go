package soft

import (
	"github.com/gogpu/glprogram"
	"github.com/gogpu/naga/ir"
)

// input is a location-bound input of a vertex entry point.
type input struct {
	name     string
	location uint32
	typ      glprogram.AttribType
}

// vertexInputs returns the location-bound inputs of the first vertex entry
// point of m. Struct arguments are flattened into their members.
func vertexInputs(m *ir.Module) []input {
	for _, ep := range m.EntryPoints {
		if ep.Stage != ir.StageVertex {
			continue
		}
		var inputs []input
		for _, arg := range ep.Function.Arguments {
			inputs = appendInputs(inputs, m, arg.Name, arg.Type, arg.Binding)
		}
		return inputs
	}
	return nil
}

func appendInputs(dst []input, m *ir.Module, name string, th ir.TypeHandle, b *ir.Binding) []input {
	if b != nil {
		if loc, ok := (*b).(ir.LocationBinding); ok {
			dst = append(dst, input{name: name, location: loc.Location, typ: attribType(m, th)})
		}
		// builtins are not attributes
		return dst
	}
	if st, ok := typeInner(m, th).(ir.StructType); ok {
		for _, member := range st.Members {
			dst = appendInputs(dst, m, member.Name, member.Type, member.Binding)
		}
	}
	return dst
}

// uniformNames returns the names a GL driver would expose as uniforms:
// uniform-space globals, with struct members spelled "var.member", and
// texture/sampler handles.
func uniformNames(m *ir.Module) []string {
	var names []string
	for _, gv := range m.GlobalVariables {
		switch gv.Space {
		case ir.SpaceUniform:
			if st, ok := typeInner(m, gv.Type).(ir.StructType); ok {
				for _, member := range st.Members {
					names = append(names, gv.Name+"."+member.Name)
				}
				continue
			}
			names = append(names, gv.Name)
		case ir.SpaceHandle:
			names = append(names, gv.Name)
		}
	}
	return names
}

func typeInner(m *ir.Module, th ir.TypeHandle) ir.TypeInner {
	if int(th) >= len(m.Types) {
		return nil
	}
	return m.Types[th].Inner
}

var scalarAttribTypes = map[ir.ScalarKind]glprogram.AttribType{
	ir.ScalarFloat: glprogram.AttribFloat,
	ir.ScalarSint:  glprogram.AttribInt,
	ir.ScalarUint:  glprogram.AttribUnsignedInt,
	ir.ScalarBool:  glprogram.AttribBool,
}

var vectorAttribTypes = map[ir.ScalarKind][5]glprogram.AttribType{
	ir.ScalarFloat: {2: glprogram.AttribFloatVec2, 3: glprogram.AttribFloatVec3, 4: glprogram.AttribFloatVec4},
	ir.ScalarSint:  {2: glprogram.AttribIntVec2, 3: glprogram.AttribIntVec3, 4: glprogram.AttribIntVec4},
	ir.ScalarUint:  {2: glprogram.AttribUintVec2, 3: glprogram.AttribUintVec3, 4: glprogram.AttribUintVec4},
	ir.ScalarBool:  {2: glprogram.AttribBoolVec2, 3: glprogram.AttribBoolVec3, 4: glprogram.AttribBoolVec4},
}

// matrixAttribTypes is indexed [columns][rows].
var matrixAttribTypes = [5][5]glprogram.AttribType{
	2: {2: glprogram.AttribFloatMat2, 3: glprogram.AttribFloatMat2x3, 4: glprogram.AttribFloatMat2x4},
	3: {2: glprogram.AttribFloatMat3x2, 3: glprogram.AttribFloatMat3, 4: glprogram.AttribFloatMat3x4},
	4: {2: glprogram.AttribFloatMat4x2, 3: glprogram.AttribFloatMat4x3, 4: glprogram.AttribFloatMat4},
}

// attribType maps an IR type onto the GL type tag, or 0 when there is none.
func attribType(m *ir.Module, th ir.TypeHandle) glprogram.AttribType {
	switch t := typeInner(m, th).(type) {
	case ir.ScalarType:
		return scalarAttribTypes[t.Kind]
	case ir.VectorType:
		if t.Size > ir.Vec4 {
			return 0
		}
		return vectorAttribTypes[t.Scalar.Kind][t.Size]
	case ir.MatrixType:
		if t.Columns > ir.Vec4 || t.Rows > ir.Vec4 {
			return 0
		}
		return matrixAttribTypes[t.Columns][t.Rows]
	}
	return 0
}
