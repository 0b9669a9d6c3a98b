package templates

import (
	"fmt"
	"strconv"
)

// LerpMode selects how the generated interpolator rounds its result.
type LerpMode int

const (
	LerpFloat   LerpMode = iota // plain linear blend
	LerpRounded                 // integer types, rounded to nearest
	LerpClamped                 // small integer types, rounded then clamped to Min..Max
)

// LerpKind describes one generated Lerp function.
type LerpKind struct {
	Name string // suffix of the function name, e.g. "Float64"
	Type string // Go type, e.g. "float64"
	Mode LerpMode
	Min  int64
	Max  int64
}

// DefaultLerpKinds is the set generated into the property package.
var DefaultLerpKinds = []LerpKind{
	{Name: "Float64", Type: "float64", Mode: LerpFloat},
	{Name: "Float32", Type: "float32", Mode: LerpFloat},
	{Name: "Int", Type: "int", Mode: LerpRounded},
	{Name: "Int32", Type: "int32", Mode: LerpRounded},
	{Name: "Int64", Type: "int64", Mode: LerpRounded},
	{Name: "Uint8", Type: "uint8", Mode: LerpClamped, Min: 0, Max: 255},
}

// needsMath reports whether any generated body calls into package math.
func needsMath(kinds []LerpKind) bool {
	for _, k := range kinds {
		if k.Mode != LerpFloat {
			return true
		}
	}
	return false
}

func lerpBody(k LerpKind) string {
	switch k.Mode {
	case LerpFloat:
		return fmt.Sprintf("\treturn from + (to-from)*%s(t)\n", k.Type)
	case LerpRounded:
		return fmt.Sprintf("\treturn from + %s(math.Round(float64(to-from)*t))\n", k.Type)
	case LerpClamped:
		return "\tv := math.Round(float64(from) + (float64(to)-float64(from))*t)\n" +
			"\tif v < " + strconv.FormatInt(k.Min, 10) + " {\n" +
			"\t\treturn " + strconv.FormatInt(k.Min, 10) + "\n" +
			"\t}\n" +
			"\tif v > " + strconv.FormatInt(k.Max, 10) + " {\n" +
			"\t\treturn " + strconv.FormatInt(k.Max, 10) + "\n" +
			"\t}\n" +
			"\treturn " + k.Type + "(v)\n"
	default:
		panic(fmt.Sprintf("templates: unknown lerp mode %d", k.Mode))
	}
}
