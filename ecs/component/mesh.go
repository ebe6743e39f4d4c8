package component

import (
	"image/color"

	"github.com/milk9111/arcball/mesh"
)

type Mesh struct {
	Data  *mesh.Data
	Color color.NRGBA
}

var MeshComponent = NewComponent[Mesh]()
