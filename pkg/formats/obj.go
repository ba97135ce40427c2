package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/scattermesh/pkg/mesh"
)

// OBJObject is one named mesh in a Wavefront OBJ file.
type OBJObject struct {
	Name string
	Mesh *mesh.TriangleMesh
}

// WriteOBJ writes the objects as a single OBJ stream. OBJ indices are
// global and 1-based, so each object's indices are shifted past the
// vertices and texcoords written before it.
func WriteOBJ(w io.Writer, objects ...OBJObject) error {
	bw := bufio.NewWriter(w)

	var vOff, tOff uint32 = 1, 1
	for _, obj := range objects {
		m := obj.Mesh
		if obj.Name != "" {
			fmt.Fprintf(bw, "o %s\n", obj.Name)
		}
		for _, p := range m.Points {
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		for _, t := range m.TexCoords {
			fmt.Fprintf(bw, "vt %g %g\n", t.X, t.Y)
		}
		for _, f := range m.Faces {
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n",
				f.V[0]+vOff, f.T[0]+tOff,
				f.V[1]+vOff, f.T[1]+tOff,
				f.V[2]+vOff, f.T[2]+tOff)
		}
		vOff += uint32(len(m.Points))
		tOff += uint32(len(m.TexCoords))
	}

	return bw.Flush()
}

// SaveOBJ writes the objects to path.
func SaveOBJ(path string, objects ...OBJObject) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, objects...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
