// Package xmlexport serializa el árbol de categorías a XML con etree.
package xmlexport

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/jhoicas/category-api/internal/application/usecase"
	"github.com/jhoicas/category-api/internal/domain/hierarchy"
)

var _ usecase.TreeExporter = (*TreeExporter)(nil)

// Nombres de elementos del documento exportado.
const (
	RootElement     = "categories"
	CategoryElement = "category"
)

// TreeExporter genera <categories><category id=".." name=".."> anidados.
// El mismo formato lo lee cmd/seed (sin el atributo id).
type TreeExporter struct {
	indent int
}

// NewTreeExporter crea el exportador con indentación de 2 espacios.
func NewTreeExporter() *TreeExporter {
	return &TreeExporter{indent: 2}
}

// Export devuelve el documento XML del bosque.
func (e *TreeExporter) Export(forest []*hierarchy.Node) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(RootElement)
	appendNodes(root, forest)
	doc.Indent(e.indent)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml export: %w", err)
	}
	return out, nil
}

// ContentType del documento generado.
func (e *TreeExporter) ContentType() string {
	return "application/xml; charset=utf-8"
}

func appendNodes(parent *etree.Element, nodes []*hierarchy.Node) {
	for _, n := range nodes {
		el := parent.CreateElement(CategoryElement)
		el.CreateAttr("id", n.Category.ID.String())
		el.CreateAttr("name", n.Category.Name)
		appendNodes(el, n.Children)
	}
}
