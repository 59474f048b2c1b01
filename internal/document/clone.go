package document

import "github.com/google/uuid"

// CloneShape deep-copies a shape tree. The copy shares no nodes, tables,
// or image buffers with the source and gets fresh IDs.
func CloneShape(sh *Shape) *Shape {
	if sh == nil {
		return nil
	}
	out := *sh
	out.ID = uuid.NewString()
	if sh.Table != nil {
		out.Table = cloneTable(sh.Table)
	}
	if sh.Image != nil {
		img := *sh.Image
		img.Data = append([]byte(nil), sh.Image.Data...)
		out.Image = &img
	}
	if sh.Children != nil {
		out.Children = make([]*Shape, len(sh.Children))
		for i, child := range sh.Children {
			out.Children[i] = CloneShape(child)
		}
	}
	return &out
}

func cloneTable(t *Table) *Table {
	out := &Table{
		ColumnWidths: append([]EMU(nil), t.ColumnWidths...),
		Rows:         make([][]Cell, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	return out
}

// CloneSlide deep-copies a slide and all of its shapes.
func CloneSlide(s *Slide) *Slide {
	out := &Slide{
		ID:     uuid.NewString(),
		Layout: s.Layout,
		Shapes: make([]*Shape, len(s.Shapes)),
	}
	for i, sh := range s.Shapes {
		out.Shapes[i] = CloneShape(sh)
	}
	return out
}

// CopyInto creates a detached slide in dst from src's layout, drops the
// layout's default placeholders, and deep-copies src's shapes in order.
// src may belong to a different deck than dst.
func CopyInto(dst *Deck, src *Slide) (*Slide, error) {
	slide, err := dst.NewSlide(src.Layout)
	if err != nil {
		return nil, err
	}
	slide.ClearShapes()
	for _, sh := range src.Shapes {
		slide.InsertShape(CloneShape(sh), End)
	}
	return slide, nil
}
