package document

import (
	"fmt"

	"github.com/google/uuid"
)

// End inserts a shape after every existing shape.
const End = -1

// New creates an empty deck with the default slide size.
func New(layouts ...*Layout) *Deck {
	return &Deck{
		Width:   DefaultSlideWidth,
		Height:  DefaultSlideHeight,
		Layouts: layouts,
	}
}

// Template returns the deck's template slide (index 0).
func (d *Deck) Template() (*Slide, error) {
	if d == nil || len(d.Slides) == 0 {
		return nil, ErrNoTemplate
	}
	return d.Slides[0], nil
}

// Layout looks up a layout by name.
func (d *Deck) Layout(name string) (*Layout, error) {
	for _, l := range d.Layouts {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
}

// NewSlide creates a detached slide from the named layout, materialising
// the layout's placeholders. The slide is not part of the deck until
// AppendSlide is called.
func (d *Deck) NewSlide(layoutName string) (*Slide, error) {
	layout, err := d.Layout(layoutName)
	if err != nil {
		return nil, err
	}
	slide := &Slide{
		ID:     uuid.NewString(),
		Layout: layout.Name,
		Shapes: make([]*Shape, 0, len(layout.Placeholders)),
	}
	for _, ph := range layout.Placeholders {
		slide.Shapes = append(slide.Shapes, CloneShape(ph))
	}
	return slide, nil
}

// AppendSlide adds a slide at the end of the deck.
func (d *Deck) AppendSlide(s *Slide) {
	d.Slides = append(d.Slides, s)
}

// Truncate keeps the first n slides.
func (d *Deck) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(d.Slides) {
		return
	}
	for i := n; i < len(d.Slides); i++ {
		d.Slides[i] = nil
	}
	d.Slides = d.Slides[:n]
}

// InsertShape inserts sh at pos among the slide's top-level shapes.
// A negative or out-of-range pos appends.
func (s *Slide) InsertShape(sh *Shape, pos int) {
	s.Shapes = insertAt(s.Shapes, sh, pos)
}

// InsertChild inserts sh at pos among the group's children.
func (g *Shape) InsertChild(sh *Shape, pos int) {
	g.Children = insertAt(g.Children, sh, pos)
}

func insertAt(list []*Shape, sh *Shape, pos int) []*Shape {
	if pos < 0 || pos >= len(list) {
		return append(list, sh)
	}
	list = append(list, nil)
	copy(list[pos+1:], list[pos:])
	list[pos] = sh
	return list
}

// Locate finds sh on the slide. parent is nil for top-level shapes,
// otherwise the group that directly contains sh.
func (s *Slide) Locate(sh *Shape) (parent *Shape, index int, err error) {
	for i, top := range s.Shapes {
		if top == sh {
			return nil, i, nil
		}
	}
	for _, top := range s.Shapes {
		if p, i, ok := locateIn(top, sh); ok {
			return p, i, nil
		}
	}
	return nil, -1, ErrShapeNotFound
}

func locateIn(group, sh *Shape) (*Shape, int, bool) {
	if group.Kind != KindGroup {
		return nil, -1, false
	}
	for i, child := range group.Children {
		if child == sh {
			return group, i, true
		}
	}
	for _, child := range group.Children {
		if p, i, ok := locateIn(child, sh); ok {
			return p, i, true
		}
	}
	return nil, -1, false
}

// RemoveShape detaches sh from the slide, wherever it sits in the tree.
func (s *Slide) RemoveShape(sh *Shape) error {
	parent, i, err := s.Locate(sh)
	if err != nil {
		return err
	}
	if parent == nil {
		s.Shapes = removeAt(s.Shapes, i)
	} else {
		parent.Children = removeAt(parent.Children, i)
	}
	return nil
}

func removeAt(list []*Shape, i int) []*Shape {
	copy(list[i:], list[i+1:])
	list[len(list)-1] = nil
	return list[:len(list)-1]
}

// ClearShapes removes every shape from the slide.
func (s *Slide) ClearShapes() {
	s.Shapes = []*Shape{}
}

// Tables returns the slide's top-level table shapes in z-order.
func (s *Slide) Tables() []*Shape {
	var tables []*Shape
	for _, sh := range s.Shapes {
		if sh.Kind == KindTable && sh.Table != nil {
			tables = append(tables, sh)
		}
	}
	return tables
}

// Pictures returns picture shapes on the slide and one level inside any
// group, in document order.
func (s *Slide) Pictures() []*Shape {
	var pics []*Shape
	for _, sh := range s.Shapes {
		switch sh.Kind {
		case KindPicture:
			pics = append(pics, sh)
		case KindGroup:
			for _, child := range sh.Children {
				if child.Kind == KindPicture {
					pics = append(pics, child)
				}
			}
		}
	}
	return pics
}
