package document

// EMU is the container's device-independent length unit (914400 per inch).
type EMU = int64

const (
	EMUPerInch  EMU = 914400
	EMUPerPoint EMU = 12700

	DefaultSlideWidth  = 10 * EMUPerInch
	DefaultSlideHeight = 15 * EMUPerInch / 2

	// BottomRegionTop is the line below which a table's top edge marks it
	// as a per-record info grid.
	BottomRegionTop = 4 * EMUPerInch
)

// Inches converts a length in inches to EMU.
func Inches(in float64) EMU {
	return EMU(in * float64(EMUPerInch))
}

// ShapeKind tags the type of a shape node.
type ShapeKind string

const (
	KindPicture ShapeKind = "picture"
	KindText    ShapeKind = "text"
	KindTable   ShapeKind = "table"
	KindGroup   ShapeKind = "group"
)

// Marker values identify content injected by the generator.
const (
	MarkerPhoto   = "deckgen:photo"
	MarkerOverlay = "deckgen:overlay"
)

// Box is a shape's bounding box.
type Box struct {
	Left   EMU `json:"left"`
	Top    EMU `json:"top"`
	Width  EMU `json:"width"`
	Height EMU `json:"height"`
}

// Image is an embedded raster payload.
type Image struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// TextStyle describes run and cell formatting.
type TextStyle struct {
	Bold       bool    `json:"bold,omitempty"`
	SizePt     float64 `json:"size_pt,omitempty"`
	Align      string  `json:"align,omitempty"`
	Anchor     string  `json:"anchor,omitempty"`
	Color      string  `json:"color,omitempty"`
	Background string  `json:"background,omitempty"`
}

// Cell is a single table cell.
type Cell struct {
	Text  string    `json:"text"`
	Style TextStyle `json:"style"`
}

// Table is a grid of cells with explicit column widths.
type Table struct {
	ColumnWidths []EMU    `json:"column_widths"`
	Rows         [][]Cell `json:"rows"`
}

// Cell returns the cell at (row, col), or nil when out of range.
func (t *Table) Cell(row, col int) *Cell {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// Shape is a node in a slide's shape tree.
type Shape struct {
	ID       string    `json:"id"`
	Name     string    `json:"name,omitempty"`
	Kind     ShapeKind `json:"kind"`
	Box      Box       `json:"box"`
	Marker   string    `json:"marker,omitempty"`
	Text     string    `json:"text,omitempty"`
	Style    TextStyle `json:"style"`
	Table    *Table    `json:"table,omitempty"`
	Image    *Image    `json:"image,omitempty"`
	Children []*Shape  `json:"children,omitempty"`
}

// HasText reports whether the shape carries a text frame.
func (s *Shape) HasText() bool {
	return s.Kind == KindText
}

// Geometry returns the shape's bounding box.
func (s *Shape) Geometry() Box {
	return s.Box
}

// SetGeometry replaces the shape's bounding box.
func (s *Shape) SetGeometry(b Box) {
	s.Box = b
}

// Layout is a slide layout definition. Placeholders are materialised on
// every slide created from the layout.
type Layout struct {
	Name         string   `json:"name"`
	Placeholders []*Shape `json:"placeholders,omitempty"`
}

// Slide is an ordered sequence of shapes; later shapes render on top.
type Slide struct {
	ID     string   `json:"id"`
	Layout string   `json:"layout"`
	Shapes []*Shape `json:"shapes"`
}

// Deck is an ordered sequence of slides. Slides[0] is the template.
type Deck struct {
	Width   EMU       `json:"width"`
	Height  EMU       `json:"height"`
	Layouts []*Layout `json:"layouts"`
	Slides  []*Slide  `json:"slides"`
}
