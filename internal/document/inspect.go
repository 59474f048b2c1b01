package document

import "strings"

// PictureInfo describes one embedded picture found on a slide.
type PictureInfo struct {
	Name    string `json:"name"`
	Bytes   int    `json:"bytes"`
	Grouped bool   `json:"grouped"`
	Marked  bool   `json:"marked"`
}

// SlideSummary is a read-only digest of a slide.
type SlideSummary struct {
	Index    int           `json:"index"`
	Template bool          `json:"template"`
	Name     string        `json:"name,omitempty"`
	Pictures []PictureInfo `json:"pictures"`
	Shapes   int           `json:"shapes"`
}

// OverlayName reads the first cell of the slide's info overlay. A marked
// overlay wins; otherwise the first unmarked table below BottomRegionTop
// with a non-empty first cell is used.
func OverlayName(s *Slide) string {
	tables := s.Tables()
	for _, t := range tables {
		if t.Marker == MarkerOverlay {
			return cellText(t)
		}
	}
	for _, t := range tables {
		if t.Box.Top <= BottomRegionTop {
			continue
		}
		if name := cellText(t); name != "" {
			return name
		}
	}
	return ""
}

func cellText(t *Shape) string {
	c := t.Table.Cell(0, 0)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text)
}

// Inspect summarises every slide of the deck.
func Inspect(deck *Deck) []SlideSummary {
	out := make([]SlideSummary, 0, len(deck.Slides))
	for i, s := range deck.Slides {
		sum := SlideSummary{
			Index:    i,
			Template: i == 0,
			Name:     OverlayName(s),
			Pictures: []PictureInfo{},
			Shapes:   len(s.Shapes),
		}
		for _, sh := range s.Shapes {
			if sh.Kind == KindPicture {
				sum.Pictures = append(sum.Pictures, pictureInfo(sh, false))
			}
			if sh.Kind == KindGroup {
				for _, child := range sh.Children {
					if child.Kind == KindPicture {
						sum.Pictures = append(sum.Pictures, pictureInfo(child, true))
					}
				}
			}
		}
		out = append(out, sum)
	}
	return out
}

func pictureInfo(sh *Shape, grouped bool) PictureInfo {
	info := PictureInfo{Name: sh.Name, Grouped: grouped, Marked: sh.Marker == MarkerPhoto}
	if sh.Image != nil {
		info.Bytes = len(sh.Image.Data)
	}
	return info
}
