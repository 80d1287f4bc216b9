package brackets

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/pskpp/festival/models"
)

const (
	crownGlyph     = "♛"
	connectorColor = "#9CA3AF"
	cardBorder     = "#D1D5DB"
	mutedText      = "#374151"
	lightFill      = "#F3F4F6"
)

// SVGStyle carries the theme values used when drawing a bracket.
type SVGStyle struct {
	Primary   string
	Secondary string
	Font      string
}

func StyleFromTheme(t models.Theme) SVGStyle {
	return SVGStyle{Primary: t.Primary, Secondary: t.Secondary, Font: t.BodyFont}
}

// RenderSVG writes the layout as a standalone SVG document. A nil layout
// writes nothing.
func RenderSVG(w io.Writer, l *Layout, style SVGStyle) error {
	if l == nil {
		return nil
	}
	if style == (SVGStyle{}) {
		style = StyleFromTheme(models.DefaultTheme())
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s, sans-serif">`+"\n",
		num(l.Width), num(l.Height), num(l.Width), num(l.Height), escape(style.Font))

	for _, col := range l.Columns {
		fmt.Fprintf(&buf, `<g class="round" data-round="%d">`+"\n", col.Index)
		fmt.Fprintf(&buf, `<text x="%s" y="%s" text-anchor="middle" font-weight="bold" fill="%s">%s</text>`+"\n",
			num(col.X+MatchWidth/2), num(Padding+HeaderHeight/2), escape(style.Primary), escape(col.Title))
		for _, m := range col.Matches {
			writeConnectors(&buf, m.Connectors)
			writeMatch(&buf, m, style)
		}
		buf.WriteString("</g>\n")
	}
	buf.WriteString("</svg>\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeConnectors(buf *bytes.Buffer, segments []Segment) {
	for _, s := range segments {
		fmt.Fprintf(buf, `<line class="connector %s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`+"\n",
			s.Kind, num(s.X1), num(s.Y1), num(s.X2), num(s.Y2), connectorColor)
	}
}

func writeMatch(buf *bytes.Buffer, m MatchBlock, style SVGStyle) {
	fmt.Fprintf(buf, `<g class="match" data-match="%d">`+"\n", m.Index)
	fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" rx="8" fill="#FFFFFF" stroke="%s"/>`+"\n",
		num(m.X), num(m.Y), num(m.Width), num(m.Height), cardBorder)

	rowHeight := m.Height / 2
	for i, row := range m.Rows {
		top := m.Y + float64(i)*rowHeight
		baseline := top + rowHeight/2 + 5
		nameFill, nameWeight, badgeFill := mutedText, "normal", lightFill
		label := row.Label
		if row.IsWinner {
			nameFill, nameWeight, badgeFill = style.Primary, "bold", style.Secondary
			label = crownGlyph + " " + label
			fmt.Fprintf(buf, `<rect class="winner" x="%s" y="%s" width="%s" height="%s" fill="%s" fill-opacity="0.2"/>`+"\n",
				num(m.X+4), num(top+4), num(m.Width-8), num(rowHeight-8), escape(style.Secondary))
		}
		fmt.Fprintf(buf, `<text x="%s" y="%s" font-size="14" font-weight="%s" fill="%s"><title>%s</title>%s</text>`+"\n",
			num(m.X+10), num(baseline), nameWeight, escape(nameFill), escape(row.Name), escape(label))
		fmt.Fprintf(buf, `<rect x="%s" y="%s" width="28" height="20" rx="4" fill="%s"/>`+"\n",
			num(m.X+m.Width-38), num(top+rowHeight/2-10), escape(badgeFill))
		fmt.Fprintf(buf, `<text x="%s" y="%s" font-size="12" font-weight="bold" text-anchor="middle" fill="%s">%s</text>`+"\n",
			num(m.X+m.Width-24), num(baseline-1), escape(nameFill), escape(row.Score))
		if i == 0 {
			fmt.Fprintf(buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
				num(m.X+4), num(top+rowHeight), num(m.X+m.Width-4), num(top+rowHeight), cardBorder)
		}
	}
	buf.WriteString("</g>\n")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
