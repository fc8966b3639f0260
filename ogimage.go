package homepage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/josh-nowak/homepage/consts"
)

const (
	ogWidth  = 1200
	ogHeight = 630
	ogMargin = 80
)

var (
	ogBackground = color.RGBA{0xfa, 0xf8, 0xf5, 0xff}
	ogInk        = color.RGBA{0x1c, 0x19, 0x17, 0xff}
	ogMuted      = color.RGBA{0x57, 0x53, 0x4e, 0xff}
)

// ogImages holds the rendered card for each page that has one. Page metadata
// is constant, so each card is rendered at most once.
var ogImages = map[string]func() ([]byte, error){
	"home": sync.OnceValues(func() ([]byte, error) { return encodeOGImage(consts.Home) }),
	"blog": sync.OnceValues(func() ([]byte, error) { return encodeOGImage(consts.Blog) }),
}

func encodeOGImage(m consts.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderOGImage(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderOGImage writes a 1200x630 PNG card showing the site name, the page
// title and its description.
func RenderOGImage(w io.Writer, m consts.Metadata) error {
	dst := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	charW := face.Advance
	textW := ogWidth - 2*ogMargin

	y := ogMargin
	y += drawScaledText(dst, ogMargin, y, 3, []string{consts.Site.Name}, ogMuted) + 40

	titleScale := 6
	y += drawScaledText(dst, ogMargin, y, titleScale, wrapWords(m.Title, textW/(charW*titleScale)), ogInk) + 40

	descScale := 3
	drawScaledText(dst, ogMargin, y, descScale, wrapWords(m.Description, textW/(charW*descScale)), ogMuted)

	drawScaledText(dst, ogMargin, ogHeight-ogMargin-2*face.Height, 2, []string{consts.Site.Email}, ogMuted)

	return png.Encode(w, dst)
}

// drawScaledText renders lines with the 7x13 bitmap face onto a small canvas
// and scales it onto dst at (x, y). It returns the height drawn.
func drawScaledText(dst *image.RGBA, x, y, scale int, lines []string, c color.Color) int {
	if len(lines) == 0 {
		return 0
	}
	face := basicfont.Face7x13
	maxLen := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxLen {
			maxLen = n
		}
	}
	if maxLen == 0 {
		return 0
	}
	small := image.NewRGBA(image.Rect(0, 0, maxLen*face.Advance, len(lines)*face.Height))
	d := &font.Drawer{Dst: small, Src: image.NewUniform(c), Face: face}
	for i, l := range lines {
		d.Dot = fixed.P(0, i*face.Height+face.Ascent)
		d.DrawString(l)
	}

	b := small.Bounds()
	target := image.Rect(x, y, x+b.Dx()*scale, y+b.Dy()*scale)
	draw.CatmullRom.Scale(dst, target, small, b, draw.Over, nil)
	return target.Dy()
}

// wrapWords greedily breaks s into lines of at most width runes.
func wrapWords(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(word)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func (a *App) handleOGImage(c echo.Context) error {
	name := strings.TrimSuffix(c.Param("image"), ".png")
	render, ok := ogImages[name]
	if !ok || name == c.Param("image") {
		return echo.ErrNotFound
	}
	b, err := render()
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/png", b)
}
