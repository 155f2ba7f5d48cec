package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/textbox/fonts"
	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/renderer"
	"github.com/ByLCY/textbox/scene"
)

// Renderer rasterizes scenes into PNG images with golang.org/x/image/font.
// One scene unit is one pixel.
type Renderer struct {
	baseDir string

	fontMu sync.Mutex
	fonts  map[string]*opentype.Font // by src
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Target   = (*Surface)(nil)
)

// NewRenderer creates a raster renderer resolving relative font paths against baseDir.
func NewRenderer(baseDir string) *Renderer {
	return &Renderer{baseDir: baseDir, fonts: map[string]*opentype.Font{}}
}

// Render draws every box of sc and encodes the result as PNG.
func (r *Renderer) Render(sc *scene.Scene) (*renderer.Output, error) {
	if sc == nil {
		return nil, fmt.Errorf("场景为空")
	}
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(sc.Width)), int(math.Ceil(sc.Height))))
	layouts, err := renderer.DrawScene(sc, r.NewSurface(img))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return &renderer.Output{Data: buf.Bytes(), Format: "png", Layouts: layouts}, nil
}

// NewSurface wraps dst as a drawing surface sharing r's font cache.
func (r *Renderer) NewSurface(dst draw.Image) *Surface {
	return &Surface{
		r:     r,
		dst:   dst,
		src:   image.NewUniform(color.Black),
		faces: map[faceKey]font.Face{},
	}
}

func (r *Renderer) parsedFont(src string) (*opentype.Font, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if f, ok := r.fonts[src]; ok {
		return f, nil
	}
	data, err := fonts.Load(src, r.baseDir)
	if err == nil {
		var f *opentype.Font
		if f, err = opentype.Parse(data); err == nil {
			r.fonts[src] = f
			return f, nil
		}
	}
	layout.Logger().Warn("font unavailable, using fallback", "src", src, "err", err)
	data, fbErr := fonts.Load(fonts.Default, "")
	if fbErr != nil {
		return nil, err
	}
	f, fbErr := opentype.Parse(data)
	if fbErr != nil {
		return nil, fmt.Errorf("解析内置字体失败: %w", fbErr)
	}
	r.fonts[src] = f
	return f, nil
}

type faceKey struct {
	src  string
	size float64
}

// Surface is a layout.Surface over a draw.Image.
type Surface struct {
	r     *Renderer
	dst   draw.Image
	src   *image.Uniform
	face  font.Face
	faces map[faceKey]font.Face

	align layout.TextAlign
	dir   layout.Direction
}

// SetFont selects the face used by MeasureText and DrawStringAt.
// Faces are created at 72 dpi so the font size equals the pixel size.
func (s *Surface) SetFont(spec scene.FontSpec) error {
	key := faceKey{src: spec.Src, size: spec.Size}
	if face, ok := s.faces[key]; ok {
		s.face = face
		return nil
	}
	f, err := s.r.parsedFont(spec.Src)
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: spec.Size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return fmt.Errorf("创建字体 %s 失败: %w", spec.Name, err)
	}
	s.faces[key] = face
	s.face = face
	return nil
}

func (s *Surface) SetColor(c scene.Color) { s.src = image.NewUniform(c.RGBA()) }

// FillRect paints box with c, blending over what is already there.
func (s *Surface) FillRect(box layout.Box, c scene.Color) {
	rect := image.Rect(
		int(math.Round(box.X)), int(math.Round(box.Y)),
		int(math.Round(box.X+box.Width)), int(math.Round(box.Y+box.Height)),
	)
	draw.Draw(s.dst, rect, image.NewUniform(c.RGBA()), image.Point{}, draw.Over)
}

func (s *Surface) MeasureText(str string) layout.TextMetrics {
	if s.face == nil {
		return layout.TextMetrics{}
	}
	m := s.face.Metrics()
	bounds, advance := font.BoundString(s.face, str)
	return layout.TextMetrics{
		Width:         fromFixed(advance),
		FontAscent:    fromFixed(m.Ascent),
		FontDescent:   fromFixed(m.Descent),
		ActualAscent:  fromFixed(-bounds.Min.Y),
		ActualDescent: fromFixed(bounds.Max.Y),
	}
}

// DrawStringAt draws str with its baseline at y; x is the left edge, the
// center or the right edge of the string depending on the text align.
func (s *Surface) DrawStringAt(str string, x, y float64) error {
	if s.face == nil {
		return fmt.Errorf("未设置字体")
	}
	width := fromFixed(font.MeasureString(s.face, str))
	switch s.align {
	case layout.AlignCenter:
		x -= width / 2
	case layout.AlignRight:
		x -= width
	}
	d := font.Drawer{
		Dst:  s.dst,
		Src:  s.src,
		Face: s.face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(str)
	return nil
}

func (s *Surface) TextAlign() layout.TextAlign     { return s.align }
func (s *Surface) SetTextAlign(a layout.TextAlign) { s.align = a }
func (s *Surface) Direction() layout.Direction     { return s.dir }
func (s *Surface) SetDirection(d layout.Direction) { s.dir = d }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
