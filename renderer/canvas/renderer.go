package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/text"

	"github.com/ByLCY/textbox/fonts"
	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/renderer"
	"github.com/ByLCY/textbox/scene"
)

// canvas 的长度单位是 mm；这里令 1 mm 对应 1 px，字号（pt）在边界处换算。
const mmToPt = 72.0 / 25.4

// Renderer draws scenes via github.com/tdewolff/canvas.
type Renderer struct {
	baseDir string
	format  string

	fontMu         sync.Mutex
	fontFamilies   map[string]*canvas.FontFamily // by src
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Target   = (*Surface)(nil)
)

// Formats supported by Render.
var Formats = []string{"png", "pdf", "svg"}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving fonts.
// format is one of Formats; empty means png.
func NewRenderer(baseDir, format string) (*Renderer, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = "png"
	}
	switch format {
	case "png", "pdf", "svg":
	default:
		return nil, fmt.Errorf("不支持的输出格式 %s（可用：%s）", format, strings.Join(Formats, ", "))
	}
	return &Renderer{
		baseDir:      baseDir,
		format:       format,
		fontFamilies: map[string]*canvas.FontFamily{},
	}, nil
}

// Render draws sc and encodes it in the renderer's format.
func (r *Renderer) Render(sc *scene.Scene) (*renderer.Output, error) {
	if sc == nil {
		return nil, fmt.Errorf("场景为空")
	}

	c := canvas.New(sc.Width, sc.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

	layouts, err := renderer.DrawScene(sc, r.NewSurface(ctx))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch r.format {
	case "pdf":
		writer := pdf.New(&buf, sc.Width, sc.Height, nil)
		writer.SetInfo(sc.Name, "", "", "", "textbox")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case "svg":
		if err := renderers.SVG()(&buf, c); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		if err := renderers.PNG(canvas.DPMM(1.0))(&buf, c); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	}
	return &renderer.Output{Data: buf.Bytes(), Format: r.format, Layouts: layouts}, nil
}

// NewSurface wraps ctx as a drawing surface sharing r's font families.
func (r *Renderer) NewSurface(ctx *canvas.Context) *Surface {
	return &Surface{r: r, ctx: ctx, color: color.Black}
}

func (r *Renderer) family(src string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[src]; ok {
		return family, nil
	}
	family := canvas.NewFontFamily(src)
	data, err := fonts.Load(src, r.baseDir)
	if err == nil {
		err = family.LoadFont(data, 0, canvas.FontRegular)
	}
	if err != nil {
		layout.Logger().Warn("font unavailable, using fallback", "src", src, "err", err)
		fallback, fbErr := r.fallback()
		if fbErr != nil {
			return nil, err
		}
		r.fontFamilies[src] = fallback
		return fallback, nil
	}
	r.fontFamilies[src] = family
	return family, nil
}

// fallback expects fontMu to be held.
func (r *Renderer) fallback() (*canvas.FontFamily, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, nil
	}
	data, err := fonts.Load(fonts.Default, "")
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("textbox-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	r.fallbackFamily = family
	return family, nil
}

// Surface is a layout.Surface over a canvas context.
// Coordinates are in px with the origin at the top-left corner.
type Surface struct {
	r      *Renderer
	ctx    *canvas.Context
	family *canvas.FontFamily
	size   float64 // pt
	color  color.Color
	face   *canvas.FontFace

	align layout.TextAlign
	dir   layout.Direction
}

// SetFont selects the face used by MeasureText and DrawStringAt.
func (s *Surface) SetFont(spec scene.FontSpec) error {
	family, err := s.r.family(spec.Src)
	if err != nil {
		return fmt.Errorf("加载字体 %s 失败: %w", spec.Name, err)
	}
	s.family, s.size = family, spec.Size*mmToPt
	s.face = family.Face(s.size, s.color, canvas.FontRegular, canvas.FontNormal)
	return nil
}

// SetColor changes the text color; the face is rebuilt because canvas
// faces carry their fill.
func (s *Surface) SetColor(c scene.Color) {
	s.color = c.RGBA()
	if s.family != nil {
		s.face = s.family.Face(s.size, s.color, canvas.FontRegular, canvas.FontNormal)
	}
}

func (s *Surface) FillRect(box layout.Box, c scene.Color) {
	s.ctx.SetFillColor(c.RGBA())
	s.ctx.SetStrokeColor(color.RGBA{})
	s.ctx.DrawPath(box.X, box.Y, canvas.Rectangle(box.Width, box.Height))
}

func (s *Surface) MeasureText(str string) layout.TextMetrics {
	if s.face == nil {
		return layout.TextMetrics{}
	}
	m := s.face.Metrics()
	return layout.TextMetrics{
		Width:       s.textWidth(str),
		FontAscent:  m.Ascent,
		FontDescent: m.Descent,
	}
}

// textWidth shapes str one bidi run at a time with an explicit direction,
// the same way canvas.NewTextLine does when drawing. Shaping a mixed or RTL
// string with the face's unset direction breaks cluster mapping in the shaper.
func (s *Surface) textWidth(str string) float64 {
	runes := []rune(str)
	if len(runes) == 0 {
		return 0
	}
	face := *s.face
	width := 0.0
	for _, item := range text.ScriptItemizer(runes, text.EmbeddingLevels(runes)) {
		face.Direction = text.LeftToRight
		if item.Level%2 == 1 {
			face.Direction = text.RightToLeft
		}
		width += face.TextWidth(item.Text)
	}
	return width
}

// DrawStringAt draws str with its baseline at y, anchored at x by the text align.
func (s *Surface) DrawStringAt(str string, x, y float64) error {
	if s.face == nil {
		return fmt.Errorf("未设置字体")
	}
	s.ctx.DrawText(x, y, canvas.NewTextLine(s.face, str, textAlign(s.align)))
	return nil
}

func (s *Surface) TextAlign() layout.TextAlign     { return s.align }
func (s *Surface) SetTextAlign(a layout.TextAlign) { s.align = a }
func (s *Surface) Direction() layout.Direction     { return s.dir }
func (s *Surface) SetDirection(d layout.Direction) { s.dir = d }

func textAlign(a layout.TextAlign) canvas.TextAlign {
	switch a {
	case layout.AlignCenter:
		return canvas.Center
	case layout.AlignRight:
		return canvas.Right
	default:
		return canvas.Left
	}
}
