package formatting

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"strconv"
	"sync"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	planImageWidth   = 1200
	planImageHeight  = 900
	planHeaderHeight = 80
	planLegendHeight = 60
	planMargin       = 40
	tableRadius      = 8.0
	shadowOffset     = 3.0
)

// Константы шрифтов
const (
	titleFontSize      = 28.0
	tableNameFontSize  = 18.0
	tableSeatsFontSize = 14.0
	elementFontSize    = 13.0
	legendItemFontSize = 15.0
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{80, 85, 90, 220}
	tableTextColor  = color.RGBA{20, 24, 28, 230}
	shadowColor     = color.RGBA{0, 0, 0, 20}
	legendItemColor = color.RGBA{70, 74, 78, 220}

	tableFreeColor     = color.RGBA{133, 193, 85, 220}
	tableOccupiedColor = color.RGBA{255, 182, 193, 255}
	tableInactiveColor = color.RGBA{158, 158, 158, 200}

	elementColors = map[model.FloorPlanElementType]color.RGBA{
		model.ElementWall:       {90, 90, 95, 255},
		model.ElementEntrance:   {205, 170, 125, 255},
		model.ElementBar:        {150, 110, 80, 230},
		model.ElementWindow:     {170, 210, 240, 255},
		model.ElementDecoration: {210, 215, 200, 200},
	}
)

// ErrEmptyFloorPlan план не задан
var ErrEmptyFloorPlan = errors.New("floor plan is empty")

var (
	fontsOnce   sync.Once
	parsedFonts map[FontStyle]*opentype.Font
)

// loadFont выбирает шрифт указанного стиля или basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsOnce.Do(func() {
		parsedFonts = make(map[FontStyle]*opentype.Font)
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			parsedFonts[FontStyleDefault] = f
		}
		if f, err := opentype.Parse(gobold.TTF); err == nil {
			parsedFonts[FontStyleBold] = f
		}
	})

	parsed, ok := parsedFonts[style]
	if !ok {
		parsed, ok = parsedFonts[FontStyleDefault]
	}
	if ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// planViewport переводит координаты плана в пиксели картинки
type planViewport struct {
	minX, minY float64
	scale      float64
	offsetX    float64
	offsetY    float64
}

func newPlanViewport(plan *model.FloorPlan) planViewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(x, y, w, h float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x+w)
		maxY = math.Max(maxY, y+h)
	}
	for _, t := range plan.Tables {
		extend(t.X, t.Y, t.Width, t.Height)
	}
	for _, e := range plan.Elements {
		extend(e.X, e.Y, e.Width, e.Height)
	}

	areaW := float64(planImageWidth - 2*planMargin)
	areaH := float64(planImageHeight - planHeaderHeight - planLegendHeight - 2*planMargin)

	spanX := math.Max(maxX-minX, 1)
	spanY := math.Max(maxY-minY, 1)
	scale := math.Min(areaW/spanX, areaH/spanY)

	return planViewport{
		minX:    minX,
		minY:    minY,
		scale:   scale,
		offsetX: planMargin + (areaW-spanX*scale)/2,
		offsetY: planHeaderHeight + planMargin + (areaH-spanY*scale)/2,
	}
}

func (v planViewport) rect(x, y, w, h float64) (float64, float64, float64, float64) {
	return v.offsetX + (x-v.minX)*v.scale, v.offsetY + (y-v.minY)*v.scale, w * v.scale, h * v.scale
}

// GenerateFloorPlanImage рисует план зала: столы окрашены по занятости, неактивные серые.
// occupied: id занятых столов.
func GenerateFloorPlanImage(plan *model.FloorPlan, occupied map[string]bool, title string) ([]byte, error) {
	if plan == nil || len(plan.Tables)+len(plan.Elements) == 0 {
		return nil, ErrEmptyFloorPlan
	}

	dc := createCanvas()
	drawTitle(dc, title)

	view := newPlanViewport(plan)
	for _, e := range plan.Elements {
		drawElement(dc, view, e)
	}
	for _, t := range plan.Tables {
		drawTable(dc, view, t, occupied[t.ID])
	}

	drawLegend(dc)
	return encodeImage(dc)
}

func createCanvas() *gg.Context {
	dc := gg.NewContext(planImageWidth, planImageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

func drawTitle(dc *gg.Context, title string) {
	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, planImageWidth/2, planHeaderHeight/2, 0.5, 0.5)
}

func drawElement(dc *gg.Context, view planViewport, e model.FloorPlanElement) {
	x, y, w, h := view.rect(e.X, e.Y, e.Width, e.Height)

	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(gg.Radians(e.Rotation), x+w/2, y+h/2)

	c, ok := elementColors[e.Type]
	if !ok {
		c = elementColors[model.ElementDecoration]
	}
	dc.SetColor(c)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	if e.Label != "" {
		loadFont(dc, elementFontSize, FontStyleDefault)
		dc.SetColor(darkenColor(c, 0.4))
		dc.DrawStringAnchored(e.Label, x+w/2, y+h/2, 0.5, 0.5)
	}
}

func drawTable(dc *gg.Context, view planViewport, t model.Table, occupied bool) {
	x, y, w, h := view.rect(t.X, t.Y, t.Width, t.Height)
	cx, cy := x+w/2, y+h/2
	fill := getTableColor(t, occupied)

	dc.Push()
	dc.RotateAbout(gg.Radians(t.Rotation), cx, cy)

	tableShape(dc, t.Shape, x+shadowOffset, y+shadowOffset, w, h)
	dc.SetColor(shadowColor)
	dc.Fill()

	tableShape(dc, t.Shape, x, y, w, h)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(darkenColor(fill, 0.7))
	dc.SetLineWidth(2)
	dc.Stroke()
	dc.Pop()

	// Подписи не поворачиваем, чтобы их было удобно читать
	dc.SetColor(tableTextColor)
	loadFont(dc, tableNameFontSize, FontStyleBold)
	dc.DrawStringAnchored(t.Name, cx, cy-tableSeatsFontSize/2, 0.5, 0.5)
	loadFont(dc, tableSeatsFontSize, FontStyleDefault)
	dc.DrawStringAnchored(strconv.Itoa(t.Capacity)+" мест", cx, cy+tableNameFontSize/2+2, 0.5, 0.5)
}

func tableShape(dc *gg.Context, shape model.TableShape, x, y, w, h float64) {
	if shape == model.TableShapeRound {
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
		return
	}
	dc.DrawRoundedRectangle(x, y, w, h, tableRadius)
}

// getTableColor возвращает цвет стола по его состоянию
func getTableColor(t model.Table, occupied bool) color.RGBA {
	switch {
	case !t.IsActive:
		return tableInactiveColor
	case occupied:
		return tableOccupiedColor
	default:
		return tableFreeColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawLegend рисует легенду внизу
func drawLegend(dc *gg.Context) {
	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"Свободен", tableFreeColor},
		{"Занят", tableOccupiedColor},
		{"Не используется", tableInactiveColor},
	}

	boxW := 24.0
	boxH := 16.0
	liX := float64(planMargin)
	liY := float64(planImageHeight-planLegendHeight) + (planLegendHeight-boxH)/2

	loadFont(dc, legendItemFontSize, FontStyleDefault)
	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2, 0, 0.35)
		w, _ := dc.MeasureString(item.Label)
		liX += boxW + 8 + w + 32
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
