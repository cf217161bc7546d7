package raster

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/riverfjs/chatmark-go/internal/types"
)

// variant 字体变体
type variant int

const (
	regular variant = iota
	bold
	italic
	boldItalic
	mono
)

var fontData = [...][]byte{
	regular:    goregular.TTF,
	bold:       gobold.TTF,
	italic:     goitalic.TTF,
	boldItalic: gobolditalic.TTF,
	mono:       gomono.TTF,
}

var (
	parsedFonts [len(fontData)]*opentype.Font
	parseErr    error
	parseOnce   sync.Once
)

// loadFonts 解析内置 Go 字体（单例）
func loadFonts() error {
	parseOnce.Do(func() {
		for i, data := range fontData {
			f, err := opentype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse font %d: %w", i, err)
				return
			}
			parsedFonts[i] = f
		}
	})
	return parseErr
}

func variantOf(s types.SpanStyle) variant {
	if s.Family == types.FamilyMonospace {
		return mono
	}
	b := s.Weight == types.WeightBold
	i := s.FontStyle == types.StyleItalic
	switch {
	case b && i:
		return boldItalic
	case b:
		return bold
	case i:
		return italic
	default:
		return regular
	}
}

type faceKey struct {
	v    variant
	size float64
}

// faceCache 按变体和字号缓存一次渲染用到的字体
type faceCache struct {
	dpi   float64
	faces map[faceKey]font.Face
}

func newFaceCache(dpi float64) (*faceCache, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return &faceCache{dpi: dpi, faces: make(map[faceKey]font.Face)}, nil
}

func (c *faceCache) face(v variant, size float64) font.Face {
	key := faceKey{v, size}
	if f, ok := c.faces[key]; ok {
		return f
	}
	f, err := opentype.NewFace(parsedFonts[v], &opentype.FaceOptions{
		Size:    size,
		DPI:     c.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// 内置字体不会失败；退回常规字体
		if v != regular {
			return c.face(regular, size)
		}
		panic(fmt.Sprintf("raster: regular face: %v", err))
	}
	c.faces[key] = f
	return f
}

func (c *faceCache) close() {
	for _, f := range c.faces {
		f.Close()
	}
}
