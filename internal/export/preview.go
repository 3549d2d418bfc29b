package export

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"voxelgen/internal/world"
)

// BiomeSampler classifies world columns.
type BiomeSampler interface {
	BiomeAt(x, z int) [3]world.BiomeStrength
}

var biomeColors = map[world.BiomeType]color.RGBA{
	world.BiomeMountains: {R: 140, G: 140, B: 150, A: 255},
	world.BiomeFlat:      {R: 90, G: 170, B: 70, A: 255},
	world.BiomeQuarry:    {R: 200, G: 160, B: 90, A: 255},
}

// BiomeMap renders the dominant biome of each column in the w x h block of
// columns starting at (x0, z0). Pixels are darker where the dominant biome is weak.
func BiomeMap(s BiomeSampler, x0, z0, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for dz := 0; dz < h; dz++ {
		for dx := 0; dx < w; dx++ {
			b := s.BiomeAt(x0+dx, z0+dz)[0]
			img.SetRGBA(dx, dz, shade(biomeColors[b.Type], b.Strength))
		}
	}
	return img
}

func shade(c color.RGBA, strength float64) color.RGBA {
	f := 0.4 + 0.6*strength
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: 255,
	}
}

// Upscale enlarges img by an integer factor without smoothing.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WriteBiomePreview renders a biome map, upscales it and encodes it as PNG.
func WriteBiomePreview(dst io.Writer, s BiomeSampler, x0, z0, w, h, factor int) error {
	return png.Encode(dst, Upscale(BiomeMap(s, x0, z0, w, h), factor))
}
