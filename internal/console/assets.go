package console

import "github.com/samvad-hq/shapes-console/internal/domain"

// Asset is the terminal drawing for one image key.
type Asset struct {
	Name string
	Art  []string
}

// Assets resolves image keys to drawings.
type Assets map[domain.ImageKey]Asset

// DefaultAssets returns the built-in drawing for every image key.
func DefaultAssets() Assets {
	return Assets{
		domain.ImageHello: {Name: "hello", Art: []string{
			` \o/ `,
			`  |  `,
			` / \ `,
		}},
		domain.ImageConfused: {Name: "confused", Art: []string{
			` ??? `,
			`(o_O)`,
			`  ?  `,
		}},
		domain.ImageSquare: {Name: "square", Art: []string{
			`+---+`,
			`|   |`,
			`+---+`,
		}},
		domain.ImageCircle: {Name: "circle", Art: []string{
			` .-. `,
			`(   )`,
			` '-' `,
		}},
		domain.ImageRectangle: {Name: "rectangle", Art: []string{
			`+---------+`,
			`|         |`,
			`+---------+`,
		}},
		domain.ImageTriangle: {Name: "triangle", Art: []string{
			`  /\  `,
			` /  \ `,
			`/____\`,
		}},
	}
}

// Lookup returns the asset for key, falling back to the confused drawing.
func (a Assets) Lookup(key domain.ImageKey) Asset {
	if asset, ok := a[key]; ok {
		return asset
	}
	if asset, ok := a[domain.ImageConfused]; ok {
		return asset
	}
	return Asset{Name: string(key)}
}
