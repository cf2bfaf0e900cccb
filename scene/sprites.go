package scene

import (
	"github.com/lixenwraith/flappy-term/asset"
	"github.com/lixenwraith/flappy-term/core"
)

var (
	colorBird   = core.RGB{R: 250, G: 200, B: 40}
	colorBeak   = core.RGB{R: 240, G: 120, B: 30}
	colorPipe   = core.RGB{R: 90, G: 180, B: 60}
	colorGround = core.RGB{R: 140, G: 100, B: 60}
	colorCloud  = core.RGB{R: 70, G: 78, B: 90}
	colorScore  = core.RGBWhite
	colorBanner = core.RGB{R: 230, G: 70, B: 60}
)

const (
	birdW, birdH = 5, 3
	pivotX       = 2
	pivotY       = 1
	pipeW        = 4
)

var birdSprite = asset.MustParseSprite("bird", []string{
	".yyw.",
	"yyyyo",
	".yy..",
}, map[rune]core.RGB{
	'y': colorBird,
	'w': core.RGBWhite,
	'o': colorBeak,
})

var cloudSprite = asset.MustParseSprite("cloud", []string{
	"..cccc....",
	".cccccccc.",
	"cccccccccc",
}, map[rune]core.RGB{
	'c': colorCloud,
})
