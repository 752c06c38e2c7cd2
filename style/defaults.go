package style

import (
	"fmt"
	"strings"
	"sync"

	"lexhtml/common"
)

// Default returns built-in registry. It is created once and shared.
func Default() *Registry {
	return defaultRegistry()
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return MustNewRegistry(DefaultDefs()...)
})

var palette = []string{"red", "orange", "yellow", "green", "blue", "purple", "pink"}

// DefaultDefs returns definitions the default registry is built from. Callers
// may extend them before building their own registry.
func DefaultDefs() []CategoryDef {
	return []CategoryDef{
		{
			Category: common.CategoryType,
			States: []StateDef{
				{Key: "cursive", Label: "cursive", CSS: "font-family: var(--cursive, cursive)"},
				{Key: "sans", Label: "sans-serif", CSS: "font-family: var(--sans, sans-serif)"},
				{Key: "serif", Label: "serif", CSS: "font-family: var(--serif, serif)"},
			},
		},
		{Category: common.CategoryBackground, States: paletteStates("bg-", "background-color", "400", "600")},
		{Category: common.CategoryColor, States: paletteStates("text-", "color", "600", "400")},
		{
			Category: common.CategoryFontWeight,
			States: []StateDef{
				{Key: "thin", CSS: "font-weight: 100"},
				{Key: "extralight", CSS: "font-weight: 200"},
				{Key: "light", CSS: "font-weight: 300"},
				{Key: "normal", CSS: "font-weight: 400"},
				{Key: "medium", CSS: "font-weight: 500"},
				{Key: "semibold", CSS: "font-weight: 600"},
				{Key: "bold", CSS: "font-weight: 700"},
				{Key: "extrabold", CSS: "font-weight: 800"},
				{Key: "black", CSS: "font-weight: 900"},
			},
		},
		{
			Category: common.CategorySize,
			States: []StateDef{
				sizeState("xs", "12px", "1.7"),
				sizeState("sm", "14px", "1.6"),
				sizeState("base", "16px", "1.5"),
				sizeState("lg", "18px", "1.4"),
				sizeState("xl", "20px", "1.4"),
				sizeState("2xl", "24px", "1.2"),
				sizeState("3xl", "30px", "1.2"),
				sizeState("4xl", "36px", "1.2"),
				sizeState("5xl", "48px", "1"),
				sizeState("6xl", "60px", "1"),
				sizeState("7xl", "72px", "1"),
				sizeState("8xl", "96px", "1"),
				sizeState("9xl", "128px", "1"),
			},
		},
		{
			Category: common.CategoryThemeColors,
			States: []StateDef{
				{Key: "background", CSS: "color: var(--background, #3a383b)"},
				{Key: "foreground", CSS: "color: var(--foreground, #bbb5bd)"},
				{Key: "primary", CSS: "color: var(--primary, #531970)"},
				{Key: "secondary", CSS: "color: var(--secondary, #6155cf)"},
			},
		},
	}
}

// paletteStates uses light-dark() so the same key works for both color
// schemes, shades are selected for light and dark scheme respectively.
func paletteStates(prefix, property, light, dark string) []StateDef {
	states := make([]StateDef, 0, len(palette))
	for _, name := range palette {
		states = append(states, StateDef{
			Key:   prefix + name,
			Label: strings.ToUpper(name[:1]) + name[1:],
			CSS:   fmt.Sprintf("%s: light-dark(var(--color-%s-%s), var(--color-%s-%s))", property, name, light, name, dark),
		})
	}
	return states
}

func sizeState(size, fontSize, lineHeight string) StateDef {
	key := "text-" + size
	return StateDef{
		Key:   key,
		Label: key,
		CSS:   fmt.Sprintf("font-size: var(--%s, %s); line-height: var(--%s--line-height, %s)", key, fontSize, key, lineHeight),
	}
}
