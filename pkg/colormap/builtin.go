package colormap

func rgb(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Anchor colors follow the published matplotlib tables, sampled at
// eighths for the sequential maps.
var (
	plasma = NewSegmented("plasma", []Color{
		rgb(13, 8, 135),
		rgb(70, 3, 159),
		rgb(114, 1, 168),
		rgb(156, 23, 158),
		rgb(204, 71, 120),
		rgb(225, 100, 98),
		rgb(242, 132, 75),
		rgb(252, 166, 54),
		rgb(240, 249, 33),
	})

	viridis = NewSegmented("viridis", []Color{
		rgb(68, 1, 84),
		rgb(72, 40, 120),
		rgb(59, 82, 139),
		rgb(42, 120, 142),
		rgb(33, 145, 140),
		rgb(34, 168, 132),
		rgb(94, 201, 98),
		rgb(122, 209, 81),
		rgb(253, 231, 37),
	})

	// Tab10 is the qualitative palette used to distinguish databases
	Tab10 = NewListed("tab10", []Color{
		rgb(31, 119, 180),
		rgb(255, 127, 14),
		rgb(44, 160, 44),
		rgb(214, 39, 40),
		rgb(148, 103, 189),
		rgb(140, 86, 75),
		rgb(227, 119, 194),
		rgb(127, 127, 127),
		rgb(188, 189, 34),
		rgb(23, 190, 207),
	})
)

var builtins = map[string]Map{
	"plasma":  plasma,
	"viridis": viridis,
	"tab10":   Tab10,
}
