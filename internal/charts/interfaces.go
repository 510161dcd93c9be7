package charts

// Series is one named line of an overlay chart.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Group is one named value per category of a bar chart.
type Group struct {
	Name   string
	Values []float64
}

// Point is a labelled scatter point.
type Point struct {
	Label     string
	X         float64
	Y         float64
	Highlight bool
}

// Renderer defines the chart kinds the report sections draw. Each method
// returns an inline SVG document.
type Renderer interface {
	Lines(xLabel, yLabel string, series []Series) (string, error)
	Bars(yLabel string, categories []string, values []float64) (string, error)
	GroupedBars(yLabel string, categories []string, groups []Group) (string, error)
	StackedBars(yLabel string, categories []string, groups []Group) (string, error)
	Scatter(xLabel, yLabel string, points []Point) (string, error)
}
