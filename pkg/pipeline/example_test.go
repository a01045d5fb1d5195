package pipeline_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/plotspec/pkg/cache"
	"github.com/matzehuels/plotspec/pkg/pipeline"
	"github.com/matzehuels/plotspec/pkg/spec"
)

func ExampleRunner_Execute() {
	const doc = `
[[grid]]
[[grid.yaxes]]
[[grid.yaxes.lines]]
y = [1.0, 4.0, 9.0]

[figure]
dpi = 20
`
	runner := pipeline.NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), pipeline.Options{
		Source:       []byte(doc),
		SourceFormat: spec.FormatTOML,
		Formats:      []string{"svg"},
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("grid: %dx%d, series: %d\n", result.Stats.Rows, result.Stats.Cols, result.Stats.Series)
	fmt.Println("svg:", bytes.HasPrefix(result.Artifacts["svg"], []byte("<?xml")))
	fmt.Println("cached:", result.CacheInfo.RenderHit)
	// Output:
	// grid: 1x1, series: 1
	// svg: true
	// cached: false
}

func ExampleRunner_Execute_cached() {
	opts := pipeline.Options{
		Source:       []byte(`{"grid": [{"yaxes": [{"lines": [{"y": [2, 3]}]}]}], "figure": {"dpi": 20}}`),
		SourceFormat: spec.FormatJSON,
		Formats:      []string{"svg", "pdf"},
	}

	store := cache.NewMemoryCache()
	runner := pipeline.NewRunner(store, nil, nil)
	defer runner.Close()

	for i := 0; i < 2; i++ {
		result, err := runner.Execute(context.Background(), opts)
		if err != nil {
			panic(err)
		}
		fmt.Printf("cached: %v, figure drawn: %v\n", result.CacheInfo.RenderHit, result.Figure != nil)
	}
	fmt.Println("entries:", store.Len())
	// Output:
	// cached: false, figure drawn: true
	// cached: true, figure drawn: false
	// entries: 2
}
