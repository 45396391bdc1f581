package sizes_test

import (
	"context"
	"fmt"
	"testing/fstest"

	"github.com/matzehuels/dirgraph/pkg/fsys"
	"github.com/matzehuels/dirgraph/pkg/sizes"
)

func ExampleConvert() {
	fmt.Println(sizes.Convert(1))
	fmt.Println(sizes.Convert(1024))
	fmt.Println(sizes.Convert(1536))
	fmt.Println(sizes.Convert(1 << 20))
	// Output:
	// 1 byte
	// 1.0 kB
	// 1.5 kB
	// 1.0 MB
}

func ExampleCompute() {
	tree := fstest.MapFS{
		"R/a.txt":   {Data: make([]byte, 10)},
		"R/S/b.txt": {Data: make([]byte, 2000)},
	}

	idx, err := sizes.Compute(context.Background(), fsys.FSWalker{FS: tree}, "R")
	if err != nil {
		panic(err)
	}
	for _, p := range idx.Paths() {
		fmt.Println(p, idx.Display(p))
	}
	// Output:
	// R 1.96 kB
	// R/S 1.95 kB
}
