package forest_test

import (
	"fmt"

	"github.com/matzehuels/fluvia/pkg/forest"
)

func ExampleTree_Stats() {
	// A mouth with a two-cell main stem and one tributary.
	t := forest.New("mouth")
	stem := t.AddChild(t.Root(), "stem")
	t.AddChild(stem, "source")
	t.AddChild(t.Root(), "tributary")

	fmt.Printf("%+v\n", t.Stats())
	// Output: {Nodes:4 Depth:3 Forks:1 Leaves:2}
}

func ExampleTree_Prune() {
	t := forest.New("a")
	b := t.AddChild(t.Root(), "b")
	t.AddChild(b, "c")
	t.AddChild(t.Root(), "d")

	sizes := t.Sizes()
	pruned, _ := t.Prune(func(id forest.NodeID) bool { return sizes[id] > 1 })
	for _, id := range pruned.PreOrder() {
		fmt.Print(pruned.Value(id))
	}
	fmt.Println()
	// Output: ab
}
