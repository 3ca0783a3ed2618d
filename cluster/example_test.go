package cluster_test

import (
	"fmt"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/analogx/distance"
)

func ExampleAnalogyFromTerms() {
	a := cluster.AnalogyFromTerms(distance.LCS{}, "a", "aa", "aaa", "aaaa")
	fmt.Println(a, a.Valid, a.Trivial)
	// Output: a : aa :: aaa : aaaa true false
}

func ExampleCluster_Normalize() {
	c, err := cluster.Parse("diminum : minum :: dimakan : makan")
	if err != nil {
		panic(err)
	}
	c.Normalize(distance.LCS{})
	fmt.Println(c)
	// Output: minum : diminum :: makan : dimakan
}
