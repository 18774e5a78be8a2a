package obst

import "testing"

func TestBuildEmpty(t *testing.T) {
	if n := Build(nil, nil); n != nil {
		t.Fatalf("Build(nil, nil) = %v, want nil", n)
	}
}

func TestBuildSingle(t *testing.T) {
	root := Build([]float64{1}, []int{24})
	if root == nil || root.Value != 24 || root.Left != nil || root.Right != nil {
		t.Fatalf("Build single = %+v, want leaf(24)", root)
	}
}

func TestBuildMismatchedLengthsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Build did not panic on mismatched slice lengths")
		}
	}()
	Build([]float64{1, 2}, []int{8})
}

// For uniform weights, Knuth's DP should produce a tree no deeper than a
// balanced binary search tree over the same key set: ceil(log2(n+1)).
func TestBuildUniformWeightsIsBalanced(t *testing.T) {
	lengths := make([]int, 15)
	weights := make([]float64, 15)
	for i := range lengths {
		lengths[i] = i
		weights[i] = 1
	}

	root := Build(weights, lengths)
	depth := Depth(root)

	// ceil(log2(16)) == 4
	if depth > 4 {
		t.Fatalf("tree depth = %d, want <= 4 for n=%d uniform weights", depth, len(lengths))
	}
}

// walk confirms the in-order traversal of the tree reproduces lengths in
// ascending order, i.e. the BST property holds regardless of weighting.
func TestBSTPropertyHolds(t *testing.T) {
	lengths := []int{0, 8, 16, 24, 28, 30, 32}
	weights := []float64{1, 5, 2, 20, 3, 1, 4}

	root := Build(weights, lengths)

	var out []int
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.Left)
		out = append(out, n.Value)
		walk(n.Right)
	}
	walk(root)

	if len(out) != len(lengths) {
		t.Fatalf("in-order walk yielded %d nodes, want %d", len(out), len(lengths))
	}
	for i, v := range out {
		if v != lengths[i] {
			t.Fatalf("in-order walk[%d] = %d, want %d (BST property violated)", i, v, lengths[i])
		}
	}
}
