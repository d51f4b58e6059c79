package geometry

// AdjacencyList returns, for each rect, the indices of the others it shares an
// edge with. It is recomputed on every call.
func AdjacencyList(rects []Rect, tolerance int) [][]int {
	adj := make([][]int, len(rects))
	for i := range rects {
		adj[i] = []int{}
		for j := range rects {
			if i == j {
				continue
			}
			if rects[i].SharedBounds(rects[j], tolerance).HasSharedBounds {
				adj[i] = append(adj[i], j)
			}
		}
	}
	return adj
}

// Connected returns the indices reachable from start through shared edges,
// start included, in breadth-first order.
func Connected(adj [][]int, start int) []int {
	if start < 0 || start >= len(adj) {
		return nil
	}
	seen := make([]bool, len(adj))
	seen[start] = true
	order := []int{start}
	for i := 0; i < len(order); i++ {
		for _, n := range adj[order[i]] {
			if !seen[n] {
				seen[n] = true
				order = append(order, n)
			}
		}
	}
	return order
}
