package ontology

// Paths enumerates every path from a root to start following up edges.
// Paths are root first and end with start. A sense with no up edges is a
// root and yields the single path [start]. Edges that would revisit a sense
// already on the current path are ignored, so malformed cyclic data cannot
// loop forever.
func Paths(start *Sense, up func(*Sense) []*Sense) [][]*Sense {
	onPath := map[*Sense]bool{}
	return walkPaths(start, up, onPath)
}

func walkPaths(s *Sense, up func(*Sense) []*Sense, onPath map[*Sense]bool) [][]*Sense {
	onPath[s] = true
	defer delete(onPath, s)

	var paths [][]*Sense
	for _, parent := range up(s) {
		if onPath[parent] {
			continue
		}
		for _, p := range walkPaths(parent, up, onPath) {
			path := make([]*Sense, len(p)+1)
			copy(path, p)
			path[len(p)] = s
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		paths = [][]*Sense{{s}}
	}
	return paths
}

// Closure returns the senses reachable from start through next, in
// breadth-first order, at most depth edges away. start itself is excluded
// and every sense appears once. depth <= 0 disables the limit.
func Closure(start *Sense, next func(*Sense) []*Sense, depth int) []*Sense {
	type item struct {
		sense *Sense
		depth int
	}

	visited := map[*Sense]bool{start: true}
	queue := []item{{start, 0}}
	var out []*Sense

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if depth > 0 && cur.depth >= depth {
			continue
		}
		for _, n := range next(cur.sense) {
			if visited[n] {
				continue
			}
			visited[n] = true
			out = append(out, n)
			queue = append(queue, item{n, cur.depth + 1})
		}
	}
	return out
}
