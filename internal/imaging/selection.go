package imaging

import "fmt"

// SelectPlanes turns a list of plane indices into a per-plane mask for an
// image with the given number of components. An empty list selects every
// plane. Indices outside 0..components-1 and repeated indices are errors.
func SelectPlanes(indices []int, components int) ([]bool, error) {
	selected := make([]bool, components)
	if len(indices) == 0 {
		for i := range selected {
			selected[i] = true
		}
		return selected, nil
	}

	for _, n := range indices {
		if n < 0 || n >= components {
			return nil, fmt.Errorf("plane index %d out of range (image has %d planes)", n, components)
		}
		if selected[n] {
			return nil, fmt.Errorf("plane %d specified twice", n)
		}
		selected[n] = true
	}
	return selected, nil
}
