package dataset

import "fmt"

// Partition splits row indices into training and test subsets.
type Partition struct {
	Training []int
	Test     []int
}

// Split assigns the first trainingFraction of rows to training and the rest
// to test, preserving row order.
func Split(rows int, trainingFraction float64) (Partition, error) {
	if trainingFraction <= 0 || trainingFraction > 1 {
		return Partition{}, fmt.Errorf("training fraction must be in (0, 1], got %v", trainingFraction)
	}
	cut := int(float64(rows) * trainingFraction)
	p := Partition{
		Training: make([]int, 0, cut),
		Test:     make([]int, 0, rows-cut),
	}
	for i := 0; i < rows; i++ {
		if i < cut {
			p.Training = append(p.Training, i)
		} else {
			p.Test = append(p.Test, i)
		}
	}
	return p, nil
}
