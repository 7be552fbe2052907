package main

import (
	"sort"

	"github.com/maruel/natural"
)

// SortStrategy orders collected images.
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(images []ImagePath) []ImagePath
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

func sortedCopy(images []ImagePath, less func(a, b string) bool) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	if less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i].Path, result[j].Path)
		})
	}
	return result
}

// NaturalSortStrategy orders numbered files numerically (page2 before page10).
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(images []ImagePath) []ImagePath {
	return sortedCopy(images, natural.Less)
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }
func (s *NaturalSortStrategy) ID() int      { return SortNatural }

// SimpleSortStrategy orders by plain string comparison.
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(images []ImagePath) []ImagePath {
	return sortedCopy(images, func(a, b string) bool { return a < b })
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }
func (s *SimpleSortStrategy) ID() int      { return SortSimple }

// EntryOrderSortStrategy keeps the order the images were found in.
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(images []ImagePath) []ImagePath {
	return sortedCopy(images, nil)
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }
func (s *EntryOrderSortStrategy) ID() int      { return SortEntryOrder }

// GetSortStrategy returns the strategy for a sort method ID, natural by
// default.
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}

func sortImagePaths(images []ImagePath, sortMethod int) []ImagePath {
	return GetSortStrategy(sortMethod).Sort(images)
}
