// Fichier: ipaddr/sort.go

package ipaddr

import "sort"

// Compare compares a and b octet by octet starting from the first one.
// It returns -1 if a sorts before b in ascending order, +1 if after, and 0 when
// all octets are equal.
func Compare(a, b Address) int {
	// Comparaison octet par octet : le premier octet différent décide.
	for i := 0; i < OctetsCount; i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i] < b[i] {
			return -1
		}
		return 1
	}
	return 0
}

// SortDescending reorders the collection in place so that, at the first octet
// where two addresses differ, the one with the larger octet comes first.
// Equal addresses keep their relative order.
func (c Collection) SortDescending() {
	// Tri décroissant stable : les doublons restent adjacents dans l'ordre d'entrée.
	sort.SliceStable(c, func(i, j int) bool {
		return Compare(c[i], c[j]) > 0
	})
}

// IsSortedDescending reports whether the collection is in SortDescending order.
func (c Collection) IsSortedDescending() bool {
	return sort.SliceIsSorted(c, func(i, j int) bool {
		return Compare(c[i], c[j]) > 0
	})
}
