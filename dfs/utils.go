package dfs

import "strings"

// indexOf returns the first index of val in s, or -1.
func indexOf(s []string, val string) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}
	return -1
}

// joinSig is the comma-joined signature of a loop.
func joinSig(c []string) string {
	return strings.Join(c, ",")
}

// minimalRotation returns a fresh slice holding the lexicographically least
// rotation of s (Booth's algorithm, O(n)). Combinational loops are directed,
// so the reversed sequence is a different loop and is never considered.
func minimalRotation(s []string) []string {
	n := len(s)
	if n == 0 {
		return nil
	}
	d := make([]string, 0, 2*n)
	d = append(d, s...)
	d = append(d, s...)

	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && d[j] != d[k+i+1] {
			if d[j] < d[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if d[j] != d[k+i+1] {
			if d[j] < d[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}

	out := make([]string, n)
	copy(out, d[k:k+n])
	return out
}
