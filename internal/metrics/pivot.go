package metrics

import "sort"

// Pivot is a node count per (resource type, package name) pair, the
// summary shown at the top of the global analysis.
type Pivot struct {
	// Types are the row labels in sorted order
	Types []string
	// Packages are the column labels in sorted order
	Packages []string
	// Counts maps resource type -> package name -> node count
	Counts map[string]map[string]int
}

// ComputePivot builds the resource-type by package-name count pivot from
// a metrics table.
func ComputePivot(t Table) *Pivot {
	counts := make(map[string]map[string]int)
	packageSet := make(map[string]bool)

	for _, row := range t {
		rt := string(row.Node.ResourceType)
		pkg := row.Node.PackageName
		if counts[rt] == nil {
			counts[rt] = make(map[string]int)
		}
		counts[rt][pkg]++
		packageSet[pkg] = true
	}

	types := make([]string, 0, len(counts))
	for rt := range counts {
		types = append(types, rt)
	}
	sort.Strings(types)

	packages := make([]string, 0, len(packageSet))
	for pkg := range packageSet {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)

	return &Pivot{Types: types, Packages: packages, Counts: counts}
}

// Count returns the node count for a (resource type, package) cell,
// 0 if the cell is empty.
func (p *Pivot) Count(resourceType, packageName string) int {
	return p.Counts[resourceType][packageName]
}

// PercentileRank returns the percentile rank (0, 1] of the value at id
// within values, using average ranks for ties. Returns 0 if id is absent.
func PercentileRank(values map[string]float64, id string) float64 {
	target, ok := values[id]
	if !ok || len(values) == 0 {
		return 0
	}

	below := 0
	equal := 0
	for _, v := range values {
		switch {
		case v < target:
			below++
		case v == target:
			equal++
		}
	}
	// Average rank of the tied group, as a fraction of the total count.
	rank := float64(below) + float64(equal+1)/2
	return rank / float64(len(values))
}
