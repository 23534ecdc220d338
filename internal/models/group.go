package models

import "sort"

// ItemID is the stable identity of an item in the model store.
type ItemID int64

// PackageGroup collects the item ids destined for one output artifact,
// keyed by normalized export code. Membership is tracked per originating
// partition so the export stage can restore partition assignments in the
// destination artifact.
type PackageGroup struct {
	Code       string
	Partitions map[string][]ItemID
}

// NewPackageGroup returns an empty group for the given normalized code.
func NewPackageGroup(code string) *PackageGroup {
	return &PackageGroup{Code: code, Partitions: make(map[string][]ItemID)}
}

// Add records an item under its originating partition.
func (g *PackageGroup) Add(partition string, id ItemID) {
	g.Partitions[partition] = append(g.Partitions[partition], id)
}

// Items returns all member ids in deterministic order.
func (g *PackageGroup) Items() []ItemID {
	var ids []ItemID
	for _, members := range g.Partitions {
		ids = append(ids, members...)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns total membership across partitions.
func (g *PackageGroup) Len() int {
	n := 0
	for _, members := range g.Partitions {
		n += len(members)
	}
	return n
}

// GroupIndex maps normalized export codes to their package groups.
type GroupIndex map[string]*PackageGroup

// Add records an item under code/partition, creating the group on demand.
func (x GroupIndex) Add(code, partition string, id ItemID) {
	g, ok := x[code]
	if !ok {
		g = NewPackageGroup(code)
		x[code] = g
	}
	g.Add(partition, id)
}

// Codes returns the group codes in deterministic sorted order.
func (x GroupIndex) Codes() []string {
	codes := make([]string, 0, len(x))
	for code := range x {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
