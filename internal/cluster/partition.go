package cluster

import (
	"fmt"
	"sort"
)

// DefaultPalette is the token cycle for groups, matplotlib's C1..C9.
var DefaultPalette = []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9"}

// DefaultAboveToken names leaves that join the tree only above the threshold.
const DefaultAboveToken = "black"

// NoCounter marks members of colored groups.
const NoCounter = -1

// CutOptions controls how a tree is cut into groups.
type CutOptions struct {
	Threshold  float64
	Palette    []string
	AboveToken string
}

// Member is a leaf inside a group.
type Member struct {
	Leaf    int
	Label   string
	Counter int
}

// Group is the set of leaves sharing a token, in leaf order.
type Group struct {
	Token   string
	Members []Member
}

// Partition is a tree cut at a threshold.
type Partition struct {
	// Order lists leaf indices from first to last drawn leaf.
	Order []int
	// Tokens holds the token of Order[i] at position i.
	Tokens []string
	// Links holds the token of every merge, indexed by construction step.
	Links []string
	// Groups are sorted by token.
	Groups []Group
	// Above is the token of unclustered leaves.
	Above string
}

// Cut walks the tree from the root, left child first. The first merge met
// on a path whose distance is within the threshold starts a group, and every
// leaf below it takes that group's token. Tokens are handed out from the
// palette in the order groups are met, cycling when it runs out. Leaves
// reached only through merges above the threshold take the above token and
// a counter that increases from left to right.
func Cut(t *Tree, labels []string, opts CutOptions) (*Partition, error) {
	if len(labels) != t.Leaves() {
		return nil, fmt.Errorf("%w: %d labels for %d leaves", ErrLabelCount, len(labels), t.Leaves())
	}

	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	above := opts.AboveToken
	if above == "" {
		above = DefaultAboveToken
	}

	n := t.Leaves()
	p := &Partition{
		Order:  make([]int, 0, n),
		Tokens: make([]string, 0, n),
		Links:  make([]string, len(t.merges)),
		Above:  above,
	}

	within := func(d float64) bool {
		return opts.Threshold > 0 && d <= opts.Threshold
	}

	next := 0
	var walk func(node int, token string)
	walk = func(node int, token string) {
		if node < n {
			if token == "" {
				token = above
			}
			p.Order = append(p.Order, node)
			p.Tokens = append(p.Tokens, token)
			return
		}

		m := t.Merge(node)
		link := token
		if token == "" {
			if within(m.Distance) {
				token = palette[next%len(palette)]
				next++
				link = token
			} else {
				link = above
			}
		}
		p.Links[node-n] = link

		walk(m.Left, token)
		walk(m.Right, token)
	}
	walk(t.Root(), "")

	p.Groups = group(p, labels)
	return p, nil
}

func group(p *Partition, labels []string) []Group {
	index := map[string]int{}
	var groups []Group
	counter := 0

	for i, leaf := range p.Order {
		token := p.Tokens[i]
		k, ok := index[token]
		if !ok {
			k = len(groups)
			index[token] = k
			groups = append(groups, Group{Token: token})
		}

		member := Member{Leaf: leaf, Label: labels[leaf], Counter: NoCounter}
		if token == p.Above {
			member.Counter = counter
			counter++
		}
		groups[k].Members = append(groups[k].Members, member)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Token < groups[j].Token
	})
	return groups
}

// Group returns the group with the given token.
func (p *Partition) Group(token string) (Group, bool) {
	for _, g := range p.Groups {
		if g.Token == token {
			return g, true
		}
	}
	return Group{}, false
}

// Unclustered returns the members above the threshold.
func (p *Partition) Unclustered() []Member {
	g, _ := p.Group(p.Above)
	return g.Members
}
