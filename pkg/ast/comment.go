package ast

import "sort"

// Comment is a single source comment, carrying its own location and
// whether it was written as a line comment ("# ...") or a block comment
// ("=begin ... =end"-shaped slab, emitted as "/* ... */").
type Comment struct {
	Text  string
	Block bool
	Loc   *Location
}

// CommentMap is a mutable mapping from node identity to the comments
// that belong to it, plus the three reserved entries of spec §3.2.
// Keys are pointer identity: a rewrite that produces a structurally
// equal but distinct *Node does not inherit the old node's entry --
// Reassociate must be called after every filter pass to rebuild it.
type CommentMap struct {
	// Raw is the full comment list from the parser, in source order.
	// Never mutated after construction; Reassociate always rebuilds
	// Trailing/Orphan/byNode from this list and the current tree.
	Raw []Comment

	byNode   map[*Node][]Comment
	Trailing map[*Node][]Comment
	Orphan   []Comment
}

// NewCommentMap constructs an (initially unassociated) comment map from
// the parser's raw comment list.
func NewCommentMap(raw []Comment) *CommentMap {
	return &CommentMap{
		Raw:      raw,
		byNode:   map[*Node][]Comment{},
		Trailing: map[*Node][]Comment{},
	}
}

// For returns the (non-trailing) comments attached to n, in source order.
func (cm *CommentMap) For(n *Node) []Comment {
	if cm == nil || n == nil {
		return nil
	}
	return cm.byNode[n]
}

// TrailingFor returns the comments attached to n as trailing (same-line,
// after) comments.
func (cm *CommentMap) TrailingFor(n *Node) []Comment {
	if cm == nil || n == nil {
		return nil
	}
	return cm.Trailing[n]
}

// SetEmpty registers n with an empty comment list, so For(n) reports
// no comments for it (used by the pipeline when it synthesizes a new
// root node, per spec §4.3 step 5: "register an empty comment entry for
// the new root"). Reassociate rebuilds the map from scratch and drops
// the entry, so the pipeline calls SetEmpty after Reassociate.
func (cm *CommentMap) SetEmpty(n *Node) {
	if cm.byNode == nil {
		cm.byNode = map[*Node][]Comment{}
	}
	cm.byNode[n] = nil
}

// statementNode tracks a node and its byte range, gathered by walking
// the tree once per Reassociate call.
type statementNode struct {
	node       *Node
	start, end int
	line       int
}

// Reassociate rebuilds byNode, Trailing and Orphan from Raw and the
// current shape of root, per the association rule in spec §3.2: a
// comment belongs to the nearest following node whose start offset is
// >= the comment's end offset, except that a comment on the same
// source line as, and after, an already-emitted (i.e. earlier-starting)
// node becomes a trailing comment on the outermost statement-level node
// that covers that line. Comments whose buffer differs from a candidate
// node's buffer are never paired with it.
func (cm *CommentMap) Reassociate(root *Node) {
	cm.byNode = map[*Node][]Comment{}
	cm.Trailing = map[*Node][]Comment{}
	cm.Orphan = nil

	var nodes []statementNode
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Loc != nil {
			nodes = append(nodes, statementNode{n, n.Loc.StartOffset, n.Loc.EndOffset, n.Loc.Line})
		}
		for _, c := range n.Children {
			if cn, ok := c.(*Node); ok {
				walk(cn)
			}
		}
	}
	walk(root)

	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].start < nodes[j].start })

	for _, c := range cm.Raw {
		if c.Loc == nil {
			cm.Orphan = append(cm.Orphan, c)
			continue
		}

		// Trailing candidate: the outermost (earliest-starting) node
		// that starts on the comment's line and ends at or before the
		// comment's start.
		var trailingTarget *statementNode
		for i := range nodes {
			nd := &nodes[i]
			if !SameBuffer(nd.node.Loc, c.Loc) {
				continue
			}
			if nd.line == c.Loc.Line && nd.end <= c.Loc.StartOffset && nd.start < c.Loc.StartOffset {
				if trailingTarget == nil || nd.start < trailingTarget.start {
					trailingTarget = nd
				}
			}
		}
		if trailingTarget != nil {
			cm.Trailing[trailingTarget.node] = append(cm.Trailing[trailingTarget.node], c)
			continue
		}

		// Otherwise: nearest following node (smallest start >= comment end),
		// same buffer only.
		var best *statementNode
		for i := range nodes {
			nd := &nodes[i]
			if !SameBuffer(nd.node.Loc, c.Loc) {
				continue
			}
			if nd.start >= c.Loc.EndOffset {
				if best == nil || nd.start < best.start {
					best = nd
				}
			}
		}
		if best != nil {
			cm.byNode[best.node] = append(cm.byNode[best.node], c)
		} else {
			cm.Orphan = append(cm.Orphan, c)
		}
	}
}
