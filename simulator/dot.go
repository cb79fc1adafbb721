package simulator

import (
	"fmt"

	"github.com/emicklei/dot"
	"github.com/prysmaticlabs/threeslot/node"
)

// DrawTree renders the node's block tree as a Graphviz digraph. Justified
// checkpoints are shaded, finalized ones darker, so a run's finality
// progress is visible at a glance.
func DrawTree(n *node.Node) (string, error) {
	tree := n.BlockTree()

	justified := make(map[[32]byte]bool)
	for _, cp := range n.JustifiedCheckpoints() {
		justified[cp.Root] = true
	}
	finalized := n.FinalizedCheckpoint()

	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "TB")

	queue := [][32]byte{tree.GenesisRoot()}
	for len(queue) > 0 {
		root := queue[0]
		queue = queue[1:]
		blk, err := tree.Block(root)
		if err != nil {
			return "", err
		}
		dn := g.Node(fmt.Sprintf("%#x", root[:4]))
		dn.Attr("label", fmt.Sprintf("slot %d\n%#x", blk.Slot(), root[:4]))
		dn.Attr("shape", "box")
		switch {
		case root == finalized.Root:
			dn.Attr("style", "filled")
			dn.Attr("fillcolor", "darkseagreen")
		case justified[root]:
			dn.Attr("style", "filled")
			dn.Attr("fillcolor", "lightblue")
		}
		if !blk.IsGenesis() {
			parentRoot := blk.ParentRoot()
			parent := g.Node(fmt.Sprintf("%#x", parentRoot[:4]))
			g.Edge(parent, dn)
		}
		queue = append(queue, tree.ChildrenOf(root)...)
	}
	return g.String(), nil
}
