package lingo

// NodeDiff represents the difference between two extracted node sets.
// Useful for incremental translation: only translate what changed.
type NodeDiff struct {
	// Added contains nodes present only in the new version.
	Added []TextNode

	// Removed contains nodes present only in the old version.
	Removed []TextNode

	// Unchanged contains nodes present in both versions.
	Unchanged []TextNode
}

// HasChanges returns true if there are any differences.
func (d *NodeDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// NeedsTranslation returns the nodes that require a fresh translation.
func (d *NodeDiff) NeedsTranslation() []TextNode {
	return d.Added
}

// DiffNodes compares two node sets by content hash.
func DiffNodes(oldNodes, newNodes []TextNode) *NodeDiff {
	oldByHash := make(map[string]TextNode, len(oldNodes))
	for _, node := range oldNodes {
		oldByHash[node.Hash] = node
	}
	newByHash := make(map[string]TextNode, len(newNodes))
	for _, node := range newNodes {
		newByHash[node.Hash] = node
	}

	diff := &NodeDiff{}
	for _, node := range oldNodes {
		if _, exists := newByHash[node.Hash]; exists {
			diff.Unchanged = append(diff.Unchanged, node)
		} else {
			diff.Removed = append(diff.Removed, node)
		}
	}
	for _, node := range newNodes {
		if _, exists := oldByHash[node.Hash]; !exists {
			diff.Added = append(diff.Added, node)
		}
	}
	return diff
}
