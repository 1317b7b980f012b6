package internal

// Node is one entry in a Signal's doubly-linked listener list.
//
// The list owns its nodes through next; prev is a back-link kept only so a
// node can splice itself out in O(1) without searching the list.
type Node struct {
	prev *Node
	next *Node

	fn   func(any)
	once bool

	connected bool

	// never mutated after Connect, nil for inert handles
	signal *Signal
}

// Disconnect unlinks the node from its signal's list. Calling it on an
// already-disconnected node (including one invalidated by DisconnectAll or
// Destroy) is a no-op, never an error.
func (n *Node) Disconnect() {
	if n == nil || n.signal == nil {
		return
	}

	n.signal.disconnect(n)
}

// Connected reports whether the node is still linked into its signal's list.
func (n *Node) Connected() bool {
	if n == nil || n.signal == nil {
		return false
	}

	s := n.signal
	s.mu.Lock()
	defer s.mu.Unlock()

	return n.connected
}
