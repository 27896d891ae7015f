// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package draftmark

// Node points to either a [Block] or an [Inline].
// The zero Node points to nothing.
// Nodes are comparable with the == operator.
type Node struct {
	block  *Block
	inline *Inline
}

// Block returns the block the node points to,
// or nil if the node does not point to a block.
func (n Node) Block() *Block {
	return n.block
}

// Inline returns the inline the node points to,
// or nil if the node does not point to an inline.
func (n Node) Inline() *Inline {
	return n.inline
}

// ChildCount returns the number of children the node has.
// The zero Node has no children.
func (n Node) ChildCount() int {
	switch {
	case n.block != nil:
		return n.block.ChildCount()
	case n.inline != nil:
		return n.inline.ChildCount()
	default:
		return 0
	}
}

// Child returns the i'th child of the node.
func (n Node) Child(i int) Node {
	if n.block != nil {
		return n.block.Child(i)
	}
	return n.inline.Child(i).AsNode()
}

// AsNode converts the block to a [Node].
// A nil block converts to the zero Node.
func (b *Block) AsNode() Node {
	if b == nil {
		return Node{}
	}
	return Node{block: b}
}

// AsNode converts the inline to a [Node].
// A nil inline converts to the zero Node.
func (inline *Inline) AsNode() Node {
	if inline == nil {
		return Node{}
	}
	return Node{inline: inline}
}
