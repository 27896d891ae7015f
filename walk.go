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

// A Cursor points at one node during a [Walk]
// and remembers how the traversal got there.
type Cursor struct {
	node   Node
	parent Node
}

// Node returns the node the cursor is on.
func (c *Cursor) Node() Node {
	return c.node
}

// Parent returns the node whose child the cursor's node is,
// or the zero Node at the walk root.
func (c *Cursor) Parent() Node {
	return c.parent
}

// WalkOptions configures the callbacks of [Walk].
type WalkOptions struct {
	// Pre is called before a node's children are visited.
	// Returning false skips the children and the node's Post call.
	Pre func(c *Cursor) bool
	// Post is called after a node's children have been visited.
	// Returning false stops the walk immediately.
	Post func(c *Cursor) bool
}

// Walk visits every node under root, depth first, starting with root.
// The traversal keeps its own stack,
// so quote nesting depth does not grow the call stack.
func Walk(root Node, opts *WalkOptions) {
	type frame struct {
		cursor  Cursor
		visited bool
	}

	stack := []frame{{cursor: Cursor{node: root}}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		c := top.cursor
		if top.visited {
			stack = stack[:len(stack)-1]
			if opts.Post != nil && !opts.Post(&c) {
				return
			}
			continue
		}
		if opts.Pre != nil && !opts.Pre(&c) {
			stack = stack[:len(stack)-1]
			continue
		}
		top.visited = true
		for i := c.node.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, frame{
				cursor: Cursor{node: c.node.Child(i), parent: c.node},
			})
		}
	}
}
