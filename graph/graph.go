/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package graph detects cycles and computes topological order over directed
// graphs keyed by stable node identifiers. It serves both token alias
// graphs and manifest file dependency graphs.
package graph

import "sort"

// Result holds the outcome of cycle detection.
type Result struct {
	// HasCycles reports whether any strongly connected component forms
	// a cycle.
	HasCycles bool

	// Cycles lists each cycle's member nodes.
	Cycles [][]string

	// CyclicNodes is the flattened set of every node on a cycle, used to
	// short-circuit dependent resolution.
	CyclicNodes map[string]bool

	// TopologicalOrder lists every node with dependencies before
	// dependents. Nil whenever any cycle exists: resolution must not
	// proceed on a false partial order.
	TopologicalOrder []string
}

// Detect runs Tarjan's strongly-connected-components algorithm over the
// adjacency map. Every node that appears as a source or as a referenced
// target participates, so dangling references still show up as singleton,
// acyclic nodes. Nodes are visited in sorted order for deterministic
// output.
func Detect(adjacency map[string][]string) *Result {
	nodes := collectNodes(adjacency)

	t := &tarjan{
		adjacency: adjacency,
		index:     make(map[string]int, len(nodes)),
		lowlink:   make(map[string]int, len(nodes)),
		onStack:   make(map[string]bool, len(nodes)),
		result: &Result{
			CyclicNodes: make(map[string]bool),
		},
	}

	for _, node := range nodes {
		if _, visited := t.index[node]; !visited {
			t.strongConnect(node)
		}
	}

	if t.result.HasCycles {
		t.result.TopologicalOrder = nil
	} else {
		t.result.TopologicalOrder = t.order
	}
	return t.result
}

// collectNodes gathers every source and target node, sorted.
func collectNodes(adjacency map[string][]string) []string {
	seen := make(map[string]bool, len(adjacency))
	for node, targets := range adjacency {
		seen[node] = true
		for _, target := range targets {
			seen[target] = true
		}
	}
	nodes := make([]string, 0, len(seen))
	for node := range seen {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}

type tarjan struct {
	adjacency map[string][]string
	counter   int
	index     map[string]int
	lowlink   map[string]int
	stack     []string
	onStack   map[string]bool

	// order accumulates acyclic nodes in root-completion order, which is
	// already a valid reverse-topological order for a DAG.
	order  []string
	result *Result
}

func (t *tarjan) strongConnect(node string) {
	t.index[node] = t.counter
	t.lowlink[node] = t.counter
	t.counter++
	t.stack = append(t.stack, node)
	t.onStack[node] = true

	for _, target := range t.adjacency[node] {
		if _, visited := t.index[target]; !visited {
			t.strongConnect(target)
			if t.lowlink[target] < t.lowlink[node] {
				t.lowlink[node] = t.lowlink[target]
			}
		} else if t.onStack[target] {
			if t.index[target] < t.lowlink[node] {
				t.lowlink[node] = t.index[target]
			}
		}
	}

	if t.lowlink[node] != t.index[node] {
		return
	}

	// node is the root of a strongly connected component.
	var component []string
	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[top] = false
		component = append(component, top)
		if top == node {
			break
		}
	}

	if len(component) == 1 && !t.hasSelfEdge(component[0]) {
		t.order = append(t.order, component[0])
		return
	}

	t.result.HasCycles = true
	t.result.Cycles = append(t.result.Cycles, component)
	for _, member := range component {
		t.result.CyclicNodes[member] = true
	}
}

func (t *tarjan) hasSelfEdge(node string) bool {
	for _, target := range t.adjacency[node] {
		if target == node {
			return true
		}
	}
	return false
}
