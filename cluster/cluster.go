/*
 * cluster.go, part of foldvis.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package cluster groups residues in space. Residues closer than a cutoff distance are
//linked in a contact graph, and the connected components of the graph are the clusters.
package cluster

import (
	"fmt"
	"math"

	"github.com/rmera/foldvis"
	v3 "github.com/rmera/foldvis/v3"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Noise is the label given to points that don't belong to any cluster.
const Noise = -1

//ErrLengthMismatch is returned when the mask and the points given differ in length.
var ErrLengthMismatch = foldvis.ErrLengthMismatch

// Options contains the parameters for the clustering.
type Options struct {
	Eps            float64 //points closer than this (in A) are linked.
	MinClusterSize int     //smaller components are labeled as Noise
}

// DefaultOptions returns options suitable for alpha carbon coordinates.
func DefaultOptions() *Options {
	return &Options{Eps: 8, MinClusterSize: 2}
}

// ContactGraph returns an undirected graph with one node for each of the points in coords with
// an index in indexes (the node ID is the index), and an edge, weighted by the distance, between
// each pair of those points closer than eps.
func ContactGraph(coords *v3.Matrix, indexes []int, eps float64) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for _, i := range indexes {
		g.AddNode(simple.Node(i))
	}
	for k, i := range indexes {
		for _, j := range indexes[k+1:] {
			if d := coords.Dist(i, coords, j); d < eps {
				g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(j), W: d})
			}
		}
	}
	return g
}

// Residues clusters the points of coords for which mask is true. It returns one label per
// masked point, in order. Clusters are numbered from 0, in the order in which their first
// point appears. Points in components smaller than o.MinClusterSize get the Noise label.
// If o is nil, DefaultOptions() is used.
func Residues(coords *v3.Matrix, mask []bool, o *Options) ([]int, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if len(mask) != coords.NVecs() {
		return nil, fmt.Errorf("cluster.Residues: %d mask values for %d points: %w", len(mask), coords.NVecs(), ErrLengthMismatch)
	}
	indexes := make([]int, 0, len(mask))
	for i, m := range mask {
		if m {
			indexes = append(indexes, i)
		}
	}
	g := ContactGraph(coords, indexes, o.Eps)
	comp := make(map[int64][]graph.Node)
	for _, c := range topo.ConnectedComponents(g) {
		for _, n := range c {
			comp[n.ID()] = c
		}
	}
	labels := make([]int, len(indexes))
	assigned := make(map[int64]int) //first node ID of a component to its label
	for k, i := range indexes {
		c := comp[int64(i)]
		if len(c) < o.MinClusterSize {
			labels[k] = Noise
			continue
		}
		key := minID(c)
		l, ok := assigned[key]
		if !ok {
			l = len(assigned)
			assigned[key] = l
		}
		labels[k] = l
	}
	return labels, nil
}

func minID(nodes []graph.Node) int64 {
	min := nodes[0].ID()
	for _, n := range nodes[1:] {
		if n.ID() < min {
			min = n.ID()
		}
	}
	return min
}

// Expand maps the labels returned by Residues back onto all the points: masked points get their
// label and the others get Noise.
func Expand(mask []bool, labels []int) ([]int, error) {
	ret := make([]int, len(mask))
	k := 0
	for i, m := range mask {
		ret[i] = Noise
		if !m {
			continue
		}
		if k >= len(labels) {
			return nil, fmt.Errorf("cluster.Expand: %d labels for more masked points: %w", len(labels), ErrLengthMismatch)
		}
		ret[i] = labels[k]
		k++
	}
	if k != len(labels) {
		return nil, fmt.Errorf("cluster.Expand: %d labels for %d masked points: %w", len(labels), k, ErrLengthMismatch)
	}
	return ret, nil
}
