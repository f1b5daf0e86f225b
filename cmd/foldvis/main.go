/*
 * main.go, part of foldvis.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/foldvis"
	"github.com/rmera/foldvis/align"
	"github.com/rmera/foldvis/annot"
	"github.com/rmera/foldvis/cluster"
	"github.com/rmera/foldvis/conserv"
	"github.com/rmera/foldvis/foldplot"
	"github.com/rmera/foldvis/histo"
	"github.com/rmera/foldvis/spatial"
)

var verb int

// If level is larger or equal, prints the d arguments to stderr
// otherwise, does nothing.
func LogV(level int, d ...interface{}) {
	if level <= verb {
		fmt.Fprintln(os.Stderr, d...)
	}
}

// readFeatures reads one number per line from the file name. Empty lines and
// lines starting with # are ignored.
func readFeatures(name string) ([]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ret := make([]float64, 0, 200)
	s := bufio.NewScanner(f)
	var nline int
	for s.Scan() {
		nline++
		l := strings.TrimSpace(s.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		v, err := strconv.ParseFloat(strings.Fields(l)[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, nline, err)
		}
		ret = append(ret, v)
	}
	return ret, s.Err()
}

// readModel reads a PDB file or, if name is a directory, the ranked models in it, which are
// superimposed on the best one. The best model is returned. For ensembles, the per-residue
// MSD over the models, after superimposing their rigid cores, is attached to the best model
// as the "ensemble_msd" annotation.
func readModel(name string, cpus int) (*foldvis.Molecule, error) {
	st, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return foldvis.PDBFileRead(name)
	}
	ens, err := foldvis.ReadEnsemble(name)
	if err != nil {
		return nil, err
	}
	LogV(1, "Read", len(ens.Models), "models from", name)
	rmsds, err := ens.Superimpose(foldvis.DefaultMarker)
	if err != nil {
		return nil, err
	}
	for i, r := range rmsds {
		LogV(2, fmt.Sprintf("rank %d RMSD to best: %5.3f", ens.Ranks[i], r))
	}
	best := ens.Best()
	if len(ens.Models) < 2 {
		return best, nil
	}
	ao := align.DefaultOptions()
	ao.Cpus(cpus)
	core, err := align.RigidCore(ens.Models, ao)
	if err != nil {
		LogV(1, "Rigid core not determined:", err)
		return best, nil
	}
	LogV(1, fmt.Sprintf("Rigid core of %d residues found in %d iterations. Please cite 10.1371/journal.pone.0119264", core.N, core.Iterations))
	LogV(2, core.PyMOLSel(best))
	if err := best.Annotate("ensemble_msd", core.PerResidue(best.NResidues())); err != nil {
		return nil, err
	}
	return best, nil
}

func noNaN(v []float64) []float64 {
	ret := make([]float64, len(v))
	for i, f := range v {
		if !math.IsNaN(f) {
			ret[i] = f
		}
	}
	return ret
}

func main() {
	stat := flag.String("stat", "gi", "Local statistic: gi or gi_star")
	radius := flag.Float64("radius", 8.0, "Radius, in A, of the neighborhood of each residue")
	coords := flag.String("coords", "ca", "Residue positions: ca (alpha carbons) or com (center of mass)")
	marker := flag.String("marker", foldvis.DefaultMarker, "Atom used as residue position in the ca mode")
	frame := flag.Int("frame", 0, "Model of the PDB file to use, starting from 0")
	features := flag.String("features", "", "File with one feature value per residue")
	msa := flag.String("msa", "", "Aligned FASTA file. Its conservation profile is used as feature vector if no -features file is given")
	ref := flag.String("ref", "", "Name of the reference sequence in the alignment (default: the first one)")
	metric := flag.String("metric", "identity", "Conservation metric: identity or entropy")
	palette := flag.String("palette", foldplot.DefaultPalette, "Color palette, one of: "+strings.Join(foldplot.Palettes(), ", "))
	pdbout := flag.String("pdbout", "", "Write the structure with the Z-scores as b-factors to this file")
	jsonout := flag.String("json", "", "Write all the per-residue annotations, as JSON, to this file (- for stdout)")
	plotout := flag.String("plot", "", "Plot the Z-score profile to this file (.png, .svg or .pdf)")
	hot := flag.Float64("hot", 1.96, "Z-score threshold for hotspot residues, which are clustered")
	eps := flag.Float64("eps", 8.0, "Maximum distance, in A, between residues of the same hotspot cluster")
	active := flag.Float64("active", math.NaN(), "If given, annotate the distance of each residue to the closest one with a feature value at least this large")
	skip := flag.Bool("skip", false, "Set the Z-score of residues where the statistic can't be computed to NaN, instead of aborting")
	cpus := flag.Int("cpus", 0, "Number of goroutines to use (default: all CPUs)")
	verbose := flag.Int("v", 1, "Level of verbosity")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %s: [flags] model.pdb|models_dir\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	verb = *verbose
	args := flag.Args()
	if len(args) < 1 {
		log.Fatal("foldvis requires at least 1 argument, a PDB file or a directory with ranked PDB models")
	}
	mol, err := readModel(args[0], *cpus)
	if err != nil {
		log.Fatal("Failed to read structure: " + err.Error())
	}
	LogV(2, mol)

	o := spatial.DefaultOptions()
	s, err := spatial.ParseStatistic(*stat)
	if err != nil {
		log.Fatal(err)
	}
	o.Statistic(s)
	o.Radius(*radius)
	mode, err := foldvis.ParseCoordMode(*coords)
	if err != nil {
		log.Fatal(err)
	}
	o.CoordMode(mode)
	o.Marker(*marker)
	o.Frame(*frame)
	o.Cpus(*cpus)
	o.SkipErrors(*skip)

	var feat []float64
	switch {
	case *features != "":
		feat, err = readFeatures(*features)
	case *msa != "":
		var m conserv.Metric
		if m, err = conserv.ParseMetric(*metric); err == nil {
			feat, err = conserv.LoadConservedFile(*msa, *ref, m)
		}
	default:
		log.Fatal("Either a -features or an -msa file is needed")
	}
	if err != nil {
		log.Fatal("Failed to obtain the features: " + err.Error())
	}
	if err := mol.Annotate("features", feat); err != nil {
		log.Fatal(err)
	}

	z, err := spatial.Association(mol, feat, o)
	if err != nil && (z == nil || !o.SkipErrors()) {
		log.Fatal(err)
	} else if err != nil {
		LogV(1, err)
	}
	label := o.Statistic().String()
	if err := mol.Annotate(label, z); err != nil {
		log.Fatal(err)
	}
	colors, err := foldplot.MapColors(z, *palette)
	if err != nil {
		log.Fatal(err)
	}

	rescoords, err := foldvis.ResidueCoords(mol, o.Frame(), o.CoordMode(), o.Marker())
	if err != nil {
		log.Fatal(err)
	}
	mask := make([]bool, len(z))
	var nhot int
	for i, v := range z {
		if v >= *hot {
			mask[i] = true
			nhot++
		}
	}
	if nhot > 0 {
		co := cluster.DefaultOptions()
		co.Eps = *eps
		labels, err := cluster.Residues(rescoords, mask, co)
		if err != nil {
			log.Fatal(err)
		}
		full, err := cluster.Expand(mask, labels)
		if err != nil {
			log.Fatal(err)
		}
		cl := make([]float64, len(full))
		for i, l := range full {
			cl[i] = float64(l)
		}
		if err := mol.Annotate("cluster", cl); err != nil {
			log.Fatal(err)
		}
		LogV(1, fmt.Sprintf("%d hotspot residues (Z >= %4.2f)", nhot, *hot))
	}
	if !math.IsNaN(*active) {
		d, err := spatial.DistanceToClosestActive(rescoords, feat, *active)
		if err != nil {
			LogV(1, "Distance to active residues not computed:", err)
		} else if err := mol.Annotate("dist_active", d); err != nil {
			log.Fatal(err)
		}
	}
	if h, err := histo.FromProfile(z, 10); err == nil {
		LogV(2, "Z-score distribution:")
		LogV(2, h)
	}

	res := mol.Residues()
	for i, r := range res {
		fmt.Printf("%-12s %8.3f %8.3f %s\n", r, feat[i], z[i], colors[i])
	}

	if *pdbout != "" {
		b, err := foldvis.ResidueBfactors(mol.Topology, noNaN(z))
		if err != nil {
			log.Fatal(err)
		}
		if err := foldvis.PDBFileWrite(*pdbout, mol, o.Frame(), b); err != nil {
			log.Fatal(err)
		}
		LogV(1, "Wrote", *pdbout)
	}
	if *jsonout != "" {
		writeJSON(*jsonout, mol, label, colors)
	}
	if *plotout != "" {
		title := fmt.Sprintf("%s Z-score, %3.1f A", label, o.Radius())
		if err := foldplot.Profile(z, title, *plotout, 1.96, -1.96); err != nil {
			log.Fatal(err)
		}
		LogV(1, "Wrote", *plotout)
	}
}

func writeJSON(name string, mol *foldvis.Molecule, label string, colors []string) {
	t, jerr := annot.New(mol)
	if jerr != nil {
		log.Fatal(string(jerr.Marshal()))
	}
	if jerr := t.AddColors(label, colors); jerr != nil {
		log.Fatal(string(jerr.Marshal()))
	}
	out := os.Stdout
	if name != "-" {
		f, err := os.Create(name)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	if jerr := t.Encode(out); jerr != nil {
		log.Fatal(string(jerr.Marshal()))
	}
	LogV(1, "Wrote", name)
}
