/*
 * doc.go, part of foldvis.
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

/*Package spatial implements per-residue spatial statistics over protein structures:
neighbor spheres around a residue, and the Getis-Ord Gi and Gi* statistics for local spatial
association of a per-residue feature.

The statistics follow "The analysis of Spatial Association by Use of Distance Statistics",
Getis & Ord, Geographical Analysis, 1992, with binary weights given by the neighbor sphere
of each residue. Gi excludes the residue at the center of the sphere from both the weights
and the features, while Gi* includes it.

Numerical degeneracies (features summing to zero, non-positive variances) are reported
as errors, never as NaN or Inf values.*/
package spatial
