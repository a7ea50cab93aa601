// SPDX-License-Identifier: MIT

// Package orientation estimates the horizontal misorientation of a
// seismic station from teleseismic P arrivals.
//
// For a correctly oriented sensor the P-wave particle motion of a
// teleseismic arrival is polarized along the radial direction. A principal
// component analysis of the (R, T) motion over a short window around the
// onset gives the dominant polarization; its angle from the radial axis is
// the azimuth residual of that event. Residuals are folded into (−90°, 90°]
// because a principal direction is only defined up to sign, then aggregated
// per station.
//
// Reference: Wilde-Piórko et al. (2017), "On the rotation of teleseismic
// seismograms based on the receiver function technique", J Seismol 21,
// 857–868.
package orientation
