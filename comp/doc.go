// Package comp implements compositional data analysis in the Aitchison sense.
//
// A composition is a row of strictly positive parts whose only meaningful
// information is the ratios between them. Ordinary means and variances of
// raw ratios are not invertible (mean(a/b) != 1/mean(b/a)); log-ratios are.
//
// Transforms (rows are observations, columns are parts):
//
//	Close        rows scaled to unit sum
//	CLR / ILR    centred and isometric (Helmert) log-ratios, with inverses
//	ALR          additive log-ratio against one divisor part, with inverse
//
// Statistics:
//
//	LogRatioMean      closed geometric mean of a set of compositions
//	VariationMatrix   var(log(x_i / x_j)) for every part pair
//	CompareRatios     simple-ratio vs log-ratio summaries of two variables
//	NormToLogNorm, LogNormToNorm, LogNormal, FitLogNormal
//
// All functions are pure; inputs are never modified.
package comp
