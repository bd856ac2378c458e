// Package kmeansinit computes initial centroids for k-means
// clustering. Three method variants are supported: DeterministicDense
// takes the first rows of the data, RandomDense samples rows uniformly
// without replacement, and PlusPlusDense applies the k-means++ seeding
// of Arthur and Vassilvitskii. The randomized variants are fully
// reproducible given the parameter seed.
package kmeansinit
