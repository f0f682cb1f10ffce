//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"sort"

	"github.com/biogo/store/interval"
)

// BuildFeatTrees builds one tree per chromosome with the span of each feature.
func BuildFeatTrees(featureExts []*FeatureExt) (trees map[string]*interval.IntTree, err error) {
	trees = make(map[string]*interval.IntTree)
	for i, feat := range featureExts {
		// New tree for unseen chromosome
		if _, ok := trees[feat.Chrom]; !ok {
			trees[feat.Chrom] = &interval.IntTree{}
		}
		start, end := feat.Span()
		iv := IntInterval{Start: start, End: end, UID: uintptr(i), FeatID: feat.ID}
		if err = trees[feat.Chrom].Insert(iv, true); err != nil {
			return
		}
	}
	for k := range trees {
		trees[k].AdjustRanges()
	}
	return
}

// FindFeatures returns the sorted IDs of the features overlapping [start, end) on chrom.
func FindFeatures(trees map[string]*interval.IntTree, chrom string, start, end int) []uint32 {
	tree, ok := trees[chrom]
	if !ok {
		return nil
	}
	var ids []uint32
	for _, iv := range tree.Get(IntInterval{Start: start, End: end}) {
		ids = append(ids, iv.(IntInterval).FeatID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
