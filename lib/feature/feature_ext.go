//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"fmt"

	"github.com/grailbio/base/traverse"

	"git.sr.ht/~vejnar/TranscriptMapper/lib/cmapper"
)

// FeatureExt is a feature with its coordinate mapper.
type FeatureExt struct {
	*Feature
	CoordMapper *cmapper.CoordMapper
}

// ExtendFeatures builds the mapper of every feature. Feature IDs must be
// their index in features.
func ExtendFeatures(features []Feature) ([]*FeatureExt, error) {
	featureExts := make([]*FeatureExt, len(features))
	for ifeat := range features {
		if features[ifeat].ID != uint32(ifeat) {
			return nil, fmt.Errorf("Wrong feature ID %d for %s at %d", features[ifeat].ID, features[ifeat].Name, ifeat)
		}
	}
	err := traverse.Each(len(features), func(ifeat int) error {
		cm, err := features[ifeat].Mapper()
		if err != nil {
			return err
		}
		featureExts[ifeat] = &FeatureExt{Feature: &features[ifeat], CoordMapper: cm}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return featureExts, nil
}
