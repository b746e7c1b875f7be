// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import "github.com/pdiddy/learnpath/pkg/types"

// countBand awards points once the source's candidate count reaches Min.
// Bands for a source are ordered ascending; the highest reached band
// wins, so a bonus band is expressed as a higher total at a higher count.
type countBand struct {
	Min    int
	Points float64
}

// stageWeights is the weighted presence table per learning stage.
// Academic courses carry the most weight, then books, certifications,
// and government docs; videos, articles, and podcasts contribute through
// volume thresholds. Data, not code: tuning a stage is a table edit.
var stageWeights = map[types.Stage]map[types.SourceType][]countBand{
	types.StageFundamentals: {
		types.SourceCourse:     {{1, 30}, {3, 50}},
		types.SourceBook:       {{1, 20}, {2, 30}},
		types.SourceGovernment: {{1, 10}},
		types.SourceVideo:      {{1, 10}, {3, 20}},
		types.SourceArticle:    {{1, 5}, {3, 10}},
		types.SourcePodcast:    {{1, 5}},
	},
	types.StageReinforce: {
		types.SourceCourse:  {{1, 20}, {3, 40}},
		types.SourceBook:    {{1, 15}},
		types.SourceVideo:   {{1, 15}, {3, 25}},
		types.SourceArticle: {{1, 10}, {3, 20}},
		types.SourcePodcast: {{1, 10}, {3, 15}},
	},
	types.StagePractical: {
		types.SourceCourse:        {{1, 20}, {3, 40}},
		types.SourceCertification: {{1, 25}, {2, 35}},
		types.SourceGovernment:    {{1, 15}},
		types.SourceVideo:         {{3, 15}},
		types.SourceArticle:       {{3, 10}},
	},
	types.StageAdvanced: {
		types.SourceCourse:        {{1, 30}, {3, 50}},
		types.SourceCertification: {{1, 20}},
		types.SourceBook:          {{1, 15}},
		types.SourceVideo:         {{5, 10}},
		types.SourceArticle:       {{3, 10}},
	},
}

// computeCoverage applies the weighted presence table to the resolved
// sources. Each stage is capped at 100; overall is the mean of the four
// stages.
func computeCoverage(srcs map[types.SourceType]types.SourceResult) (map[types.Stage]float64, float64) {
	counts := make(map[types.SourceType]int, len(srcs))
	for st, sr := range srcs {
		counts[st] = len(sr.Candidates)
	}

	coverage := make(map[types.Stage]float64, len(types.AllStages))
	var total float64
	for _, stage := range types.AllStages {
		var sum float64
		for st, bands := range stageWeights[stage] {
			n := counts[st]
			var points float64
			for _, b := range bands {
				if n >= b.Min {
					points = b.Points
				}
			}
			sum += points
		}
		if sum > 100 {
			sum = 100
		}
		coverage[stage] = sum
		total += sum
	}
	return coverage, total / float64(len(types.AllStages))
}
