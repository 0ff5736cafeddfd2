package enrichment

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

// Weather fields reported as missing by Aggregate.
const (
	FieldTMin = "tmin"
	FieldTMax = "tmax"
	FieldTAvg = "tavg"
	FieldCoco = "coco"
)

// Aggregate reduces daily observations to window aggregates: the minimum of
// daily minima, the maximum of daily maxima, the mean of daily averages and
// the condition code of the earliest day carrying one. A field with no values
// in the window is 0 and is listed in missing.
func Aggregate(days []DailyObservation) (w model.Weather, missing []string) {
	days = append([]DailyObservation(nil), days...)
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	var mins, maxs, avgs []float64
	coco := false
	for _, d := range days {
		if d.TMin != nil {
			mins = append(mins, *d.TMin)
		}
		if d.TMax != nil {
			maxs = append(maxs, *d.TMax)
		}
		if d.TAvg != nil {
			avgs = append(avgs, *d.TAvg)
		}
		if !coco && d.ConditionCode != nil {
			w.ConditionCode = *d.ConditionCode
			coco = true
		}
	}
	if len(mins) > 0 {
		w.TMin = floats.Min(mins)
	} else {
		missing = append(missing, FieldTMin)
	}
	if len(maxs) > 0 {
		w.TMax = floats.Max(maxs)
	} else {
		missing = append(missing, FieldTMax)
	}
	if len(avgs) > 0 {
		w.TAvg = stat.Mean(avgs, nil)
	} else {
		missing = append(missing, FieldTAvg)
	}
	if !coco {
		missing = append(missing, FieldCoco)
	}
	return w, missing
}
