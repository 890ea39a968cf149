// Package planner estimates competitor counts per round for a multi-event
// speedcubing competition and packs the resulting rounds into a day-by-day
// timetable.
//
// Everything here is a pure function of its inputs. Adjustments the
// planner makes to caller settings (round counts forced down by the
// regulations, capped finals, clamped advancement) are reported in the
// result instead of being written back.
package planner

import (
	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/models"
)

// Plan is the complete output of one estimation and scheduling pass.
type Plan struct {
	Estimates *Estimates `json:"estimates"`
	Timetable *Timetable `json:"timetable"`
	// Warnings holds the projector notices followed by the scheduler
	// warnings.
	Warnings []string `json:"warnings"`
}

// Build runs the advancement projector and the day scheduler.
func Build(cat *catalog.Catalog, cfg models.CompetitionConfig, settings map[string]models.CategorySettings) (*Plan, error) {
	est, err := Project(cat, cfg, settings)
	if err != nil {
		return nil, err
	}
	tt, err := Schedule(est.Rows, cfg.Days, cfg.MainEvent)
	if err != nil {
		return nil, err
	}

	warnings := make([]string, 0, len(est.Notices)+len(tt.Warnings))
	warnings = append(warnings, est.Notices...)
	warnings = append(warnings, tt.Warnings...)

	return &Plan{Estimates: est, Timetable: tt, Warnings: warnings}, nil
}

// EstimateTable renders the plan's estimates.
func (p *Plan) EstimateTable() Table {
	return EstimateTable(p.Estimates)
}

// ScheduleTable renders the plan's timetable.
func (p *Plan) ScheduleTable() Table {
	return ScheduleTable(p.Timetable)
}
