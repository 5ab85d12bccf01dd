package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
	engine "github.com/avecbanker/backend/internal/domain/planning"
)

// scenarioFile is the on-disk layout of a planning scenario.
//
//	envelope = 1200
//	cadence  = "14 days"
//	now      = 2026-01-01
//
//	[[goal]]
//	name        = "Car loan"
//	kind        = "payoff"
//	target      = 20000
//	current     = 4000
//	priority    = 1
//	target_date = 2027-06-01
type scenarioFile struct {
	Envelope     decimal.Decimal `toml:"envelope"`
	Cadence      string          `toml:"cadence"`
	Now          *time.Time      `toml:"now"`
	Goals        []goalSpec      `toml:"goal"`
	Hypothetical *goalSpec       `toml:"hypothetical"`
}

type goalSpec struct {
	ID           string          `toml:"id"`
	Name         string          `toml:"name"`
	Kind         string          `toml:"kind"`
	Target       decimal.Decimal `toml:"target"`
	Current      decimal.Decimal `toml:"current"`
	Contribution decimal.Decimal `toml:"contribution"`
	Priority     int             `toml:"priority"`
	TargetDate   *time.Time      `toml:"target_date"`
	Active       *bool           `toml:"active"`
}

// scenario is a decoded scenario ready for the planning engine.
type scenario struct {
	Envelope     decimal.Decimal
	Cadence      engine.Cadence
	Now          time.Time
	Goals        []entity.Goal
	Hypothetical *entity.Goal
}

func loadScenario(path string) (*scenario, error) {
	var file scenarioFile
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in scenario %s: %s", path, strings.Join(keys, ", "))
	}
	return file.build()
}

func (f scenarioFile) build() (*scenario, error) {
	cadenceText := f.Cadence
	if cadenceText == "" {
		cadenceText = "monthly"
	}
	cadence, err := engine.ParseCadence(cadenceText)
	if err != nil {
		return nil, err
	}

	now := dateOnly(time.Now())
	if f.Now != nil {
		now = dateOnly(*f.Now)
	}

	s := &scenario{
		Envelope: f.Envelope,
		Cadence:  cadence,
		Now:      now,
		Goals:    make([]entity.Goal, 0, len(f.Goals)),
	}

	// Goals keep file order within a priority, so creation times count up to now.
	for i, raw := range f.Goals {
		g, err := raw.toGoal()
		if err != nil {
			return nil, err
		}
		g.CreatedAt = now.Add(time.Duration(i-len(f.Goals)) * time.Minute)
		s.Goals = append(s.Goals, g)
	}

	if f.Hypothetical != nil {
		g, err := f.Hypothetical.toGoal()
		if err != nil {
			return nil, err
		}
		g.CreatedAt = time.Time{}
		s.Hypothetical = &g
	}

	return s, nil
}

func (s goalSpec) toGoal() (entity.Goal, error) {
	kind := entity.GoalKind(strings.ToLower(s.Kind))
	if kind == "" {
		kind = entity.GoalKindSavings
	}

	g := entity.NewGoal(uuid.Nil, s.Name, kind, s.Target, s.Priority)
	if s.ID != "" {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			return entity.Goal{}, fmt.Errorf("goal %q has an invalid id: %w", s.Name, err)
		}
		g.ID = id
	}
	g.CurrentAmount = s.Current
	g.MonthlyContribution = s.Contribution
	if s.TargetDate != nil {
		date := dateOnly(*s.TargetDate)
		g.TargetDate = &date
	}
	if s.Active != nil && !*s.Active {
		g.Close(g.CreatedAt)
	}
	return *g, nil
}

// dateOnly drops the clock and zone of a TOML date so every date is a UTC midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
