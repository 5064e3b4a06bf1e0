// Package nutrition holds the pure aggregation and formatting functions over
// already-loaded meal logs. Nothing here performs I/O.
package nutrition

import (
	"fmt"
	"math"
	"time"

	"github.com/carblens/backend/internal/types"
)

// kcalToKJ is the conversion factor between kilocalories and kilojoules.
const kcalToKJ = 4.184

// minChartScale keeps the weekly chart axis from shrinking below a 2000 kcal
// reference even when every observed daily total is lower.
const minChartScale = 2000

// Totals is a day's summed energy and carbohydrates.
type Totals struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
}

// ReferenceIntake is a fixed illustrative daily-needs profile.
type ReferenceIntake struct {
	Profile  string  `json:"profile"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
}

// Average adult daily nutritional needs, purely illustrative.
var DailyNeeds = []ReferenceIntake{
	{Profile: "male", Calories: 2500, Carbs: 300},
	{Profile: "female", Calories: 2000, Carbs: 250},
}

// DayGroup is one calendar day's logs, in their original relative order.
type DayGroup struct {
	Date time.Time       `json:"date"`
	Logs []types.MealLog `json:"logs"`
}

// GroupByDay partitions logs by the calendar date of their creation time in
// the given location. Days appear in first-seen order and each day keeps the
// input's relative log order.
func GroupByDay(logs []types.MealLog, loc *time.Location) []DayGroup {
	var groups []DayGroup
	index := make(map[time.Time]int)

	for _, l := range logs {
		day := startOfDay(l.Date, loc)
		if i, ok := index[day]; ok {
			groups[i].Logs = append(groups[i].Logs, l)
			continue
		}
		index[day] = len(groups)
		groups = append(groups, DayGroup{Date: day, Logs: []types.MealLog{l}})
	}
	return groups
}

// DailyTotals sums calories and carbs across a day's logs.
func DailyTotals(logs []types.MealLog) Totals {
	var t Totals
	for _, l := range logs {
		t.Calories += l.TotalCalories
		t.Carbs += l.TotalCarbs
	}
	return t
}

// IntakeShare is a daily total expressed as a percentage of one reference
// intake profile.
type IntakeShare struct {
	Profile         string  `json:"profile"`
	CaloriesPercent float64 `json:"caloriesPercent"`
	CarbsPercent    float64 `json:"carbsPercent"`
}

// ReferenceShares computes the percentage of each fixed reference intake
// covered by the given daily totals.
func ReferenceShares(t Totals) []IntakeShare {
	shares := make([]IntakeShare, 0, len(DailyNeeds))
	for _, ref := range DailyNeeds {
		shares = append(shares, IntakeShare{
			Profile:         ref.Profile,
			CaloriesPercent: t.Calories / ref.Calories * 100,
			CarbsPercent:    t.Carbs / ref.Carbs * 100,
		})
	}
	return shares
}

// WeekSeries is one calorie total per day over the trailing 7-day window,
// oldest first, ending on the reference day. Scale is the chart axis
// denominator: the largest observed total, floored at 2000 kcal.
type WeekSeries struct {
	Days     []time.Time `json:"days"`
	Calories []float64   `json:"calories"`
	Scale    float64     `json:"scale"`
}

// WeeklySeries buckets logs into the 7 calendar days ending on now's day in
// the given location. Days with no logs contribute zero.
func WeeklySeries(logs []types.MealLog, now time.Time, loc *time.Location) WeekSeries {
	series := WeekSeries{
		Days:     make([]time.Time, 0, 7),
		Calories: make([]float64, 7),
		Scale:    minChartScale,
	}

	today := startOfDay(now, loc)
	for i := 6; i >= 0; i-- {
		series.Days = append(series.Days, today.AddDate(0, 0, -i))
	}

	totals := make(map[time.Time]float64)
	for _, l := range logs {
		day := startOfDay(l.Date, loc)
		totals[day] += l.TotalCalories
	}

	for i, day := range series.Days {
		series.Calories[i] = totals[day]
		if series.Calories[i] > series.Scale {
			series.Scale = series.Calories[i]
		}
	}
	return series
}

// ConvertEnergy converts a kcal quantity to the given display unit.
func ConvertEnergy(kcal float64, unit types.EnergyUnit) float64 {
	if unit == types.EnergyKJ {
		return kcal * kcalToKJ
	}
	return kcal
}

// FormatEnergy renders a kcal quantity in the given unit, rounded to the
// nearest integer, with the unit suffix appended.
func FormatEnergy(kcal float64, unit types.EnergyUnit) string {
	return fmt.Sprintf("%d %s", int(math.Round(ConvertEnergy(kcal, unit))), unit)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
