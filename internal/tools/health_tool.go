// In file: internal/tools/health_tool.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dileep-u-k/device-tools/internal/health"
)

// --- Health Tool Implementation ---

// HealthDataSource is the datastore the health tool queries.
type HealthDataSource interface {
	Available(ctx context.Context) bool
	RequestAuthorization(ctx context.Context, types []health.DataType) error
	CumulativeSum(ctx context.Context, t health.DataType, start, end time.Time) (float64, error)
	Samples(ctx context.Context, t health.DataType, start, end time.Time) ([]health.Sample, error)
	Workouts(ctx context.Context, start, end time.Time) ([]health.Workout, error)
	WorkoutEnergy(ctx context.Context, workoutID string) (float64, error)
}

const (
	healthActionRead    = "read"
	healthActionWrite   = "write"
	healthActionSummary = "summary"
	healthActionTrends  = "trends"

	trendIncreasing = "increasing"
	trendDecreasing = "decreasing"
	trendStable     = "stable"

	trendThreshold = 0.05
	metersPerMile  = 1609.344
	dateLayout     = "2006-01-02"

	// Concurrent workout energy lookups.
	energyLookupLimit = 4
)

var periodDays = map[string]int{"day": 1, "week": 7, "month": 30}

var healthErrorKinds = []ErrorKind{
	KindHealthKitNotAvailable,
	KindMissingDataType,
	KindInvalidDataType,
	KindInvalidAction,
	KindInvalidFieldValue,
	KindDataTypeNotAvailable,
	KindAuthorizationDenied,
	KindNoData,
	KindNotImplemented,
	KindQueryFailed,
}

var healthEncoder = NewEncoder(
	StringField("action"),
	StringField("dataType"),
	StringField("startDate"),
	StringField("endDate"),
	IntField("days"),
	IntField("totalSteps"),
	IntField("totalCalories"),
	FloatField("totalKilometers"),
	FloatField("totalMiles"),
	FloatField("dailyAverage"),
	IntField("averageBPM"),
	IntField("minBPM"),
	IntField("maxBPM"),
	IntField("sampleCount"),
	FloatField("totalSleepHours"),
	FloatField("averageSleepHours"),
	IntField("workoutCount"),
	IntField("totalDurationMinutes"),
	ListField("workouts", "; "),
	FloatField("minDaily"),
	FloatField("maxDaily"),
	StringField("trend"),
	ListField("dailyValues", ", "),
)

// HealthReport is the health tool's result. Only the fields for the
// requested action and data type are filled; the rest stay zero.
type HealthReport struct {
	Action               string   `json:"action"`
	DataType             string   `json:"dataType"`
	StartDate            string   `json:"startDate"`
	EndDate              string   `json:"endDate"`
	Days                 int      `json:"days"`
	TotalSteps           int      `json:"totalSteps"`
	TotalCalories        int      `json:"totalCalories"`
	TotalKilometers      float64  `json:"totalKilometers"`
	TotalMiles           float64  `json:"totalMiles"`
	DailyAverage         float64  `json:"dailyAverage"`
	AverageBPM           int      `json:"averageBPM"`
	MinBPM               int      `json:"minBPM"`
	MaxBPM               int      `json:"maxBPM"`
	SampleCount          int      `json:"sampleCount"`
	TotalSleepHours      float64  `json:"totalSleepHours"`
	AverageSleepHours    float64  `json:"averageSleepHours"`
	WorkoutCount         int      `json:"workoutCount"`
	TotalDurationMinutes int      `json:"totalDurationMinutes"`
	Workouts             []string `json:"-"`
	MinDaily             float64  `json:"minDaily"`
	MaxDaily             float64  `json:"maxDaily"`
	Trend                string   `json:"trend"`
	DailyValues          []string `json:"-"`

	message string
}

func (r *HealthReport) Fields() map[string]any {
	return map[string]any{
		"action":               r.Action,
		"dataType":             r.DataType,
		"startDate":            r.StartDate,
		"endDate":              r.EndDate,
		"days":                 r.Days,
		"totalSteps":           r.TotalSteps,
		"totalCalories":        r.TotalCalories,
		"totalKilometers":      r.TotalKilometers,
		"totalMiles":           r.TotalMiles,
		"dailyAverage":         r.DailyAverage,
		"averageBPM":           r.AverageBPM,
		"minBPM":               r.MinBPM,
		"maxBPM":               r.MaxBPM,
		"sampleCount":          r.SampleCount,
		"totalSleepHours":      r.TotalSleepHours,
		"averageSleepHours":    r.AverageSleepHours,
		"workoutCount":         r.WorkoutCount,
		"totalDurationMinutes": r.TotalDurationMinutes,
		"workouts":             r.Workouts,
		"minDaily":             r.MinDaily,
		"maxDaily":             r.MaxDaily,
		"trend":                r.Trend,
		"dailyValues":          r.DailyValues,
	}
}

func (r *HealthReport) Summary() string { return r.message }

// HealthConfig carries the clock and calendar the tool resolves dates with.
type HealthConfig struct {
	// Location is the calendar for date-only inputs and daily buckets.
	// Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// HealthTool answers read, summary and trend questions about the user's
// health data.
type HealthTool struct {
	source HealthDataSource
	loc    *time.Location
	now    func() time.Time
}

var _ ToolExecutor = (*HealthTool)(nil)

func NewHealthTool(source HealthDataSource, cfg HealthConfig) *HealthTool {
	ht := &HealthTool{source: source, loc: cfg.Location, now: cfg.Now}
	if ht.loc == nil {
		ht.loc = time.Local
	}
	if ht.now == nil {
		ht.now = time.Now
	}
	return ht
}

func (ht *HealthTool) Definition() Tool {
	dataTypes := make([]string, len(health.AllDataTypes))
	for i, t := range health.AllDataTypes {
		dataTypes[i] = string(t)
	}
	return NewFunctionTool(
		"queryHealthData",
		"Read, summarize or analyze trends in the user's health data (steps, heart rate, workouts, sleep, active energy, distance) over a date range.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"action": {
					Type:        "string",
					Description: "What to do with the data.",
					Enum:        []string{healthActionRead, healthActionWrite, healthActionSummary, healthActionTrends},
					Default:     healthActionRead,
				},
				"dataType": {
					Type:        "string",
					Description: "The kind of health data. Required for read and trends.",
					Enum:        dataTypes,
				},
				"startDate": {
					Type:        "string",
					Description: "Start of the range, YYYY-MM-DD or RFC 3339.",
				},
				"endDate": {
					Type:        "string",
					Description: "End of the range, YYYY-MM-DD or RFC 3339. Defaults to now.",
				},
				"value": {
					Type:        "number",
					Description: "Value to record (write only).",
				},
				"unit": {
					Type:        "string",
					Description: "Unit of the value to record (write only).",
				},
				"period": {
					Type:        "string",
					Description: "Range length used when startDate is omitted.",
					Enum:        []string{"day", "week", "month"},
					Default:     "week",
				},
			},
		},
	)
}

func (ht *HealthTool) Execute(ctx context.Context, arguments string) Output {
	args, err := ParseArguments(arguments, ht.Definition().Function.Parameters)
	if err != nil {
		echo := echoArguments(arguments, map[string]string{
			"action": "action", "dataType": "dataType", "startDate": "startDate", "endDate": "endDate",
		})
		return healthEncoder.EncodeError(healthArgumentError(asArgumentError(err)), echo)
	}
	action := args.String("action")
	dataType := health.DataType(args.String("dataType"))
	echo := map[string]any{
		"action":    action,
		"dataType":  string(dataType),
		"startDate": args.String("startDate"),
		"endDate":   args.String("endDate"),
	}

	report, err := ht.run(ctx, args, action, dataType)
	if err != nil {
		te := Classify(mapHealthError(err), healthErrorKinds, KindQueryFailed)
		log.Printf("❌ queryHealthData %s/%s failed: %v", action, dataType, te)
		return healthEncoder.EncodeError(te, echo)
	}
	return healthEncoder.Encode(report)
}

// healthArgumentError renames generic validation failures on action and
// dataType to the health-specific kinds.
func healthArgumentError(argErr *ArgumentError) *ToolError {
	if argErr.Kind == KindInvalidFieldValue {
		switch argErr.Field {
		case "action":
			return NewError(KindInvalidAction, argErr.Reason)
		case "dataType":
			return NewError(KindInvalidDataType, argErr.Reason)
		}
	}
	return argErr.ToolError()
}

func mapHealthError(err error) error {
	var te *ToolError
	switch {
	case errors.As(err, &te):
		return te
	case errors.Is(err, health.ErrNotAvailable):
		return WrapError(KindHealthKitNotAvailable, "", err)
	case errors.Is(err, health.ErrAuthorizationDenied):
		return WrapError(KindAuthorizationDenied, "", err)
	case errors.Is(err, health.ErrNoData):
		return WrapError(KindNoData, "", err)
	}
	return WrapError(KindQueryFailed, "", err)
}

func (ht *HealthTool) run(ctx context.Context, args Arguments, action string, dataType health.DataType) (*HealthReport, error) {
	if action == healthActionWrite {
		return nil, NewError(KindNotImplemented, "writing health data")
	}
	if action != healthActionSummary && dataType == "" {
		return nil, NewError(KindMissingDataType, "")
	}

	rng, err := ht.resolveRange(args)
	if err != nil {
		return nil, err
	}
	start, end := rng.start, rng.queryEnd

	if !ht.source.Available(ctx) {
		return nil, NewError(KindHealthKitNotAvailable, "")
	}

	report := &HealthReport{
		Action:    action,
		DataType:  string(dataType),
		StartDate: rng.start.Format(dateLayout),
		EndDate:   rng.end.Format(dateLayout),
		Days:      daysBetween(rng.start, rng.end),
	}

	switch action {
	case healthActionSummary:
		err = ht.summarize(ctx, report, start, end)
	case healthActionTrends:
		err = ht.trends(ctx, report, dataType, start, end)
	default:
		err = ht.read(ctx, report, dataType, start, end)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// dateRange is a resolved query range. end is the date the caller named;
// queryEnd is the exclusive bound handed to the store, one day past a
// date-only end so the end date itself is included.
type dateRange struct {
	start    time.Time
	end      time.Time
	queryEnd time.Time
}

// resolveRange turns the date arguments into a range in the tool's
// location. Explicit dates win over period.
func (ht *HealthTool) resolveRange(args Arguments) (dateRange, error) {
	end := ht.now().In(ht.loc)
	queryEnd := end
	if raw := args.String("endDate"); raw != "" {
		parsed, dateOnly, err := parseDate(raw, ht.loc)
		if err != nil {
			return dateRange{}, NewError(KindInvalidFieldValue, "endDate "+err.Error())
		}
		end, queryEnd = parsed, parsed
		if dateOnly {
			queryEnd = parsed.AddDate(0, 0, 1)
		}
	}

	var start time.Time
	if raw := args.String("startDate"); raw != "" {
		parsed, _, err := parseDate(raw, ht.loc)
		if err != nil {
			return dateRange{}, NewError(KindInvalidFieldValue, "startDate "+err.Error())
		}
		start = parsed
	} else {
		start = end.AddDate(0, 0, -periodDays[args.String("period")])
	}

	if end.Before(start) {
		return dateRange{}, NewError(KindInvalidFieldValue, "endDate is before startDate")
	}
	return dateRange{start: start, end: end, queryEnd: queryEnd}, nil
}

// parseDate accepts YYYY-MM-DD (midnight in loc) or RFC 3339. dateOnly
// reports which form matched.
func parseDate(raw string, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	if t, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), false, nil
	}
	return time.Time{}, false, fmt.Errorf("must be YYYY-MM-DD or RFC 3339, got %q", raw)
}

// daysBetween counts the calendar days from start's date to end's date,
// never less than 1.
func daysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	days := int(e.Sub(s).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

func (ht *HealthTool) authorize(ctx context.Context, types ...health.DataType) error {
	if err := ht.source.RequestAuthorization(ctx, types); err != nil {
		if errors.Is(err, health.ErrAuthorizationDenied) {
			return WrapError(KindAuthorizationDenied, "", err)
		}
		return err
	}
	return nil
}

func (ht *HealthTool) read(ctx context.Context, r *HealthReport, dataType health.DataType, start, end time.Time) error {
	if err := ht.authorize(ctx, dataType); err != nil {
		return err
	}

	switch dataType {
	case health.Steps, health.ActiveEnergy, health.Distance:
		sum, err := ht.source.CumulativeSum(ctx, dataType, start, end)
		if err != nil {
			return err
		}
		applyCumulative(r, dataType, sum)
		switch dataType {
		case health.Steps:
			r.message = fmt.Sprintf("Total steps: %d", r.TotalSteps)
		case health.ActiveEnergy:
			r.message = fmt.Sprintf("Active energy burned: %d kcal", r.TotalCalories)
		default:
			r.message = fmt.Sprintf("Distance covered: %.2f km (%.2f mi)", r.TotalKilometers, r.TotalMiles)
		}
		return nil

	case health.HeartRate:
		samples, err := ht.source.Samples(ctx, dataType, start, end)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return NewError(KindNoData, "no heart rate samples")
		}
		minBPM, maxBPM := math.Inf(1), math.Inf(-1)
		var total float64
		for _, s := range samples {
			total += s.Value
			minBPM = math.Min(minBPM, s.Value)
			maxBPM = math.Max(maxBPM, s.Value)
		}
		r.AverageBPM = int(math.Round(total / float64(len(samples))))
		r.MinBPM = int(math.Round(minBPM))
		r.MaxBPM = int(math.Round(maxBPM))
		r.SampleCount = len(samples)
		r.message = fmt.Sprintf("Average heart rate: %d BPM (range %d-%d)", r.AverageBPM, r.MinBPM, r.MaxBPM)
		return nil

	case health.Sleep:
		samples, err := ht.source.Samples(ctx, dataType, start, end)
		if err != nil {
			return err
		}
		var asleep time.Duration
		var counted int
		for _, s := range samples {
			if !s.Asleep() || s.End.Before(s.Start) {
				continue
			}
			asleep += s.End.Sub(s.Start)
			counted++
		}
		if counted == 0 {
			return NewError(KindNoData, "no sleep samples")
		}
		hours := asleep.Hours()
		r.TotalSleepHours = round(hours, 1)
		r.AverageSleepHours = round(hours/float64(r.Days), 1)
		r.message = fmt.Sprintf("Average sleep: %.1f hours per night", r.AverageSleepHours)
		return nil

	case health.Workouts:
		return ht.readWorkouts(ctx, r, start, end)
	}
	return NewError(KindInvalidDataType, string(dataType))
}

func applyCumulative(r *HealthReport, dataType health.DataType, sum float64) {
	switch dataType {
	case health.Steps:
		r.TotalSteps = int(math.Round(sum))
		r.DailyAverage = float64(r.TotalSteps / r.Days)
	case health.ActiveEnergy:
		r.TotalCalories = int(math.Round(sum))
		r.DailyAverage = float64(r.TotalCalories / r.Days)
	case health.Distance:
		r.TotalKilometers = round(sum/1000, 2)
		r.TotalMiles = round(sum/metersPerMile, 2)
		r.DailyAverage = round(sum/1000/float64(r.Days), 2)
	}
}

func (ht *HealthTool) readWorkouts(ctx context.Context, r *HealthReport, start, end time.Time) error {
	workouts, err := ht.source.Workouts(ctx, start, end)
	if err != nil {
		return err
	}
	if len(workouts) == 0 {
		return NewError(KindNoData, "no workouts")
	}
	sort.SliceStable(workouts, func(i, j int) bool { return workouts[i].Start.Before(workouts[j].Start) })

	energies := make([]float64, len(workouts))
	var g errgroup.Group
	g.SetLimit(energyLookupLimit)
	for i, w := range workouts {
		g.Go(func() error {
			kcal, err := ht.source.WorkoutEnergy(ctx, w.ID)
			if err != nil {
				log.Printf("⚠️ Energy lookup for workout %s failed, counting 0 kcal: %v", w.ID, err)
				return nil
			}
			energies[i] = kcal
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return WrapError(KindQueryFailed, "workout energy lookup interrupted", err)
	}

	var totalMinutes, totalKcal int
	entries := make([]string, len(workouts))
	for i, w := range workouts {
		minutes := int(w.Duration().Minutes())
		kcal := int(math.Round(energies[i]))
		totalMinutes += minutes
		totalKcal += kcal
		entries[i] = fmt.Sprintf("%s %d min %d kcal", WorkoutActivityName(w.ActivityType), minutes, kcal)
	}
	r.WorkoutCount = len(workouts)
	r.TotalDurationMinutes = totalMinutes
	r.TotalCalories = totalKcal
	r.Workouts = entries
	r.message = fmt.Sprintf("Found %d workouts totaling %d minutes", r.WorkoutCount, totalMinutes)
	return nil
}

func (ht *HealthTool) summarize(ctx context.Context, r *HealthReport, start, end time.Time) error {
	r.DataType = ""
	if err := ht.authorize(ctx, health.Steps, health.ActiveEnergy, health.Distance, health.HeartRate); err != nil {
		return err
	}

	for _, t := range []health.DataType{health.Steps, health.ActiveEnergy, health.Distance} {
		sum, err := ht.source.CumulativeSum(ctx, t, start, end)
		if errors.Is(err, health.ErrNoData) {
			continue
		}
		if err != nil {
			return err
		}
		applyCumulative(r, t, sum)
	}
	// The per-type daily averages collide in one field; a summary has none.
	r.DailyAverage = 0

	samples, err := ht.source.Samples(ctx, health.HeartRate, start, end)
	if err != nil {
		return err
	}
	if len(samples) > 0 {
		var total float64
		for _, s := range samples {
			total += s.Value
		}
		r.AverageBPM = int(math.Round(total / float64(len(samples))))
		r.SampleCount = len(samples)
	}

	r.message = fmt.Sprintf("Summary for %d days: %d steps, %d kcal active energy, %.2f km, average heart rate %d BPM",
		r.Days, r.TotalSteps, r.TotalCalories, r.TotalKilometers, r.AverageBPM)
	return nil
}

func (ht *HealthTool) trends(ctx context.Context, r *HealthReport, dataType health.DataType, start, end time.Time) error {
	switch dataType {
	case health.Steps, health.ActiveEnergy, health.Distance, health.HeartRate:
	default:
		return NewError(KindDataTypeNotAvailable, fmt.Sprintf("trends are not available for %s", dataType))
	}
	if err := ht.authorize(ctx, dataType); err != nil {
		return err
	}

	samples, err := ht.source.Samples(ctx, dataType, start, end)
	if err != nil {
		return err
	}
	days, values := dailyBuckets(samples, dataType, ht.loc)
	if len(values) == 0 {
		return NewError(KindNoData, "no samples to analyze")
	}

	var total float64
	minDaily, maxDaily := values[0], values[0]
	entries := make([]string, len(values))
	for i, v := range values {
		total += v
		minDaily = math.Min(minDaily, v)
		maxDaily = math.Max(maxDaily, v)
		entries[i] = fmt.Sprintf("%s=%g", days[i], v)
	}
	r.DailyAverage = round(total/float64(len(values)), 2)
	r.MinDaily = minDaily
	r.MaxDaily = maxDaily
	r.Trend = trendDirection(values)
	r.DailyValues = entries
	r.message = fmt.Sprintf("%s %s: daily average %g over %d days", dataTypeLabel(dataType), trendPhrase(r.Trend), r.DailyAverage, len(values))
	return nil
}

// dailyBuckets groups samples by calendar day. Cumulative types are summed
// per day (distance in km); heart rate is averaged. Days without samples are
// left out. Values are rounded to 2 dp.
func dailyBuckets(samples []health.Sample, dataType health.DataType, loc *time.Location) ([]string, []float64) {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, s := range samples {
		day := s.Start.In(loc).Format(dateLayout)
		sums[day] += s.Value
		counts[day]++
	}
	days := make([]string, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Strings(days)

	values := make([]float64, len(days))
	for i, day := range days {
		v := sums[day]
		switch dataType {
		case health.HeartRate:
			v /= float64(counts[day])
		case health.Distance:
			v /= 1000
		}
		values[i] = round(v, 2)
	}
	return days, values
}

// trendDirection compares the mean of the first half of values with the
// mean of the second half. The middle value of an odd count is ignored.
func trendDirection(values []float64) string {
	half := len(values) / 2
	if half == 0 {
		return trendStable
	}
	first := mean(values[:half])
	second := mean(values[len(values)-half:])
	if first == 0 {
		if second > 0 {
			return trendIncreasing
		}
		return trendStable
	}
	change := (second - first) / first
	switch {
	case change > trendThreshold:
		return trendIncreasing
	case change < -trendThreshold:
		return trendDecreasing
	}
	return trendStable
}

func trendPhrase(trend string) string {
	if trend == trendStable {
		return "are stable"
	}
	return "are " + trend
}

func dataTypeLabel(t health.DataType) string {
	switch t {
	case health.Steps:
		return "Steps"
	case health.HeartRate:
		return "Heart rate"
	case health.ActiveEnergy:
		return "Active energy"
	case health.Distance:
		return "Distance"
	}
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func mean(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

var workoutActivityNames = map[int]string{
	1:  "American Football",
	2:  "Archery",
	3:  "Australian Football",
	4:  "Badminton",
	5:  "Baseball",
	6:  "Basketball",
	7:  "Bowling",
	8:  "Boxing",
	9:  "Climbing",
	10: "Cricket",
	11: "Cross Training",
	12: "Curling",
	13: "Cycling",
	14: "Dance",
	16: "Elliptical",
	17: "Equestrian Sports",
	18: "Fencing",
	19: "Fishing",
	20: "Functional Strength Training",
	21: "Golf",
	22: "Gymnastics",
	23: "Handball",
	24: "Hiking",
	25: "Hockey",
	26: "Hunting",
	27: "Lacrosse",
	28: "Martial Arts",
	29: "Mind and Body",
	31: "Paddle Sports",
	32: "Play",
	33: "Preparation and Recovery",
	34: "Racquetball",
	35: "Rowing",
	36: "Rugby",
	37: "Running",
	38: "Sailing",
	39: "Skating Sports",
	40: "Snow Sports",
	41: "Soccer",
	42: "Softball",
	43: "Squash",
	44: "Stair Climbing",
	45: "Surfing Sports",
	46: "Swimming",
	47: "Table Tennis",
	48: "Tennis",
	49: "Track and Field",
	50: "Traditional Strength Training",
	51: "Volleyball",
	52: "Walking",
	53: "Water Fitness",
	54: "Water Polo",
	55: "Water Sports",
	56: "Wrestling",
	57: "Yoga",
	58: "Barre",
	59: "Core Training",
	60: "Cross Country Skiing",
	61: "Downhill Skiing",
	62: "Flexibility",
	63: "High Intensity Interval Training",
	64: "Jump Rope",
	65: "Kickboxing",
	66: "Pilates",
	67: "Snowboarding",
	68: "Stairs",
	69: "Step Training",
	70: "Wheelchair Walk Pace",
	71: "Wheelchair Run Pace",
	72: "Tai Chi",
	73: "Mixed Cardio",
	74: "Hand Cycling",
	75: "Disc Sports",
	76: "Fitness Gaming",
	77: "Cardio Dance",
	78: "Social Dance",
	79: "Pickleball",
	80: "Cooldown",
}

// WorkoutActivityName maps a workout activity code to a display name.
func WorkoutActivityName(code int) string {
	if name, ok := workoutActivityNames[code]; ok {
		return name
	}
	return "Other Workout"
}
