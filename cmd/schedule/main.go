package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jmcpheron/ccc-schedule/internal/filter"
	"github.com/jmcpheron/ccc-schedule/internal/model"
	"github.com/jmcpheron/ccc-schedule/internal/transform"
	"github.com/jmcpheron/ccc-schedule/internal/validation"
)

// schedule is an offline companion to the API server: it validates,
// inspects, filters, and transforms schedule files without needing
// PostgreSQL or Redis.
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "filter":
		err = runFilter(os.Args[2:])
	case "schedule-validate":
		err = runScheduleValidate(os.Args[2:])
	case "schedule-info":
		err = runScheduleInfo(os.Args[2:])
	case "schedule-filter":
		err = runScheduleFilter(os.Args[2:])
	case "transform":
		err = runTransform(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: schedule <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  validate <courses.json>           Quick-check a course list")
	fmt.Println("  filter <courses.json>             Filter a course list by units")
	fmt.Println("  schedule-validate <schedule.json> Full semantic validation of a schedule")
	fmt.Println("  schedule-info <schedule.json>     Print schedule metadata and counts")
	fmt.Println("  schedule-filter <schedule.json>   Filter a schedule's courses")
	fmt.Println("  transform <feed.json>             Transform a raw feed to canonical form")
}

// runValidate quick-checks each course record for the minimum shape and
// reports the first violation per record.
func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("validate requires a courses file")
	}

	courses, err := loadCourseRecords(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := validation.QuickCheck(courses); err != nil {
		return err
	}

	fmt.Printf("OK: %d courses passed quick validation\n", len(courses))
	return nil
}

// runFilter keeps the courses whose units fall inside the inclusive
// [min, max] range and writes the survivors.
func runFilter(args []string) error {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	minUnits := fs.Float64("min-units", 0, "Minimum units (inclusive)")
	maxUnits := fs.Float64("max-units", 99, "Maximum units (inclusive)")
	output := fs.String("output", "", "Write matches to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("filter requires a courses file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	var courses []model.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return fmt.Errorf("invalid courses JSON: %w", err)
	}

	matched := filter.ByUnits(courses, *minUnits, *maxUnits)
	fmt.Printf("Matched %d of %d courses\n", len(matched), len(courses))
	return writeJSON(*output, matched)
}

func runScheduleValidate(args []string) error {
	fs := flag.NewFlagSet("schedule-validate", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("schedule-validate requires a schedule file")
	}

	result := validation.ValidateScheduleFile(fs.Arg(0))
	fmt.Println(result.Summary())
	for _, e := range result.ErrorStrings() {
		fmt.Println("  error:", e)
	}
	for _, w := range result.WarningStrings() {
		fmt.Println("  warning:", w)
	}

	if !result.IsValid() {
		os.Exit(1)
	}
	return nil
}

func runScheduleInfo(args []string) error {
	fs := flag.NewFlagSet("schedule-info", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("schedule-info requires a schedule file")
	}

	schedule, err := loadSchedule(fs.Arg(0))
	if err != nil {
		return err
	}

	sections := 0
	for _, course := range schedule.Courses {
		sections += len(course.Sections)
	}

	terms := make([]string, 0, len(schedule.Metadata.Terms))
	for _, term := range schedule.Metadata.Terms {
		terms = append(terms, fmt.Sprintf("%s (%s)", term.Name, term.Code))
	}

	colleges := make([]string, 0, len(schedule.Metadata.Colleges))
	for _, college := range schedule.Metadata.Colleges {
		colleges = append(colleges, fmt.Sprintf("%s (%s)", college.Name, college.ID))
	}

	fmt.Printf("Colleges: %s\n", strings.Join(colleges, ", "))
	fmt.Printf("Terms:    %s\n", strings.Join(terms, ", "))
	fmt.Printf("Version:  %s\n", schedule.Metadata.Version)
	fmt.Printf("Updated:  %s\n", schedule.Metadata.LastUpdated)
	fmt.Printf("Courses:  %d\n", len(schedule.Courses))
	fmt.Printf("Sections: %d\n", sections)

	unique := filter.GetUniqueValues(schedule)
	fmt.Printf("Subjects: %s\n", strings.Join(unique.Subjects, ", "))
	fmt.Printf("Modes:    %s\n", strings.Join(unique.InstructionModes, ", "))
	return nil
}

func runScheduleFilter(args []string) error {
	fs := flag.NewFlagSet("schedule-filter", flag.ExitOnError)
	subject := fs.String("subject", "", "Subject code")
	term := fs.String("term", "", "Term code")
	mode := fs.String("mode", "", "Instruction mode code")
	geArea := fs.String("ge-area", "", "GE area")
	keyword := fs.String("keyword", "", "Keyword in title, description, or course key")
	openOnly := fs.Bool("open", false, "Open sections only")
	unitsMin := fs.Float64("units-min", -1, "Minimum units (inclusive)")
	unitsMax := fs.Float64("units-max", -1, "Maximum units (inclusive)")
	output := fs.String("output", "", "Write matches to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("schedule-filter requires a schedule file")
	}

	schedule, err := loadSchedule(fs.Arg(0))
	if err != nil {
		return err
	}

	opts := model.FilterOptions{
		Subject:         *subject,
		Term:            *term,
		InstructionMode: *mode,
		GEArea:          *geArea,
		Keyword:         *keyword,
		OpenOnly:        *openOnly,
	}
	if *unitsMin >= 0 {
		opts.UnitsMin = unitsMin
	}
	if *unitsMax >= 0 {
		opts.UnitsMax = unitsMax
	}

	matched := filter.Courses(schedule.Courses, opts)
	fmt.Printf("Matched %d of %d courses\n", len(matched), len(schedule.Courses))
	return writeJSON(*output, matched)
}

func runTransform(args []string) error {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)
	source := fs.String("source", "", "Transformer source name (required)")
	configPath := fs.String("config", "", "Institution config file (required)")
	output := fs.String("output", "", "Write the canonical document to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("transform requires a feed file")
	}
	if *source == "" || *configPath == "" {
		return fmt.Errorf("transform requires -source and -config")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var input map[string]any
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("invalid feed JSON: %w", err)
	}

	cfg, err := transform.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	transformer, err := transform.New(*source, cfg)
	if err != nil {
		return err
	}
	doc, err := transform.Transform(transformer, input)
	if err != nil {
		return err
	}

	return writeJSON(*output, doc)
}

func loadSchedule(path string) (*model.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return model.ParseSchedule(data)
}

// loadCourseRecords accepts either a bare JSON array of course records
// or an object with a "courses" key.
func loadCourseRecords(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var courses []map[string]any
	if err := json.Unmarshal(data, &courses); err == nil {
		return courses, nil
	}

	var doc struct {
		Courses []map[string]any `json:"courses"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid courses JSON: %w", err)
	}
	return doc.Courses, nil
}

func writeJSON(path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if path == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
