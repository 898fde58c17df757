package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/counterline/till/pkg/ledger"
	"github.com/counterline/till/pkg/report"
	"github.com/counterline/till/pkg/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	s, err := ledger.NewStore(getDataDir())
	if err != nil {
		return err
	}

	args := os.Args[1:]
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")
	args = removeFlagWithValue(args, "--dir")

	if len(args) == 0 {
		return runTUI(s)
	}

	switch args[0] {
	case "add":
		if len(args) < 4 {
			return fmt.Errorf("usage: till add <customer> <order> <price> [YYYYMMDD] [observations...]")
		}
		return cmdAdd(s, args[1:], jsonOutput)
	case "list":
		return cmdList(s, jsonOutput)
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("usage: till search <customer>")
		}
		return cmdSearch(s, args[1], jsonOutput)
	case "total":
		return cmdTotal(s, jsonOutput)
	case "report":
		anchor, err := anchorFrom(args[1:])
		if err != nil {
			return err
		}
		return cmdReport(s, anchor, jsonOutput)
	case "chart":
		anchor, err := anchorFrom(args[1:])
		if err != nil {
			return err
		}
		return cmdChart(s, anchor, jsonOutput)
	default:
		return fmt.Errorf("unknown command: %s\nUsage: till [add|list|search|total|report|chart]", args[0])
	}
}

func getDataDir() string {
	// Check env var
	if dir := os.Getenv("TILL_DIR"); dir != "" {
		return dir
	}
	// Check --dir flag
	for i, a := range os.Args {
		if a == "--dir" && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
	}
	return ledger.DefaultDataDir()
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

func removeFlagWithValue(args []string, flag string) []string {
	var result []string
	for i := 0; i < len(args); i++ {
		if args[i] == flag {
			i++ // skip the value too
			continue
		}
		result = append(result, args[i])
	}
	return result
}

// anchorFrom reads an optional YYYYMMDD argument; today when absent.
func anchorFrom(args []string) (time.Time, error) {
	if len(args) == 0 {
		return ledger.Day(time.Now()), nil
	}
	d, err := time.Parse("20060102", args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYYMMDD)", args[0])
	}
	return ledger.Day(d), nil
}

func runTUI(s *ledger.Store) error {
	m := tui.NewModel(s)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Start file watcher
	cleanup, err := tui.StartWatcher(s.Root, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

// CLI Commands

func cmdAdd(s *ledger.Store, args []string, jsonOut bool) error {
	price, err := ledger.ParsePrice(args[2])
	if err != nil {
		return err
	}

	date := ledger.Day(time.Now())
	rest := args[3:]
	if len(rest) > 0 {
		if d, perr := time.Parse("20060102", rest[0]); perr == nil {
			date = ledger.Day(d)
			rest = rest[1:]
		}
	}

	r := ledger.Record{
		Customer:     args[0],
		Order:        args[1],
		Price:        price,
		Date:         date,
		Observations: strings.Join(rest, " "),
	}

	name, err := s.Register(r, time.Now())
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(map[string]interface{}{
			"file":   name,
			"record": recordToMap(r),
		})
	}

	fmt.Printf("Registered: %s\n", name)
	return nil
}

func cmdList(s *ledger.Store, jsonOut bool) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(recordsToMap(records))
	}

	if len(records) == 0 {
		fmt.Println("No orders registered yet.")
		return nil
	}

	for _, r := range records {
		fmt.Printf("%s  %-8s  %-12s  %s\n",
			r.Date.Format("2006-01-02"), ledger.FormatPrice(r.Price), r.Customer, r.Order)
	}
	return nil
}

func cmdSearch(s *ledger.Store, customer string, jsonOut bool) error {
	names, err := s.SearchFiles(customer)
	if err != nil {
		return err
	}

	if jsonOut {
		if names == nil {
			names = []string{}
		}
		return outputJSON(map[string]interface{}{
			"customer": customer,
			"files":    names,
		})
	}

	if len(names) == 0 {
		fmt.Printf("No records found for %s.\n", customer)
		return nil
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func cmdTotal(s *ledger.Store, jsonOut bool) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}
	total := report.TotalOf(records)

	if jsonOut {
		return outputJSON(map[string]interface{}{
			"orders": len(records),
			"total":  total.StringFixed(2),
		})
	}

	fmt.Printf("Total profit across %d orders: %s\n", len(records), ledger.FormatPrice(total))
	return nil
}

func cmdReport(s *ledger.Store, anchor time.Time, jsonOut bool) error {
	path, err := report.Write(s, s.Root, anchor)
	if errors.Is(err, report.ErrNoRecords) {
		if jsonOut {
			return outputJSON(map[string]interface{}{"written": false})
		}
		fmt.Println("No records found for this week.")
		return nil
	}
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(map[string]interface{}{
			"written": true,
			"path":    path,
		})
	}

	fmt.Printf("Weekly report written: %s\n", path)
	return nil
}

func cmdChart(s *ledger.Store, anchor time.Time, jsonOut bool) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}

	start, end := report.WeekOf(anchor)
	buckets := report.BucketByDay(records, start)

	if jsonOut {
		days := make([]map[string]interface{}, 7)
		for i := range buckets {
			days[i] = map[string]interface{}{
				"date":  start.AddDate(0, 0, i).Format("2006-01-02"),
				"total": buckets[i].StringFixed(2),
			}
		}
		return outputJSON(map[string]interface{}{
			"week_start": start.Format("2006-01-02"),
			"week_end":   end.Format("2006-01-02"),
			"days":       days,
		})
	}

	fmt.Printf("Daily profit %s to %s\n", start.Format("02/01/2006"), end.Format("02/01/2006"))
	fmt.Println(tui.RenderWeekChart(start, buckets, 60))
	return nil
}

// JSON helpers

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func recordToMap(r ledger.Record) map[string]interface{} {
	return map[string]interface{}{
		"customer":     r.Customer,
		"order":        r.Order,
		"price":        r.Price.StringFixed(2),
		"date":         r.Date.Format("2006-01-02"),
		"observations": r.Observations,
	}
}

func recordsToMap(records []ledger.Record) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		result = append(result, recordToMap(r))
	}
	return result
}
