// Package logstats summarizes the service's JSON log files: checkout
// outcomes, coupon rejections and the most common errors.
package logstats

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// entry is the subset of a zap JSON line the report reads.
type entry struct {
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	Reason    string `json:"reason"`
	Code      string `json:"code"`
	Persisted *bool  `json:"persisted"`
	Total     int64  `json:"total"`
	Status    int    `json:"status"`
}

// Stats holds counters for one or more log files.
type Stats struct {
	Lines     int
	Malformed int
	Levels    map[string]int

	Requests     int
	ServerErrors int

	Checkouts         int
	CheckoutsRecorded int
	Revenue           int64
	DispatchFailures  int
	BusyRejections    int

	CouponsApplied map[string]int
	CouponRejects  map[string]int
	ErrorPatterns  map[string]int
}

func New() *Stats {
	return &Stats{
		Levels:         map[string]int{},
		CouponsApplied: map[string]int{},
		CouponRejects:  map[string]int{},
		ErrorPatterns:  map[string]int{},
	}
}

// Analyze adds every line of r to the counters. Lines that are not JSON are
// counted as malformed and skipped.
func (s *Stats) Analyze(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		s.Lines++

		var e entry
		if err := json.Unmarshal(line, &e); err != nil {
			s.Malformed++
			continue
		}
		s.add(e)
	}
	return scanner.Err()
}

func (s *Stats) add(e entry) {
	s.Levels[e.Level]++

	switch e.Msg {
	case "Request":
		s.Requests++
		if e.Status >= 500 {
			s.ServerErrors++
		}
	case "Checkout finished":
		s.Checkouts++
		if e.Persisted != nil && *e.Persisted {
			s.CheckoutsRecorded++
		}
		s.Revenue += e.Total
	case "Failed to dispatch order message":
		s.DispatchFailures++
	case "Checkout already in flight":
		s.BusyRejections++
	case "Coupon applied":
		s.CouponsApplied[e.Code]++
	case "Coupon rejected":
		s.CouponRejects[e.Reason]++
	case "Coupon not found":
		s.CouponRejects["not_found"]++
	}

	if e.Level == "error" {
		s.ErrorPatterns[e.Msg]++
	}
}

// Report writes a plain-text summary to w.
func (s *Stats) Report(w io.Writer) {
	fmt.Fprintln(w, "=== Log Analysis Report ===")
	fmt.Fprintf(w, "Lines: %d (malformed %d)\n", s.Lines, s.Malformed)

	fmt.Fprintln(w, "\n1. Levels:")
	for _, kv := range top(s.Levels, 0) {
		fmt.Fprintf(w, "   %s: %d\n", kv.key, kv.count)
	}

	fmt.Fprintln(w, "\n2. Requests:")
	fmt.Fprintf(w, "   Total: %d\n", s.Requests)
	fmt.Fprintf(w, "   5xx: %d\n", s.ServerErrors)

	fmt.Fprintln(w, "\n3. Checkouts:")
	fmt.Fprintf(w, "   Finished: %d\n", s.Checkouts)
	fmt.Fprintf(w, "   Recorded: %d\n", s.CheckoutsRecorded)
	fmt.Fprintf(w, "   Not recorded: %d\n", s.Checkouts-s.CheckoutsRecorded)
	fmt.Fprintf(w, "   Dispatch failures: %d\n", s.DispatchFailures)
	fmt.Fprintf(w, "   Rejected while busy: %d\n", s.BusyRejections)
	fmt.Fprintf(w, "   Revenue (minor units): %d\n", s.Revenue)

	fmt.Fprintln(w, "\n4. Coupons applied:")
	for _, kv := range top(s.CouponsApplied, 5) {
		fmt.Fprintf(w, "   %s: %d\n", kv.key, kv.count)
	}
	fmt.Fprintln(w, "\n5. Coupon rejections:")
	for _, kv := range top(s.CouponRejects, 0) {
		fmt.Fprintf(w, "   %s: %d\n", kv.key, kv.count)
	}

	fmt.Fprintln(w, "\n6. Most common errors:")
	for _, kv := range top(s.ErrorPatterns, 5) {
		fmt.Fprintf(w, "   %s: %d occurrences\n", kv.key, kv.count)
	}
}

type keyCount struct {
	key   string
	count int
}

// top sorts counts descending, ties by key. limit 0 keeps all.
func top(m map[string]int, limit int) []keyCount {
	list := make([]keyCount, 0, len(m))
	for k, v := range m {
		list = append(list, keyCount{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].key < list[j].key
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
