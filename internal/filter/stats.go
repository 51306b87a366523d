package filter

import (
	"fmt"
	"io"
	"sort"
)

// PassAll is the statistics key for documents that failed no criterion.
const PassAll = "pass-all"

// FailKey returns the statistics key for documents failing c.
func FailKey(c Criterion) string {
	return "fail-" + string(c)
}

// Stats accumulates per-criterion document counts for a stream or a run.
// It is not safe for concurrent use; merge independent Stats instead.
type Stats struct {
	Counts map[string]int
	Total  int
	Output int
}

// NewStats returns Stats with pass-all and every given criterion at zero,
// so that reports list criteria that never fired.
func NewStats(criteria []Criterion) *Stats {
	s := &Stats{Counts: map[string]int{PassAll: 0}}
	for _, c := range criteria {
		s.Counts[FailKey(c)] = 0
	}
	return s
}

// Record counts one document. The criterion count reflects the verdict
// before inversion; Output reflects the final decision.
func (s *Stats) Record(failed Criterion, didFail, emitted bool) {
	if didFail {
		s.Counts[FailKey(failed)]++
	} else {
		s.Counts[PassAll]++
	}
	s.Total++
	if emitted {
		s.Output++
	}
}

// Merge adds other's counts to s.
func (s *Stats) Merge(other *Stats) {
	if s.Counts == nil {
		s.Counts = make(map[string]int)
	}
	for k, v := range other.Counts {
		s.Counts[k] += v
	}
	s.Total += other.Total
	s.Output += other.Output
}

// Sum returns the sum over all criterion counts; it equals Total.
func (s *Stats) Sum() int {
	n := 0
	for _, v := range s.Counts {
		n += v
	}
	return n
}

// Report writes one line per criterion, sorted by key, and a summary line.
func (s *Stats) Report(w io.Writer, name string) error {
	keys := make([]string, 0, len(s.Counts))
	for k := range s.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := s.Counts[k]
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t(%s)\n", name, k, v, Percent(v, s.Total)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s: output %d/%d documents (%s)\n", name, s.Output, s.Total, Percent(s.Output, s.Total))
	return err
}

// Percent formats n/total with one decimal, 0.0% for an empty total.
func Percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
