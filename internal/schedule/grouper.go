package schedule

import "sort"

// groupByDay partitions templates into per-day buckets and fixes the
// execution order inside each bucket: execution priority ascending, ties
// broken by match number so the order is total and reruns are identical.
func groupByDay(templates []MatchTemplate) map[int][]MatchTemplate {
	buckets := make(map[int][]MatchTemplate)
	for _, tpl := range templates {
		buckets[tpl.DayNumber] = append(buckets[tpl.DayNumber], tpl)
	}
	for day := range buckets {
		bucket := buckets[day]
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].ExecutionPriority != bucket[j].ExecutionPriority {
				return bucket[i].ExecutionPriority < bucket[j].ExecutionPriority
			}
			return bucket[i].MatchNumber < bucket[j].MatchNumber
		})
	}
	return buckets
}

// sortedDayNumbers returns the bucket keys in ascending day order.
func sortedDayNumbers(buckets map[int][]MatchTemplate) []int {
	days := make([]int, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}
