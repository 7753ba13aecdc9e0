package storage

import (
	"fmt"
	"testing"
	"time"

	"daylog/internal/timesheet"
)

func BenchmarkSaveSheet(b *testing.B) {
	store := createBenchStorage(b)
	points := benchPoints(50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := store.SaveSheet(testDay, points); err != nil {
			b.Fatalf("SaveSheet failed: %v", err)
		}
	}
}

// BenchmarkLoadSheet measures sheet loading with varying sizes
func BenchmarkLoadSheet(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			store := createBenchStorage(b)
			if err := store.SaveSheet(testDay, benchPoints(size)); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := store.LoadSheet(testDay); err != nil {
					b.Fatalf("LoadSheet failed: %v", err)
				}
			}
		})
	}
}

func benchPoints(n int) []timesheet.TimePoint {
	points := make([]timesheet.TimePoint, 0, n)
	start := time.Date(2026, 10, 19, 6, 0, 0, 0, time.Local)
	for i := 0; i < n; i++ {
		points = append(points, timesheet.NewTimePoint(fmt.Sprintf("task %d", i%7), start.Add(time.Duration(i)*time.Minute)))
	}
	return points
}

func createBenchStorage(b *testing.B) *Storage {
	b.Helper()
	store, err := New(b.TempDir())
	if err != nil {
		b.Fatalf("failed to create bench storage: %v", err)
	}
	return store
}
