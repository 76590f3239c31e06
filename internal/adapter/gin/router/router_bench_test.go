package router

import (
	"net/http"
	"testing"
)

func BenchmarkCreateStudent(b *testing.B) {
	r := setupRouter(b, Options{})
	body := map[string]any{"name": "Ana", "email": "ana@example.com", "age": 21, "course": "CS", "gender": "Female"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if w := call(b, r, http.MethodPost, "/api/students", body); w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

func BenchmarkListStudents(b *testing.B) {
	r := setupRouter(b, Options{})
	for i := 0; i < 100; i++ {
		call(b, r, http.MethodPost, "/api/students", map[string]any{"name": "Ana", "age": i})
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if w := call(b, r, http.MethodGet, "/api/students", nil); w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}
