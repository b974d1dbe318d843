package core

import "testing"

func TestClosest(t *testing.T) {
	w := newWidget(t, []string{"Biology", "Computer Science", "Chemistry", "Economics"}, 2)
	tests := []struct {
		query  string
		want   string
		wantOK bool
	}{
		{query: "biolgy", want: "Biology", wantOK: true},
		{query: "COMPUTR SCIENCE", want: "Computer Science", wantOK: true},
		{query: "chemestry", want: "Chemistry", wantOK: true},
		{query: "xyz", wantOK: false},
		{query: "   ", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := w.Closest(tt.query)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("Closest(%q) = %q, %v; want %q, %v", tt.query, got, ok, tt.want, tt.wantOK)
		}
	}
}
