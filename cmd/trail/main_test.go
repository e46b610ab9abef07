package main

import (
	"reflect"
	"testing"
)

func TestIsTaskID(t *testing.T) {
	t.Parallel()

	yes := []string{"EFF-002", "T-050", "EFF-002.1", "PARSE-1204.2"}
	no := []string{"show", "eff-002", "EFF-", "-002", "EFF-00a", "tracks", ""}
	for _, s := range yes {
		if !isTaskID(s) {
			t.Errorf("isTaskID(%q) = false, want true", s)
		}
	}
	for _, s := range no {
		if isTaskID(s) {
			t.Errorf("isTaskID(%q) = true, want false", s)
		}
	}
}

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"trail"},
			want: []string{"trail"},
		},
		{
			name: "direct task id first token",
			in:   []string{"trail", "EFF-002"},
			want: []string{"trail", "show", "EFF-002"},
		},
		{
			name: "direct task id after value flag",
			in:   []string{"trail", "--dir", "./tmp-test-proj", "EFF-002"},
			want: []string{"trail", "--dir", "./tmp-test-proj", "show", "EFF-002"},
		},
		{
			name: "direct task id after equals flag",
			in:   []string{"trail", "--dir=./tmp-test-proj", "EFF-002"},
			want: []string{"trail", "--dir=./tmp-test-proj", "show", "EFF-002"},
		},
		{
			name: "direct task id after bool flag",
			in:   []string{"trail", "--pretty", "EFF-002"},
			want: []string{"trail", "--pretty", "show", "EFF-002"},
		},
		{
			name: "direct task id after double dash",
			in:   []string{"trail", "--dir", "./tmp-test-proj", "--", "EFF-002"},
			want: []string{"trail", "--dir", "./tmp-test-proj", "--", "show", "EFF-002"},
		},
		{
			name: "subtask id rewritten",
			in:   []string{"trail", "EFF-002.1"},
			want: []string{"trail", "show", "EFF-002.1"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"trail", "show", "EFF-002"},
			want: []string{"trail", "show", "EFF-002"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"trail", "wat"},
			want: []string{"trail", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTaskLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewrite(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
