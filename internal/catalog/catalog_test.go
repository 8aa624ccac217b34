package catalog

import (
	"strings"
	"testing"
)

// TestLoadEmbedded verifies the shipped catalog parses and validates.
func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Exercises()) == 0 {
		t.Error("no exercises loaded")
	}
	if _, ok := c.StoreItem("skin_neon"); !ok {
		t.Error("skin_neon missing from store")
	}
	p, ok := c.Program("iniciante_7")
	if !ok {
		t.Fatal("iniciante_7 program missing")
	}
	if len(p.Days) != 7 {
		t.Errorf("program days = %d, want 7", len(p.Days))
	}
	day1, ok := p.Day(1)
	if !ok || len(day1.Exercises) == 0 {
		t.Fatalf("day 1 = %+v, want exercises", day1)
	}
	if day1.Exercises[0].Name == "" {
		t.Error("program day exercises should be full catalog snapshots")
	}
	if _, ok := p.Day(8); ok {
		t.Error("Day(8) should not exist")
	}
}

// TestParseRejectsUnknownProgramExercise verifies a program referencing a
// missing exercise fails at load time.
func TestParseRejectsUnknownProgramExercise(t *testing.T) {
	data := `
exercises:
  - id: squat
    name: Squat
    muscle_group: legs
programs:
  - id: p
    title: P
    days:
      - day: 1
        exercises: [squat, flying_kick]
`
	_, err := Parse([]byte(data))
	if err == nil {
		t.Fatal("expected error for unknown exercise")
	}
	if !strings.Contains(err.Error(), "flying_kick") {
		t.Errorf("error %q should name the missing exercise", err)
	}
}

// TestParseValidation covers the other load-time checks.
func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "duplicate exercise",
			yaml: `
exercises:
  - {id: a, name: A, muscle_group: legs}
  - {id: a, name: A2, muscle_group: legs}
`,
			want: "duplicate id",
		},
		{
			name: "bad muscle group",
			yaml: `
exercises:
  - {id: a, name: A, muscle_group: tail}
`,
			want: "unknown muscle group",
		},
		{
			name: "bad item type",
			yaml: `
store:
  - {id: x, name: X, type: hat, cost: 5}
`,
			want: "unknown type",
		},
		{
			name: "gap in program days",
			yaml: `
exercises:
  - {id: a, name: A, muscle_group: legs}
programs:
  - id: p
    days:
      - {day: 1, exercises: [a]}
      - {day: 3, exercises: [a]}
`,
			want: "expected day 2",
		},
		{
			name: "malformed yaml",
			yaml: "exercises: [",
			want: "parsing catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
